package memorystore

import (
	"bytes"
	"encoding/json"
	"fmt"

	"LinkStore/memoryStore/internal"

	"go.uber.org/zap"
)

type AdaptableState interface {
	Serialize() ([]byte, error) // take internal memory state and convert to byte slice
	Deserialize([]byte) error   // take byte slice and convert back to internal memory state
}

// outputs every list front to back
func (o *OrderedListStore) dumpState() ([]byte, error) {
	sequenceData := make(map[string][]any, len(o.internalManager))
	for key, sequence := range o.internalManager {
		sequenceData[key] = sequence.ToSlice()
	}
	return json.Marshal(map[string]any{"sequences": sequenceData})
}

// loads lists from byte slice, replacing any list with the same key. Values
// go through RPush, so a list longer than maxSize is evicted down to it, or
// refused before anything is loaded when the store does not evict.
func (o *OrderedListStore) loadState(data []byte) error {
	var state struct {
		Sequences map[string][]any `json:"sequences"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&state); err != nil {
		return err
	}
	if o.policy == internal.NoEviction || o.maxSize == 0 {
		for key, values := range state.Sequences {
			if uint64(len(values)) > o.maxSize {
				return fmt.Errorf("loading %d items into key %s: %w", len(values), key, ErrMaxSizeReached(o.maxSize))
			}
		}
	}
	for key, values := range state.Sequences {
		o.Delete(key)
		for _, value := range values {
			if err := o.RPush(key, restoreNumbers(value)); err != nil {
				return err
			}
		}
	}
	globalLogger.Debug("state loaded", zap.Int("keys", len(state.Sequences)))
	return nil
}

// restoreNumbers turns decoded json numbers back into int where they are
// whole, float64 otherwise.
func restoreNumbers(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		f, _ := v.Float64()
		return f
	case []any:
		for i := range v {
			v[i] = restoreNumbers(v[i])
		}
		return v
	case map[string]any:
		for k := range v {
			v[k] = restoreNumbers(v[k])
		}
		return v
	}
	return value
}

func (o *OrderedListStore) Serialize() ([]byte, error)    { return o.dumpState() }
func (o *OrderedListStore) Deserialize(data []byte) error { return o.loadState(data) }
