package memorystore

import (
	"errors"
	"fmt"

	"LinkStore/memoryStore/internal"
	"LinkStore/memoryStore/internal/DS"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

var (
	// errors
	ErrKeyDoesNotExist = errors.New("key does not exist")
	ErrStructureEmpty  = errors.New("data structure is empty")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrMaxSizeReached  = func(max uint64) error {
		return fmt.Errorf("maximum size of %d reached, cannot add more items", max)
	}
	ErrVersionNotFound = func(key string, version int) error {
		return fmt.Errorf("version %d of key %s does not exist", version, key)
	}
)

var globalLogger = zap.NewNop()

// SetLogger replaces the logger used by every store in this package.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	globalLogger = l
}

// LimitedStorage is shared by the stores that cap how much they hold
type LimitedStorage interface {
	CurrentSize() uint64
	Keys() []string // list all keys in the store
}

// List (ordered) ; error really only occures if the key doesnt exist
type ListManager interface {
	LPush(key string, value any) error // push start;
	RPush(key string, value any) error // push end;
	LPop(key string) (any, error)      // pop left; if key doesnt exist
	RPop(key string) (any, error)      // pop right
	LRange(key string, start, stop int) ([]any, error)
	LIndex(key string, index int) (any, error)
	Size(key string) uint
	Delete(key string) bool
	LimitedStorage
}

// VersionManager keeps an immutable history per key. Every push creates a
// new version; older versions stay readable and share their nodes.
type VersionManager interface {
	Push(key string, value any) int            // returns the new version
	Pop(key string) (int, error)               // current version minus its head
	Head(key string, version int) (any, error) // -1 is the current version
	Values(key string, version int) ([]any, error)
	Versions(key string) int
	Shared(key string, a, b int) (bool, error) // true if the versions share nodes
	LimitedStorage
}

var (
	_ ListManager    = (*OrderedListStore)(nil)
	_ VersionManager = (*VersionStore)(nil)
	_ AdaptableState = (*OrderedListStore)(nil)
)

type storeOption = func(s *storeConfig)

type storeConfig struct {
	maxSize uint64
	policy  internal.EvictionPolicy
}

func WithMaxSize(max uint64) storeOption {
	return func(s *storeConfig) {
		s.maxSize = max
	}
}

func WithEvictionPolicy(policy string) storeOption {
	return func(s *storeConfig) {
		s.policy = internal.ToPolicy(policy)
	}
}

func defaultStoreConfig() *storeConfig {
	return &storeConfig{
		maxSize: 500,
		policy:  internal.NoEviction,
	}
}

/* ---------------------- Implements the ListManager Interface --------------------- */
type OrderedListStore struct {
	internalManager map[string]DS.SequenceStorage[any]
	policy          internal.EvictionPolicy
	maxSize         uint64
}

func NewOrderedListStore(options ...storeOption) *OrderedListStore {
	config := defaultStoreConfig()
	for _, option := range options {
		option(config)
	}
	return &OrderedListStore{
		internalManager: make(map[string]DS.SequenceStorage[any]),
		policy:          config.policy,
		maxSize:         config.maxSize,
	}
}

func NewListManager(size uint64) ListManager {
	return NewOrderedListStore(WithMaxSize(size))
}

// makeRoom applies the eviction policy when key is full. evictFront selects
// which end gives up an element.
func (o *OrderedListStore) makeRoom(key string, evictFront bool) error {
	if o.Size(key) < uint(o.maxSize) {
		return nil
	}
	if o.policy == internal.NoEviction || o.maxSize == 0 {
		globalLogger.Warn("list is full", zap.String("key", key), zap.Uint64("maxSize", o.maxSize))
		return ErrMaxSizeReached(o.maxSize)
	}
	d := o.internalManager[key]
	var evicted any
	if evictFront {
		evicted, _ = d.PopFront()
	} else {
		evicted, _ = d.PopBack()
	}
	globalLogger.Info("evicted element", zap.String("key", key), zap.Any("value", evicted), zap.Stringer("policy", o.policy))
	return nil
}

func (o *OrderedListStore) sequence(key string) DS.SequenceStorage[any] {
	v, ok := o.internalManager[key]
	if !ok {
		v = DS.NewSequenceStorage[any]()
		o.internalManager[key] = v
	}
	return v
}

func (o *OrderedListStore) LPush(key string, value any) error {
	if err := o.makeRoom(key, false); err != nil {
		return err
	}
	o.sequence(key).PushFront(value)
	globalLogger.Debug("lpush", zap.String("key", key), zap.Any("value", value))
	return nil
}

func (o *OrderedListStore) RPush(key string, value any) error {
	if err := o.makeRoom(key, true); err != nil {
		return err
	}
	o.sequence(key).PushBack(value)
	globalLogger.Debug("rpush", zap.String("key", key), zap.Any("value", value))
	return nil
}

func (o *OrderedListStore) pop(key string, front bool) (any, error) {
	v, ok := o.internalManager[key]
	if !ok {
		return nil, ErrKeyDoesNotExist
	}
	var value any
	if front {
		value, ok = v.PopFront()
	} else {
		value, ok = v.PopBack()
	}
	if !ok {
		return nil, ErrStructureEmpty
	}
	if v.IsEmpty() {
		delete(o.internalManager, key)
	}
	return value, nil
}

func (o *OrderedListStore) LPop(key string) (any, error) { return o.pop(key, true) }
func (o *OrderedListStore) RPop(key string) (any, error) { return o.pop(key, false) }

func (o *OrderedListStore) LRange(key string, start, stop int) ([]any, error) {
	v, ok := o.internalManager[key]
	if !ok {
		return nil, ErrKeyDoesNotExist
	}
	start, stop, ok = normalizeRange(start, stop, v.Len())
	if !ok {
		return []any{}, nil
	}
	return v.Range(start, stop), nil
}

func (o *OrderedListStore) LIndex(key string, index int) (any, error) {
	v, ok := o.internalManager[key]
	if !ok {
		return nil, ErrKeyDoesNotExist
	}
	ix := index
	if ix < 0 {
		ix += v.Len()
	}
	value, ok := v.Get(ix)
	if !ok {
		return nil, fmt.Errorf("index %d of key %s (length %d): %w", index, key, v.Len(), ErrIndexOutOfRange)
	}
	return value, nil
}

func (o *OrderedListStore) Size(key string) uint {
	v, ok := o.internalManager[key]
	if !ok {
		return 0
	}
	return uint(v.Len())
}

// Delete drops the list stored at key.
func (o *OrderedListStore) Delete(key string) bool {
	v, ok := o.internalManager[key]
	if !ok {
		return false
	}
	v.Clear()
	delete(o.internalManager, key)
	return true
}

func (o *OrderedListStore) CurrentSize() uint64 {
	return uint64(len(o.internalManager))
}

func (o *OrderedListStore) Keys() []string {
	var res []string
	for key := range o.internalManager {
		res = append(res, key)
	}
	return res
}

/* ---------------------- Implements the VersionManager Interface --------------------- */
type VersionStore struct {
	history map[string][]DS.PersistentList[any] // index is the version number
}

func NewVersionStore() *VersionStore {
	return &VersionStore{
		history: make(map[string][]DS.PersistentList[any]),
	}
}

func (s *VersionStore) current(key string) DS.PersistentList[any] {
	versions := s.history[key]
	if len(versions) == 0 {
		return DS.PersistentList[any]{}
	}
	return versions[len(versions)-1]
}

func (s *VersionStore) Push(key string, value any) int {
	next := s.current(key).Prepend(value)
	s.history[key] = append(s.history[key], next)
	version := len(s.history[key]) - 1
	globalLogger.Debug("version push", zap.String("key", key), zap.Int("version", version), zap.Int("length", next.Len()))
	return version
}

func (s *VersionStore) Pop(key string) (int, error) {
	versions, ok := s.history[key]
	if !ok {
		return -1, ErrKeyDoesNotExist
	}
	cur := s.current(key)
	if cur.IsEmpty() {
		return -1, ErrStructureEmpty
	}
	s.history[key] = append(versions, cur.Tail())
	return len(s.history[key]) - 1, nil
}

func (s *VersionStore) version(key string, version int) (DS.PersistentList[any], error) {
	versions, ok := s.history[key]
	if !ok {
		return DS.PersistentList[any]{}, ErrKeyDoesNotExist
	}
	ix := version
	if ix < 0 {
		ix += len(versions)
	}
	if ix < 0 || ix >= len(versions) {
		return DS.PersistentList[any]{}, ErrVersionNotFound(key, version)
	}
	return versions[ix], nil
}

func (s *VersionStore) Head(key string, version int) (any, error) {
	l, err := s.version(key, version)
	if err != nil {
		return nil, err
	}
	v, ok := l.Head()
	if !ok {
		return nil, ErrStructureEmpty
	}
	return v, nil
}

func (s *VersionStore) Values(key string, version int) ([]any, error) {
	l, err := s.version(key, version)
	if err != nil {
		return nil, err
	}
	return l.ToSlice(), nil
}

// Shared reports whether two versions of key end in the same nodes.
func (s *VersionStore) Shared(key string, a, b int) (bool, error) {
	la, err := s.version(key, a)
	if err != nil {
		return false, err
	}
	lb, err := s.version(key, b)
	if err != nil {
		return false, err
	}
	return la.SharesTail(lb), nil
}

func (s *VersionStore) Versions(key string) int { return len(s.history[key]) }

func (s *VersionStore) CurrentSize() uint64 { return uint64(len(s.history)) }

func (s *VersionStore) Keys() []string {
	var res []string
	for key := range s.history {
		res = append(res, key)
	}
	return res
}

// ----------------------- Helper Functions -----------------------

// normalizeRange resolves Redis-style indices, where -1 is the last element,
// against a sequence of length n.
func normalizeRange[I constraints.Integer](start, stop, n I) (I, I, bool) {
	if start < 0 {
		start = n + start
	}
	if stop < 0 {
		stop = n + stop
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return 0, 0, false
	}
	return start, stop, true
}
