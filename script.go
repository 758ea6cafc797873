package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	memorystore "LinkStore/memoryStore"
	"LinkStore/monitor"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var ErrUnknownOperation = errors.New("unknown operation")

// Script is the yaml document the CLI executes, one step at a time.
type Script struct {
	Steps []Step `yaml:"steps"`
}

type Step struct {
	Op      string `yaml:"op"`
	Key     string `yaml:"key"`
	Values  []any  `yaml:"values"`
	Start   int    `yaml:"start"`
	Stop    int    `yaml:"stop"`
	Index   int    `yaml:"index"`
	Version int    `yaml:"version"` // negative counts back from the newest version
	Count   int    `yaml:"count"`   // fill: number of generated values
	Path    string `yaml:"path"`    // dump/load: state file
}

func ParseScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	return &s, nil
}

type runner struct {
	lists    *memorystore.OrderedListStore
	versions *memorystore.VersionStore
	stats    *monitor.OpStats
	logger   *zap.Logger
	out      io.Writer
}

func newRunner(lists *memorystore.OrderedListStore, logger *zap.Logger, out io.Writer) *runner {
	return &runner{
		lists:    lists,
		versions: memorystore.NewVersionStore(),
		stats:    &monitor.OpStats{},
		logger:   logger,
		out:      out,
	}
}

// Run executes every step, printing each result. A failing step is reported
// and counted but does not stop the script; unknown ops do.
func (r *runner) Run(s *Script) error {
	for i, step := range s.Steps {
		result, err := r.apply(step)
		if errors.Is(err, ErrUnknownOperation) {
			return fmt.Errorf("step %d: %w: %q", i, err, step.Op)
		}
		if err != nil {
			r.stats.IncrementFailures()
			r.logger.Warn("step failed", zap.Int("step", i), zap.String("op", step.Op), zap.String("key", step.Key), zap.Error(err))
			fmt.Fprintf(r.out, "%s %s -> error: %v\n", step.Op, step.Key, err)
			continue
		}
		fmt.Fprintf(r.out, "%s %s -> %v\n", step.Op, step.Key, result)
	}
	return nil
}

func (r *runner) apply(step Step) (any, error) {
	switch step.Op {
	case "lpush", "rpush":
		push := r.lists.RPush
		if step.Op == "lpush" {
			push = r.lists.LPush
		}
		for _, v := range step.Values {
			if err := push(step.Key, v); err != nil {
				return nil, err
			}
		}
		r.stats.IncrementWriteOps()
		return r.lists.Size(step.Key), nil
	case "fill":
		for i := 0; i < step.Count; i++ {
			if err := r.lists.RPush(step.Key, i); err != nil {
				return nil, err
			}
		}
		r.stats.IncrementWriteOps()
		return r.lists.Size(step.Key), nil
	case "lpop":
		r.stats.IncrementWriteOps()
		return r.lists.LPop(step.Key)
	case "rpop":
		r.stats.IncrementWriteOps()
		return r.lists.RPop(step.Key)
	case "lrange":
		r.stats.IncrementReadOps()
		return r.lists.LRange(step.Key, step.Start, step.Stop)
	case "lindex":
		r.stats.IncrementReadOps()
		return r.lists.LIndex(step.Key, step.Index)
	case "del":
		r.stats.IncrementWriteOps()
		return r.lists.Delete(step.Key), nil
	case "dump":
		r.stats.IncrementReadOps()
		data, err := r.lists.Serialize()
		if err != nil {
			return nil, err
		}
		if step.Path == "" {
			return string(data), nil
		}
		if err := os.WriteFile(step.Path, data, 0o644); err != nil {
			return nil, fmt.Errorf("writing state: %w", err)
		}
		return step.Path, nil
	case "load":
		r.stats.IncrementWriteOps()
		data, err := os.ReadFile(step.Path)
		if err != nil {
			return nil, fmt.Errorf("reading state: %w", err)
		}
		if err := r.lists.Deserialize(data); err != nil {
			return nil, fmt.Errorf("loading state: %w", err)
		}
		return r.lists.CurrentSize(), nil
	case "vpush":
		version := -1
		for _, v := range step.Values {
			version = r.versions.Push(step.Key, v)
		}
		r.stats.IncrementWriteOps()
		return version, nil
	case "vpop":
		r.stats.IncrementWriteOps()
		return r.versions.Pop(step.Key)
	case "vhead":
		r.stats.IncrementReadOps()
		return r.versions.Head(step.Key, step.Version)
	case "vvalues":
		r.stats.IncrementReadOps()
		return r.versions.Values(step.Key, step.Version)
	default:
		return nil, ErrUnknownOperation
	}
}
