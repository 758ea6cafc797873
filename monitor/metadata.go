package monitor

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/cpu"
)

// OpStats counts operations applied to the stores.
type OpStats struct {
	WriteOps uint64 `json:"write_ops"` // pushes, pops, deletes
	ReadOps  uint64 `json:"read_ops"`  // ranges, peeks, lookups
	Failures uint64 `json:"failures"`  // operations that returned an error
}

func (s *OpStats) IncrementReadOps() {
	atomic.AddUint64(&s.ReadOps, 1)
}
func (s *OpStats) IncrementWriteOps() {
	atomic.AddUint64(&s.WriteOps, 1)
}
func (s *OpStats) IncrementFailures() {
	atomic.AddUint64(&s.Failures, 1)
}

// Snapshot returns a copy safe to log or serialise.
func (s *OpStats) Snapshot() OpStats {
	return OpStats{
		WriteOps: atomic.LoadUint64(&s.WriteOps),
		ReadOps:  atomic.LoadUint64(&s.ReadOps),
		Failures: atomic.LoadUint64(&s.Failures),
	}
}

type GcStats struct {
	UptimeSeconds  uint64  `json:"uptime_seconds"`   // how long the process has been up
	NumGC          uint32  `json:"num_gc"`           // number of garbage collections
	CPULoadPercent float64 `json:"cpu_load_percent"` // CPU load percentage
	PauseTotalNs   uint64  `json:"pause_total_ns"`   // total pause time in nanoseconds
	HeapAlloc      uint64  `json:"heap_alloc"`       // bytes allocated and still in use
	HeapObjects    uint64  `json:"heap_objects"`     // live heap objects
	HeapInuse      uint64  `json:"heap_inuse"`       // bytes in non-idle spans
	HeapReleased   uint64  `json:"heap_released"`    // bytes released to the OS
	Goroutines     int     `json:"goroutines"`
}

var startTime = time.Now()

// cachedGcStats holds both the stats and the timestamp when they were collected
type cachedGcStats struct {
	stats     *GcStats
	timestamp time.Time
}

// Collector reads runtime stats, reusing the last reading for cacheFor.
type Collector struct {
	cacheFor   time.Duration
	cpuSample  time.Duration
	statsCache atomic.Value
	cpuPercent func(time.Duration, bool) ([]float64, error)
}

func NewCollector(cacheFor, cpuSample time.Duration) *Collector {
	return &Collector{
		cacheFor:   cacheFor,
		cpuSample:  cpuSample,
		cpuPercent: cpu.Percent,
	}
}

func (c *Collector) Collect() (*GcStats, error) {
	// Check if we have cached data that's still valid
	if cached := c.statsCache.Load(); cached != nil {
		if cachedData, ok := cached.(*cachedGcStats); ok {
			if time.Since(cachedData.timestamp) < c.cacheFor {
				return cachedData.stats, nil
			}
		}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	percent, err := c.cpuPercent(c.cpuSample, false)
	if err != nil {
		return nil, err
	}
	var load float64
	if len(percent) > 0 {
		load = percent[0]
	}

	stats := &GcStats{
		UptimeSeconds:  uint64(time.Since(startTime).Seconds()),
		NumGC:          mem.NumGC,
		CPULoadPercent: load,
		PauseTotalNs:   mem.PauseTotalNs,
		HeapAlloc:      mem.HeapAlloc,
		HeapObjects:    mem.HeapObjects,
		HeapInuse:      mem.HeapInuse,
		HeapReleased:   mem.HeapReleased,
		Goroutines:     runtime.NumGoroutine(),
	}

	c.statsCache.Store(&cachedGcStats{
		stats:     stats,
		timestamp: time.Now(),
	})

	return stats, nil
}
