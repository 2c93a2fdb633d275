// Package metrics provides in-memory runtime statistics collection for
// pipeline stages.
package metrics

import (
	"sync"
	"time"
)

// Stage operation names recorded by the pipeline controller.
const (
	OpValidate = "validate"
	OpRewrite  = "rewrite"
	OpSearch   = "search"
	OpQuery    = "search_query"
	OpExtract  = "extract"
	OpPersist  = "persist"
	OpRun      = "run"
)

// OperationMetrics holds aggregated metrics for a single operation type.
type OperationMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64   `json:"count"`
	TotalTimeMs int64   `json:"total_time_ms"`
	AvgTimeMs   float64 `json:"avg_time_ms"`
	MinTimeMs   int64   `json:"min_time_ms"`
	MaxTimeMs   int64   `json:"max_time_ms"`
}

// Snapshot represents full pipeline statistics at a point in time.
type Snapshot struct {
	UptimeSeconds float64                      `json:"uptime_seconds"`
	Operations    map[string]OperationSnapshot `json:"operations"`
}

// Collector aggregates in-memory runtime statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	ops       map[string]*OperationMetrics
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		ops:       make(map[string]*OperationMetrics),
	}
}

// Record adds one observation for the named operation.
func (c *Collector) Record(op string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{MinTime: d, MaxTime: d}
		c.ops[op] = m
	}

	m.Count++
	m.TotalTime += d
	if d < m.MinTime {
		m.MinTime = d
	}
	if d > m.MaxTime {
		m.MaxTime = d
	}
}

// Observe wraps a function call, recording its duration under op.
func (c *Collector) Observe(op string, fn func()) {
	start := time.Now()
	fn()
	c.Record(op, time.Since(start))
}

// Snapshot returns computed statistics for all recorded operations.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
		Operations:    make(map[string]OperationSnapshot, len(c.ops)),
	}

	for op, m := range c.ops {
		s := OperationSnapshot{
			Count:       m.Count,
			TotalTimeMs: m.TotalTime.Milliseconds(),
			MinTimeMs:   m.MinTime.Milliseconds(),
			MaxTimeMs:   m.MaxTime.Milliseconds(),
		}
		if m.Count > 0 {
			s.AvgTimeMs = float64(m.TotalTime.Milliseconds()) / float64(m.Count)
		}
		snap.Operations[op] = s
	}

	return snap
}
