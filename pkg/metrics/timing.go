// Package metrics provides performance instrumentation for pathlab.
//
// Two kinds of metric are collected in-memory with atomic operations:
//   - Timing metrics for searches, grid analysis and rendering
//   - Frame counters for the visited and path animation sweeps
//
// Collection is enabled by default but can be disabled via PATHLAB_METRICS=0.
//
// Usage:
//
//	func expensiveOperation() {
//	    defer metrics.Timer(metrics.GridAnalysis)()
//	    // ... operation code
//	}
package metrics

import (
	"os"
	"sync/atomic"
	"time"
)

var enabled atomic.Bool

func init() {
	enabled.Store(os.Getenv("PATHLAB_METRICS") != "0")
}

// Enabled returns whether metrics collection is enabled.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled allows programmatic control of metrics collection.
func SetEnabled(e bool) {
	enabled.Store(e)
}

// TimingMetric accumulates durations for one operation. Safe for concurrent
// use.
type TimingMetric struct {
	name  string
	count atomic.Int64
	total atomic.Int64 // ns
	worst atomic.Int64 // ns
	best  atomic.Int64 // ns; 0 until the first record
}

func newTimingMetric(name string) *TimingMetric {
	return &TimingMetric{name: name}
}

// Record adds one measurement.
func (m *TimingMetric) Record(d time.Duration) {
	if !enabled.Load() {
		return
	}
	ns := d.Nanoseconds()
	m.count.Add(1)
	m.total.Add(ns)
	storeIf(&m.worst, ns, func(cur int64) bool { return ns > cur })
	storeIf(&m.best, ns, func(cur int64) bool { return cur == 0 || ns < cur })
}

// storeIf swaps v into a while better(current) holds.
func storeIf(a *atomic.Int64, v int64, better func(int64) bool) {
	for cur := a.Load(); better(cur); cur = a.Load() {
		if a.CompareAndSwap(cur, v) {
			return
		}
	}
}

// Name returns the metric name.
func (m *TimingMetric) Name() string { return m.name }

// Count returns how many measurements were recorded.
func (m *TimingMetric) Count() int64 { return m.count.Load() }

// AvgNs is the mean duration in nanoseconds, 0 when empty.
func (m *TimingMetric) AvgNs() int64 {
	n := m.count.Load()
	if n == 0 {
		return 0
	}
	return m.total.Load() / n
}

// Stats snapshots the metric in milliseconds.
func (m *TimingMetric) Stats() TimingStats {
	return TimingStats{
		Name:    m.name,
		Count:   m.count.Load(),
		TotalMs: nsToMs(m.total.Load()),
		AvgMs:   nsToMs(m.AvgNs()),
		MaxMs:   nsToMs(m.worst.Load()),
		MinMs:   nsToMs(m.best.Load()),
	}
}

func nsToMs(ns int64) float64 { return float64(ns) / 1e6 }

// Reset clears the metric.
func (m *TimingMetric) Reset() {
	m.count.Store(0)
	m.total.Store(0)
	m.worst.Store(0)
	m.best.Store(0)
}

// TimingStats holds a snapshot of timing statistics.
type TimingStats struct {
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	TotalMs float64 `json:"total_ms"`
	AvgMs   float64 `json:"avg_ms"`
	MaxMs   float64 `json:"max_ms"`
	MinMs   float64 `json:"min_ms,omitempty"`
}

// Timer returns a function that records elapsed time when called.
//
//	defer metrics.Timer(metrics.SearchBFS)()
func Timer(m *TimingMetric) func() {
	if !enabled.Load() || m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.Record(time.Since(start))
	}
}

// Timing metrics, one per search algorithm plus the analysis and render
// paths.
var (
	SearchBFS      = newTimingMetric("search_bfs")
	SearchDFS      = newTimingMetric("search_dfs")
	SearchDijkstra = newTimingMetric("search_dijkstra")
	SearchAStar    = newTimingMetric("search_astar")
	GridAnalysis   = newTimingMetric("grid_analysis")
	SnapshotRender = newTimingMetric("snapshot_render")
	UIRender       = newTimingMetric("ui_render")
)

var searchTimings = map[string]*TimingMetric{
	"bfs":      SearchBFS,
	"dfs":      SearchDFS,
	"dijkstra": SearchDijkstra,
	"astar":    SearchAStar,
}

// AllTimingMetrics lists the timing metrics in report order.
func AllTimingMetrics() []*TimingMetric {
	return []*TimingMetric{SearchBFS, SearchDFS, SearchDijkstra, SearchAStar, GridAnalysis, SnapshotRender, UIRender}
}

// SearchTiming returns the metric for an algorithm identifier, or nil.
func SearchTiming(algorithm string) *TimingMetric {
	return searchTimings[algorithm]
}

// ResetAll resets every timing metric and counter.
func ResetAll() {
	for _, m := range AllTimingMetrics() {
		m.Reset()
	}
	for _, c := range AllCounters() {
		c.Reset()
	}
}

// AllTimingStats returns stats for all timing metrics that have data.
func AllTimingStats() []TimingStats {
	metrics := AllTimingMetrics()
	stats := make([]TimingStats, 0, len(metrics))
	for _, m := range metrics {
		if m.Count() > 0 {
			stats = append(stats, m.Stats())
		}
	}
	return stats
}
