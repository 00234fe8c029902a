package metrics

import "sync/atomic"

// Counter is a monotonically increasing event count.
type Counter struct {
	name  string
	value atomic.Int64
}

func newCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc adds one to the counter.
func (c *Counter) Inc() {
	if !enabled.Load() {
		return
	}
	c.value.Add(1)
}

// Name returns the counter name.
func (c *Counter) Name() string { return c.name }

// Value returns the current count.
func (c *Counter) Value() int64 { return c.value.Load() }

// Reset sets the counter back to zero.
func (c *Counter) Reset() { c.value.Store(0) }

// Animation frame counters.
var (
	VisitedFrames  = newCounter("visited_frames")
	PathFrames     = newCounter("path_frames")
	CancelledRuns  = newCounter("cancelled_runs")
	BoundsExceeded = newCounter("bounds_exceeded")
)

// AllCounters returns all registered counters.
func AllCounters() []*Counter {
	return []*Counter{VisitedFrames, PathFrames, CancelledRuns, BoundsExceeded}
}

// CounterSnapshot returns name -> value for every counter.
func CounterSnapshot() map[string]int64 {
	out := make(map[string]int64, 4)
	for _, c := range AllCounters() {
		out[c.name] = c.Value()
	}
	return out
}
