// Package metrics implements the thread-safe counters spec.md §4.5 calls
// the metrics registry: two categories, tasks and requests, each with an
// active gauge, completed/failed counters, and a derived average duration.
// The atomics are the source of truth; the Prometheus collectors in
// registry.go only ever read them.
package metrics

import "sync/atomic"

// Counter is one category's set of atomic aggregates: active (gauge),
// completed, failed, and totalDurationMillis (counters), with a derived
// Average().
type Counter struct {
	active              atomic.Int64
	completed           atomic.Uint64
	failed              atomic.Uint64
	totalDurationMillis atomic.Uint64
}

// IncActive increments the active gauge.
func (c *Counter) IncActive() { c.active.Add(1) }

// DecActive decrements the active gauge, clamped to never go negative —
// a decrement racing ahead of its matching increment (or a duplicate
// decrement) must be a no-op rather than underflow.
func (c *Counter) DecActive() {
	for {
		cur := c.active.Load()
		if cur <= 0 {
			return
		}
		if c.active.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

// RecordCompletion records a successful completion and its duration.
func (c *Counter) RecordCompletion(durationMillis int64) {
	c.completed.Add(1)
	if durationMillis > 0 {
		c.totalDurationMillis.Add(uint64(durationMillis))
	}
}

// RecordFailure records a failed completion and its duration.
func (c *Counter) RecordFailure(durationMillis int64) {
	c.failed.Add(1)
	if durationMillis > 0 {
		c.totalDurationMillis.Add(uint64(durationMillis))
	}
}

// Active returns the current in-flight count.
func (c *Counter) Active() int64 { return c.active.Load() }

// Completed returns the total successful-completion count.
func (c *Counter) Completed() uint64 { return c.completed.Load() }

// Failed returns the total failed-completion count.
func (c *Counter) Failed() uint64 { return c.failed.Load() }

// Average returns totalDurationMillis / completed, or 0 when nothing has
// completed yet.
func (c *Counter) Average() float64 {
	completed := c.completed.Load()
	if completed == 0 {
		return 0
	}
	return float64(c.totalDurationMillis.Load()) / float64(completed)
}

// Reset zeroes every field. Snapshot consistency across the four fields is
// not guaranteed, matching spec.md's relaxed reset() contract.
func (c *Counter) Reset() {
	c.active.Store(0)
	c.completed.Store(0)
	c.failed.Store(0)
	c.totalDurationMillis.Store(0)
}

func (c *Counter) snapshot(prefix string, into map[string]any) {
	into[prefix+"Active"] = c.Active()
	into[prefix+"Completed"] = c.Completed()
	into[prefix+"Failed"] = c.Failed()
	into[prefix+"TotalDurationMillis"] = c.totalDurationMillis.Load()
	into[prefix+"Average"] = c.Average()
	into[prefix+"SuccessRatePercent"] = successRatePercent(c.Completed(), c.Failed())
}

func successRatePercent(completed, failed uint64) float64 {
	total := completed + failed
	if total == 0 {
		return 0
	}
	return float64(completed) * 100 / float64(total)
}
