package vqe

import "sync"

// Collector receives completed workflow results. Injecting the collector
// keeps the cumulative result log an explicit, caller-owned concern instead
// of an unbounded list hidden inside the orchestrator.
type Collector interface {
	Record(result *WorkflowResult) error
}

// RingCollector keeps the most recent results up to a fixed capacity,
// dropping the oldest entries beyond it. Safe for concurrent use.
type RingCollector struct {
	mu       sync.Mutex
	capacity int
	results  []*WorkflowResult
}

// DefaultCollectorCapacity bounds the default in-memory result log.
const DefaultCollectorCapacity = 128

// NewRingCollector creates a bounded collector. Non-positive capacities fall
// back to the default.
func NewRingCollector(capacity int) *RingCollector {
	if capacity <= 0 {
		capacity = DefaultCollectorCapacity
	}
	return &RingCollector{capacity: capacity}
}

// Record appends a result, evicting the oldest when at capacity.
func (c *RingCollector) Record(result *WorkflowResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results = append(c.results, result)
	if len(c.results) > c.capacity {
		c.results = c.results[len(c.results)-c.capacity:]
	}
	return nil
}

// Results returns a copy of the retained results, oldest first.
func (c *RingCollector) Results() []*WorkflowResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*WorkflowResult, len(c.results))
	copy(out, c.results)
	return out
}

// Len returns the number of retained results.
func (c *RingCollector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}
