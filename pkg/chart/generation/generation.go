// Package generation guards asynchronous layout recomputes against
// staleness.
//
// When holdings are refetched while a layout for the previous snapshot is
// still being computed, two results can race. Consumers tag each
// computation with a monotonically increasing generation and discard any
// result that is no longer the latest requested, instead of letting the
// slower computation overwrite the newer one.
package generation

import "sync/atomic"

// Counter issues monotonically increasing generations. The zero value is
// ready to use and safe for concurrent callers.
type Counter struct {
	latest atomic.Uint64
}

// Next registers a new computation and returns its generation. Every call
// invalidates all previously issued generations.
func (c *Counter) Next() uint64 {
	return c.latest.Add(1)
}

// Accept reports whether a result computed under gen is still current.
// Only the most recently issued generation is accepted.
func (c *Counter) Accept(gen uint64) bool {
	return c.latest.Load() == gen
}

// Current returns the latest issued generation, zero if none.
func (c *Counter) Current() uint64 {
	return c.latest.Load()
}
