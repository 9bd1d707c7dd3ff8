package testutil

import (
	"sync"
	"time"
)

// StepClock is a deterministic wall clock for audit timestamps.
//
// Each call to Now returns the current instant and then advances it by a
// fixed step, so successive persisted runs get distinct, ordered
// recorded_at values.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
	step  time.Duration
}

// NewStepClock creates a clock starting at start (normalized to UTC).
//
// A zero step yields a frozen clock.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	start = start.UTC()
	return &StepClock{start: start, now: start, step: step}
}

// Now returns the current instant and advances the clock by one step.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Peek returns the next instant without advancing.
func (c *StepClock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Reset rewinds the clock to its start instant.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
}
