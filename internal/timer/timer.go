// Package timer measures key intervals against an injectable clock.
package timer

import (
	"sync"
	"time"
)

// Clock abstracts time for replay and tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when advanced.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward. Negative durations are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Timer remembers the instant it was started.
type Timer struct {
	clock Clock
	start time.Time
}

// Start captures the current instant of clock.
func Start(clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timer{clock: clock, start: clock.Now()}
}

// Elapsed returns milliseconds since start, never negative.
func (t *Timer) Elapsed() float64 {
	d := t.clock.Now().Sub(t.start)
	if d < 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
