package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsedFollowsClock(t *testing.T) {
	clock := NewManualClock(time.Unix(1000, 0))
	tm := Start(clock)
	assert.Equal(t, 0.0, tm.Elapsed())

	clock.Advance(60 * time.Millisecond)
	assert.Equal(t, 60.0, tm.Elapsed())
	assert.Equal(t, 60.0, tm.Elapsed())

	clock.Advance(1500 * time.Microsecond)
	assert.InDelta(t, 61.5, tm.Elapsed(), 1e-9)
}

func TestManualClockIgnoresNegative(t *testing.T) {
	start := time.Unix(0, 0)
	clock := NewManualClock(start)
	clock.Advance(-time.Second)
	assert.Equal(t, start, clock.Now())
}

func TestSystemClockIsMonotonic(t *testing.T) {
	tm := Start(nil)
	prev := tm.Elapsed()
	for i := 0; i < 100; i++ {
		cur := tm.Elapsed()
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}
