package game

import "time"

// TickClock is a fixed-step accumulator fed with frame deltas.
type TickClock struct {
	period      time.Duration
	accumulated time.Duration
}

func NewTickClock(period time.Duration) *TickClock {
	return &TickClock{period: period}
}

// Advance adds dt and reports whether a tick fires. It fires at most once
// per call and consumes exactly one period when it does; any excess stays
// in the accumulator for later frames.
func (c *TickClock) Advance(dt time.Duration) bool {
	if dt > 0 {
		c.accumulated += dt
	}
	if c.accumulated < c.period {
		return false
	}
	c.accumulated -= c.period
	return true
}

func (c *TickClock) Period() time.Duration {
	return c.period
}

// Accumulated is the time banked toward the next tick.
func (c *TickClock) Accumulated() time.Duration {
	return c.accumulated
}
