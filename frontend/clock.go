package frontend

import "time"

// maxDelta caps a single tick after a stall, e.g. a dragged window.
const maxDelta = 0.25

// clock measures the real time between ticks.
type clock struct {
	now      func() time.Time
	last     time.Time
	fallback float64
}

func newClock(tps int) *clock {
	return &clock{now: time.Now, fallback: 1 / float64(tps)}
}

// delta returns the seconds since the previous call. The first call returns
// the nominal tick length.
func (c *clock) delta() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return c.fallback
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return min(max(dt, 0), maxDelta)
}
