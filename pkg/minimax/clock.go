package minimax

import (
	"time"
)

// Search clock, a zero deadline means no movetime limit
type clock struct {
	start    time.Time
	deadline time.Time
}

// Restart the clock, non-positive movetime disables the deadline
func (c *clock) reset(movetime int) {
	c.start = time.Now()
	c.deadline = time.Time{}
	if movetime > 0 {
		c.deadline = c.start.Add(time.Duration(movetime) * time.Millisecond)
	}
}

func (c *clock) expired() bool {
	return !c.deadline.IsZero() && !time.Now().Before(c.deadline)
}

// Elapsed milliseconds, at least 1 so it can divide node counts
func (c *clock) elapsedMs() uint32 {
	return uint32(max(time.Since(c.start).Milliseconds(), 1))
}
