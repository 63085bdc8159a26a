package game

import "time"

// Clock supplies monotonic time since an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

// SystemClock reads the wall clock, measured from its creation.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock only moves when told to. Used by tests and headless runs.
type ManualClock struct {
	now time.Duration
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now += d
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Duration) {
	c.now = t
}
