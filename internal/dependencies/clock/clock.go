package clock

import "time"

// Clock stamps sessions, game snapshots and idle eviction.
// Countdown and mismatch timing live in the scheduler package instead.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}
