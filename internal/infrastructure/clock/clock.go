// Package clock provides the wall clock used by the use cases. Month
// close and the entry window both hinge on "today", so production code
// takes the time from here and tests substitute a fixed clock.
package clock

import "time"

// SystemClock reads the system time.
type SystemClock struct{}

// New creates a SystemClock.
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
