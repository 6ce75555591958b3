// Package clock provides an abstraction for time operations to improve testability.
// The menu uses it as the "today" source for entries logged without an explicit date.
package clock

import "time"

// Clock is an interface for time operations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock that always reports the same instant.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Today returns the current calendar day in c's location as a UTC midnight,
// the same shape dates parsed from the work log have.
func Today(c Clock) time.Time {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	_ Clock = RealClock{}
	_ Clock = Fixed{}
)
