package animation

import "time"

// Clock is the time source for tickers and transitions. The default
// implementation reads system time. Tests inject a fake clock through
// SetClock so animation timing can be stepped deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

var clock Clock = systemClock{}

// SetClock replaces the package time source and returns the previous one
// so callers can restore it during test cleanup.
func SetClock(c Clock) Clock {
	prev := clock
	clock = c
	return prev
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Now() }
