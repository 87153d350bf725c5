package ttlmap

import "time"

// Timer is a pending callback returned by a Scheduler.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer; false means it already fired or was stopped.
	Stop() bool
}

// Scheduler runs a callback once after a delay.
//
// Callbacks may run on any goroutine. A Map never relies on Stop winning a
// race against a callback that is already running.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// wallClock schedules on the runtime timer heap.
type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
