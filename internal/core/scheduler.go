package core

import "time"

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop reports whether this call cancelled the timer. After Stop
	// returns the callback will not run again.
	Stop() bool
}

// Scheduler runs callbacks later on the event loop.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}
