package scheduler

import "time"

// Timer is a pending deferred callback.
type Timer interface {
	// Stop cancels the callback. It reports false when the callback already
	// ran or was already stopped.
	Stop() bool
}

// Scheduler defers callbacks. Callbacks may run on another goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// System schedules on the runtime timer heap.
type System struct{}

func (System) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
