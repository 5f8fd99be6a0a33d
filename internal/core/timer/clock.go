package timer

import "time"

// Clock provides the current wall-clock time.
// This interface enables deterministic tests of elapsed-time math.
type Clock interface {
	Now() time.Time
}

// Scheduler posts a callback to run on the host's next frame.
// The timer keeps no handle to scheduled work; a callback that fires after
// the timer left the running state simply does nothing.
type Scheduler interface {
	Schedule(callback func())
}

// SystemClock is the default Clock implementation using the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

type noScheduler struct{}

func (noScheduler) Schedule(func()) {}
