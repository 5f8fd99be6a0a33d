package control

import (
	"errors"
	"fmt"

	"ticktock/internal/core/timer"
)

// ErrInvalidState indicates a run state outside stopped, running and paused.
var ErrInvalidState = errors.New("invalid timer state")

// Controller is the subset of timer controls Toggle drives.
type Controller interface {
	Start()
	Pause()
	Resume()
	State() timer.State
}

// Toggle starts a stopped timer, pauses a running one and resumes a paused
// one. state is the caller's view of the run state; an unknown value is a
// bookkeeping bug and is reported instead of guessed at.
func Toggle(state timer.State, controller Controller) (timer.State, error) {
	switch state {
	case timer.StatePaused:
		controller.Resume()
	case timer.StateRunning:
		controller.Pause()
	case timer.StateStopped:
		controller.Start()
	default:
		return state, fmt.Errorf("unable to toggle: %w: %q", ErrInvalidState, state)
	}
	return controller.State(), nil
}
