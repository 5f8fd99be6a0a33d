package platform

import (
	"time"

	"ticktock/internal/core/idle"
)

type idleChecker struct{}

func newIdleChecker() idle.Checker {
	return &idleChecker{}
}

// TODO: read HIDIdleTime from IOKit once the app links against it.
func (checker *idleChecker) IdleDuration() (time.Duration, error) {
	return 0, idle.ErrIdleUnsupported
}
