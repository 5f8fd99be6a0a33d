package platform

import "ticktock/internal/core/idle"

// NewIdleChecker returns a platform-specific idle checker.
func NewIdleChecker() idle.Checker {
	return newIdleChecker()
}
