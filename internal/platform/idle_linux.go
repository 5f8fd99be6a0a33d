package platform

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"ticktock/internal/core/idle"
)

type xprintidleChecker struct {
	path string
	run  func(path string) ([]byte, error)
}

type unsupportedIdleChecker struct{}

func newIdleChecker() idle.Checker {
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedIdleChecker{}
	}
	return &xprintidleChecker{path: path, run: runCommand}
}

func (checker *xprintidleChecker) IdleDuration() (time.Duration, error) {
	output, err := checker.run(checker.path)
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(string(output))
}

func (unsupportedIdleChecker) IdleDuration() (time.Duration, error) {
	return 0, idle.ErrIdleUnsupported
}

func runCommand(path string) ([]byte, error) {
	return exec.Command(path).Output()
}

func parseIdleMillis(output string) (time.Duration, error) {
	idleMillis, err := strconv.ParseInt(strings.TrimSpace(output), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}
