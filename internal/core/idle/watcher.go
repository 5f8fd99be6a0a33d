// Package idle watches user inactivity so a host can pause a running timer
// while nobody is at the keyboard.
package idle

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// Checker reports the duration of user inactivity.
type Checker interface {
	IdleDuration() (time.Duration, error)
}

// Config contains runtime options for Watcher.
type Config struct {
	After         time.Duration
	CheckInterval time.Duration

	OnIdle   func()
	OnActive func()
	OnError  func(error)
}

// Watcher polls a Checker and reports transitions between active and idle.
type Watcher struct {
	mu      sync.Mutex
	checker Checker
	config  Config
	idle    bool
	enabled bool
}

// NewWatcher creates a Watcher. It does nothing until Run is called.
func NewWatcher(checker Checker, config Config) *Watcher {
	if config.CheckInterval <= 0 {
		config.CheckInterval = 5 * time.Second
	}
	if config.After <= 0 {
		config.After = 5 * time.Minute
	}
	return &Watcher{
		checker: checker,
		config:  config,
		enabled: checker != nil,
	}
}

// Idle reports whether the last check found the user idle.
func (watcher *Watcher) Idle() bool {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	return watcher.idle
}

// Enabled reports whether the watcher is still polling.
func (watcher *Watcher) Enabled() bool {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	return watcher.enabled
}

// Run polls until ctx is done or idle detection turns out to be unsupported.
func (watcher *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(watcher.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !watcher.Check() {
				return
			}
		}
	}
}

// Check performs one poll and fires callbacks on transitions. It returns
// false once the watcher has disabled itself.
func (watcher *Watcher) Check() bool {
	watcher.mu.Lock()
	if !watcher.enabled {
		watcher.mu.Unlock()
		return false
	}
	watcher.mu.Unlock()

	idleDuration, err := watcher.checker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			watcher.mu.Lock()
			watcher.enabled = false
			watcher.mu.Unlock()
		}
		if watcher.config.OnError != nil {
			watcher.config.OnError(err)
		}
		return watcher.Enabled()
	}

	nowIdle := idleDuration >= watcher.config.After

	watcher.mu.Lock()
	changed := nowIdle != watcher.idle
	watcher.idle = nowIdle
	watcher.mu.Unlock()

	if !changed {
		return true
	}
	if nowIdle && watcher.config.OnIdle != nil {
		watcher.config.OnIdle()
	}
	if !nowIdle && watcher.config.OnActive != nil {
		watcher.config.OnActive()
	}
	return true
}
