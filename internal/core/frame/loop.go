// Package frame provides a single-goroutine frame loop that hosts a timer
// outside of a GUI toolkit.
package frame

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned by Call when the loop is not running.
var ErrStopped = errors.New("frame loop stopped")

// DefaultFrameInterval approximates a 60 Hz display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// Config contains runtime options for Loop.
type Config struct {
	FrameInterval time.Duration
}

// Loop runs every callback on one goroutine. Scheduled callbacks run on the
// next frame; tasks posted with Do run as soon as the loop is free.
type Loop struct {
	mu      sync.Mutex
	options Config
	next    []func()
	tasks   chan func()
	stopCh  chan struct{}
	running bool
	frames  uint64
}

// NewLoop creates a Loop. It does nothing until Run is called.
func NewLoop(options Config) *Loop {
	if options.FrameInterval <= 0 {
		options.FrameInterval = DefaultFrameInterval
	}
	return &Loop{
		options: options,
		tasks:   make(chan func(), 64),
		stopCh:  make(chan struct{}),
	}
}

// Schedule queues callback for the next frame. Safe for concurrent use.
func (loop *Loop) Schedule(callback func()) {
	loop.mu.Lock()
	loop.next = append(loop.next, callback)
	loop.mu.Unlock()
}

// Do queues task to run on the loop goroutine.
func (loop *Loop) Do(task func()) {
	select {
	case loop.tasks <- task:
	case <-loop.stopCh:
	}
}

// Call runs task on the loop goroutine and waits for it to finish.
func (loop *Loop) Call(ctx context.Context, task func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		task()
	}

	select {
	case loop.tasks <- wrapped:
	case <-loop.stopCh:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-loop.stopCh:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Frames returns how many frames have been processed.
func (loop *Loop) Frames() uint64 {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	return loop.frames
}

// Run processes frames until ctx is done or Stop is called.
func (loop *Loop) Run(ctx context.Context) error {
	loop.mu.Lock()
	if loop.running {
		loop.mu.Unlock()
		return errors.New("frame loop already running")
	}
	loop.running = true
	loop.mu.Unlock()

	ticker := time.NewTicker(loop.options.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			loop.Stop()
			return ctx.Err()
		case <-loop.stopCh:
			return nil
		case task := <-loop.tasks:
			task()
		case <-ticker.C:
			loop.frame()
		}
	}
}

// Stop terminates Run. Pending callbacks are dropped.
func (loop *Loop) Stop() {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	select {
	case <-loop.stopCh:
	default:
		close(loop.stopCh)
	}
	loop.next = nil
}

func (loop *Loop) frame() {
	loop.mu.Lock()
	callbacks := loop.next
	loop.next = nil
	loop.frames++
	loop.mu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}
