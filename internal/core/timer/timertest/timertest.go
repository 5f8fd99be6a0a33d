// Package timertest provides a manual clock and frame scheduler so timer
// behavior can be stepped deterministically in tests.
package timertest

import "time"

// Epoch is the instant a new Clock starts at.
var Epoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

// Clock is a timer.Clock that only moves when told to.
type Clock struct {
	now time.Time
}

// NewClock returns a Clock set to Epoch.
func NewClock() *Clock {
	return &Clock{now: Epoch}
}

// Now returns the current fake time.
func (clock *Clock) Now() time.Time {
	return clock.now
}

// Advance moves the clock forward by d. Negative values move it back.
func (clock *Clock) Advance(d time.Duration) {
	clock.now = clock.now.Add(d)
}

// Set moves the clock to t.
func (clock *Clock) Set(t time.Time) {
	clock.now = t
}

// Scheduler queues callbacks until Step is called.
type Scheduler struct {
	queue []func()
}

// Schedule queues callback for the next Step.
func (scheduler *Scheduler) Schedule(callback func()) {
	scheduler.queue = append(scheduler.queue, callback)
}

// Pending returns the number of queued callbacks.
func (scheduler *Scheduler) Pending() int {
	return len(scheduler.queue)
}

// Step runs the callbacks queued before the call and returns how many ran.
// Callbacks scheduled while stepping wait for the next Step.
func (scheduler *Scheduler) Step() int {
	queue := scheduler.queue
	scheduler.queue = nil
	for _, callback := range queue {
		callback()
	}
	return len(queue)
}
