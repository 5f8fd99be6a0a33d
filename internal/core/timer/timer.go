package timer

import (
	"time"

	"ticktock/internal/core/model"
)

// Config contains runtime collaborators for Timer.
type Config struct {
	Clock     Clock
	Scheduler Scheduler
}

// Timer is a countdown/stopwatch state machine.
//
// Elapsed time is always derived from absolute timestamps, never accumulated,
// so irregular or throttled frames cannot introduce drift. A Timer is owned
// by a single goroutine: every method must be called from the goroutine that
// runs its scheduler callbacks.
type Timer struct {
	config    model.TimerConfig
	clock     Clock
	scheduler Scheduler
	events    *Emitter

	state      State
	done       bool
	overflowed bool
	pausedAt   time.Time
	endingAt   time.Time
	destroyed  bool

	// generation identifies the current tick chain. Start and Resume begin
	// a new chain so a callback left over from an earlier one retires.
	generation uint64
}

// New creates a stopped Timer. The config is copied; later changes to the
// caller's value do not affect the timer.
func New(config model.TimerConfig, options Config) *Timer {
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if options.Scheduler == nil {
		options.Scheduler = noScheduler{}
	}
	if !config.Mode.Valid() {
		config.Mode = model.ModeCountdown
	}

	return &Timer{
		config:    config,
		clock:     options.Clock,
		scheduler: options.Scheduler,
		events:    NewEmitter(),
		state:     StateStopped,
	}
}

// On registers an event handler.
func (timer *Timer) On(eventType EventType, handler Handler) Subscription {
	return timer.events.On(eventType, handler)
}

// Off removes an event handler.
func (timer *Timer) Off(sub Subscription) {
	timer.events.Off(sub)
}

// Subscribe registers a channel observer, see Emitter.Subscribe.
func (timer *Timer) Subscribe(buffer int) (<-chan Event, func()) {
	return timer.events.Subscribe(buffer)
}

// State returns the run state.
func (timer *Timer) State() State {
	return timer.state
}

// Mode returns the counting mode.
func (timer *Timer) Mode() model.Mode {
	return timer.config.Mode
}

// SetMode changes the counting mode. It takes full effect on the next
// Start or Reset; a run in progress keeps its ending time.
func (timer *Timer) SetMode(mode model.Mode) {
	if !mode.Valid() {
		return
	}
	timer.config.Mode = mode
}

// Length returns the configured run length.
func (timer *Timer) Length() time.Duration {
	return timer.config.Length
}

// AllowOverflow reports whether the timer keeps counting past its length.
func (timer *Timer) AllowOverflow() bool {
	return timer.config.AllowOverflow
}

// SetAllowOverflow toggles overflow for the next time the length is reached.
func (timer *Timer) SetAllowOverflow(allow bool) {
	timer.config.AllowOverflow = allow
}

// IsDone reports whether the length was reached during the current run.
func (timer *Timer) IsDone() bool {
	return timer.done
}

// IsOverflowed reports whether the timer is counting past its length.
func (timer *Timer) IsOverflowed() bool {
	return timer.overflowed
}

// Baseline returns the elapsed value a freshly reset timer displays.
func (timer *Timer) Baseline() time.Duration {
	return timer.config.Baseline()
}

// Elapsed returns the current elapsed value: time left for a countdown,
// time spent for a stopwatch, and zero while stopped.
func (timer *Timer) Elapsed() time.Duration {
	if timer.state == StateStopped {
		return 0
	}

	reference := timer.clock.Now()
	if timer.state == StatePaused {
		reference = timer.pausedAt
	}
	timeLeft := timer.endingAt.Sub(reference)

	if timer.config.Mode == model.ModeCountdown {
		return timeLeft
	}
	return timer.config.Length - timeLeft
}

// Start begins a new run, restarting it if one is already in progress.
func (timer *Timer) Start() {
	if timer.destroyed {
		return
	}
	timer.clearRun()

	timer.state = StateRunning
	timer.endingAt = timer.clock.Now().Add(timer.config.Length)

	timer.emit(EventStateChange, 0)
	timer.emit(EventStart, 0)
	timer.arm()
}

// Pause freezes a running timer. It does nothing in any other state.
func (timer *Timer) Pause() {
	if timer.destroyed || timer.state != StateRunning {
		return
	}
	timer.pausedAt = timer.clock.Now()
	timer.state = StatePaused

	timer.emit(EventStateChange, 0)
	timer.emit(EventPause, 0)
}

// Resume continues a paused timer. It does nothing in any other state.
func (timer *Timer) Resume() {
	if timer.destroyed || timer.state != StatePaused {
		return
	}
	timer.endingAt = timer.endingAt.Add(timer.clock.Now().Sub(timer.pausedAt))
	timer.pausedAt = time.Time{}
	timer.state = StateRunning

	timer.emit(EventStateChange, 0)
	timer.emit(EventResume, 0)
	timer.arm()
}

// Stop ends the run from any state. When markDone is set the run is
// recorded as done.
func (timer *Timer) Stop(markDone bool) {
	if timer.destroyed {
		return
	}
	timer.state = StateStopped
	timer.pausedAt = time.Time{}
	timer.endingAt = time.Time{}

	timer.emit(EventStateChange, 0)
	timer.setDone(markDone)
	timer.setOverflowed(false)
	timer.emit(EventStop, 0)
}

// Reset stops the timer, clears the run and announces the baseline value.
func (timer *Timer) Reset() {
	if timer.destroyed {
		return
	}
	timer.state = StateStopped
	timer.emit(EventStateChange, 0)
	timer.clearRun()

	timer.emit(EventReset, timer.Baseline())
}

// SetLength stops an active run and assigns a new length. It does not
// start a new run.
func (timer *Timer) SetLength(length time.Duration) {
	if timer.destroyed {
		return
	}
	if timer.state != StateStopped {
		timer.Stop(false)
	}
	timer.clearRun()
	timer.config.Length = length
}

// Destroy detaches every observer. A destroyed timer ignores all control
// calls and any tick still scheduled on the host.
func (timer *Timer) Destroy() {
	timer.destroyed = true
	timer.events.Clear()
}

func (timer *Timer) arm() {
	timer.generation++
	timer.tick(timer.generation)
}

func (timer *Timer) schedule(generation uint64) {
	timer.scheduler.Schedule(func() {
		timer.tick(generation)
	})
}

func (timer *Timer) tick(generation uint64) {
	if timer.destroyed || timer.state != StateRunning || generation != timer.generation {
		return
	}

	if timer.clock.Now().Before(timer.endingAt) {
		timer.emit(EventTick, timer.Elapsed())
		timer.schedule(generation)
		return
	}

	if timer.config.AllowOverflow {
		timer.setDone(true)
		timer.emit(EventTick, timer.Elapsed())
		timer.setOverflowed(true)
		timer.schedule(generation)
		return
	}

	boundary := time.Duration(0)
	if timer.config.Mode == model.ModeStopwatch {
		boundary = timer.config.Length
	}
	timer.emit(EventTick, boundary)
	timer.Stop(true)
}

func (timer *Timer) clearRun() {
	timer.pausedAt = time.Time{}
	timer.endingAt = time.Time{}
	timer.setDone(false)
	timer.setOverflowed(false)
}

func (timer *Timer) setDone(done bool) {
	if timer.done == done {
		return
	}
	timer.done = done
	timer.emit(EventDone, 0)
}

func (timer *Timer) setOverflowed(overflowed bool) {
	if timer.overflowed == overflowed {
		return
	}
	timer.overflowed = overflowed
	timer.emit(EventOverflow, 0)
}

func (timer *Timer) emit(eventType EventType, elapsed time.Duration) {
	if timer.destroyed {
		return
	}
	timer.events.Emit(Event{
		Type:       eventType,
		State:      timer.state,
		Elapsed:    elapsed,
		Done:       timer.done,
		Overflowed: timer.overflowed,
		At:         timer.clock.Now(),
	})
}
