package display

import (
	"time"

	"ticktock/internal/core/control"
	"ticktock/internal/core/model"
	"ticktock/internal/core/timeparts"
	"ticktock/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/data/binding"
)

// Snapshot is the rendered view of a timer.
type Snapshot struct {
	State      timer.State
	Elapsed    time.Duration
	Parts      timeparts.Parts
	Overflowed bool
	Done       bool
}

// RenderFunc draws a custom presentation for each new snapshot.
type RenderFunc func(Snapshot)

// Options contains runtime collaborators for Display.
type Options struct {
	Clock     timer.Clock
	Scheduler timer.Scheduler
	// Render replaces the default markup when set.
	Render RenderFunc
}

// Bindings expose the mirrored timer fields to fyne widgets.
type Bindings struct {
	State       binding.String
	TimeElapsed binding.Int
	Overflowed  binding.Bool
	Done        binding.Bool
	Text        binding.String
}

// Display mirrors a timer into observable fields and re-emits its events.
// It must be used from the fyne main goroutine.
type Display struct {
	config   model.TimerConfig
	options  Options
	engine   *timer.Timer
	events   *timer.Emitter
	bindings Bindings
	markup   *markup

	state      timer.State
	elapsed    time.Duration
	overflowed bool
	done       bool
}

// New creates a Display and its timer. Without Options.Render the default
// markup is built and available through CanvasObject.
func New(config model.TimerConfig, options Options) *Display {
	display := &Display{
		config:  config,
		options: options,
		events:  timer.NewEmitter(),
		bindings: Bindings{
			State:       binding.NewString(),
			TimeElapsed: binding.NewInt(),
			Overflowed:  binding.NewBool(),
			Done:        binding.NewBool(),
			Text:        binding.NewString(),
		},
	}
	if options.Render == nil {
		display.markup = newMarkup()
	}
	display.initTimer()
	return display
}

// Mount starts the timer when the config asks for autostart.
func (display *Display) Mount() {
	if display.config.Autostart {
		display.engine.Start()
	}
}

// On registers a handler for a re-emitted timer event.
func (display *Display) On(eventType timer.EventType, handler timer.Handler) timer.Subscription {
	return display.events.On(eventType, handler)
}

// Off removes a handler registered with On.
func (display *Display) Off(sub timer.Subscription) {
	display.events.Off(sub)
}

// Bindings returns the observable fields.
func (display *Display) Bindings() Bindings {
	return display.bindings
}

// CanvasObject returns the default markup, or nil when a custom renderer
// was supplied.
func (display *Display) CanvasObject() fyne.CanvasObject {
	if display.markup == nil {
		return nil
	}
	return display.markup.root
}

// Snapshot returns the mirrored state.
func (display *Display) Snapshot() Snapshot {
	return Snapshot{
		State:      display.state,
		Elapsed:    display.elapsed,
		Parts:      timeparts.Split(display.elapsed),
		Overflowed: display.overflowed,
		Done:       display.done,
	}
}

// Config returns the config the current timer was built from, with the
// latest mode, length and overflow values.
func (display *Display) Config() model.TimerConfig {
	return display.config
}

// Start starts or restarts the timer.
func (display *Display) Start() {
	display.engine.Start()
}

// Stop stops the timer without marking it done.
func (display *Display) Stop() {
	display.engine.Stop(false)
}

// Pause pauses a running timer.
func (display *Display) Pause() {
	display.engine.Pause()
}

// Resume resumes a paused timer.
func (display *Display) Resume() {
	display.engine.Resume()
}

// Reset stops the timer and shows its baseline.
func (display *Display) Reset() {
	display.engine.Reset()
}

// Toggle starts, pauses or resumes depending on the mirrored state.
func (display *Display) Toggle() error {
	state, err := control.Toggle(display.state, display.engine)
	if err != nil {
		return err
	}
	display.state = state
	display.publish()
	return nil
}

// SetMode switches between countdown and stopwatch for the next run.
func (display *Display) SetMode(mode model.Mode) {
	if !mode.Valid() {
		return
	}
	display.config.Mode = mode
	display.engine.SetMode(mode)
}

// SetAllowOverflow changes whether the timer counts past its length.
func (display *Display) SetAllowOverflow(allow bool) {
	display.config.AllowOverflow = allow
	display.engine.SetAllowOverflow(allow)
}

// SetLength stops the timer, applies the new length and resets the
// display to the new baseline.
func (display *Display) SetLength(length time.Duration) {
	display.config.Length = length
	display.engine.SetLength(length)
	display.engine.Reset()
}

// Destroy stops the timer and detaches every observer.
func (display *Display) Destroy() {
	if display.engine != nil {
		display.engine.Stop(false)
		display.engine.Destroy()
	}
	display.events.Clear()
}

func (display *Display) initTimer() {
	if display.engine != nil {
		display.engine.Destroy()
	}

	display.engine = timer.New(display.config, timer.Config{
		Clock:     display.options.Clock,
		Scheduler: display.options.Scheduler,
	})
	display.state = display.engine.State()
	display.elapsed = display.engine.Baseline()
	display.overflowed = false
	display.done = false

	for _, eventType := range timer.EventTypes {
		display.engine.On(eventType, display.handle)
	}
	display.publish()
}

func (display *Display) handle(event timer.Event) {
	switch event.Type {
	case timer.EventTick:
		display.elapsed = event.Elapsed
		display.overflowed = display.engine.IsOverflowed()
	case timer.EventReset:
		display.elapsed = event.Elapsed
		display.overflowed = display.engine.IsOverflowed()
		display.done = display.engine.IsDone()
	case timer.EventDone:
		display.done = display.engine.IsDone()
	case timer.EventOverflow:
		display.overflowed = display.engine.IsOverflowed()
	case timer.EventStateChange:
		display.state = event.State
	}
	display.publish()
	display.events.Emit(event)
}

func (display *Display) publish() {
	snapshot := display.Snapshot()

	_ = display.bindings.State.Set(string(snapshot.State))
	_ = display.bindings.TimeElapsed.Set(int(snapshot.Elapsed / time.Millisecond))
	_ = display.bindings.Overflowed.Set(snapshot.Overflowed)
	_ = display.bindings.Done.Set(snapshot.Done)
	_ = display.bindings.Text.Set(snapshot.Parts.Clock())

	if display.options.Render != nil {
		display.options.Render(snapshot)
		return
	}
	display.markup.update(snapshot)
}
