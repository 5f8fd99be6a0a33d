package timer_test

import (
	"testing"
	"time"

	"ticktock/internal/core/model"
	"ticktock/internal/core/timer"
	"ticktock/internal/core/timer/timertest"
)

type recorder struct {
	events []timer.Event
}

func record(engine *timer.Timer) *recorder {
	rec := &recorder{}
	for _, eventType := range timer.EventTypes {
		engine.On(eventType, func(event timer.Event) {
			rec.events = append(rec.events, event)
		})
	}
	return rec
}

func (rec *recorder) types() []timer.EventType {
	types := make([]timer.EventType, 0, len(rec.events))
	for _, event := range rec.events {
		types = append(types, event.Type)
	}
	return types
}

func (rec *recorder) count(eventType timer.EventType) int {
	total := 0
	for _, event := range rec.events {
		if event.Type == eventType {
			total++
		}
	}
	return total
}

func (rec *recorder) ticks() []time.Duration {
	var values []time.Duration
	for _, event := range rec.events {
		if event.Type == timer.EventTick {
			values = append(values, event.Elapsed)
		}
	}
	return values
}

func (rec *recorder) reset() {
	rec.events = nil
}

func newTimer(mode model.Mode, length time.Duration, allowOverflow bool) (*timer.Timer, *timertest.Clock, *timertest.Scheduler) {
	clock := timertest.NewClock()
	scheduler := &timertest.Scheduler{}
	engine := timer.New(model.TimerConfig{
		Mode:          mode,
		Length:        length,
		AllowOverflow: allowOverflow,
	}, timer.Config{Clock: clock, Scheduler: scheduler})
	return engine, clock, scheduler
}

func equalTypes(got, want []timer.EventType) bool {
	if len(got) != len(want) {
		return false
	}
	for index := range got {
		if got[index] != want[index] {
			return false
		}
	}
	return true
}

func TestNew_DefaultsToStopped(t *testing.T) {
	engine, _, _ := newTimer(model.ModeCountdown, time.Second, false)

	if engine.State() != timer.StateStopped {
		t.Errorf("expected stopped, got %s", engine.State())
	}
	if engine.Elapsed() != 0 {
		t.Errorf("expected zero elapsed while stopped, got %s", engine.Elapsed())
	}
	if engine.IsDone() || engine.IsOverflowed() {
		t.Error("expected done and overflowed to be false")
	}
}

func TestNew_InvalidModeFallsBackToCountdown(t *testing.T) {
	engine, _, _ := newTimer(model.Mode("hourglass"), time.Second, false)

	if engine.Mode() != model.ModeCountdown {
		t.Errorf("expected countdown, got %s", engine.Mode())
	}
}

func TestStart_EmitsStateChangeStartThenTick(t *testing.T) {
	engine, _, scheduler := newTimer(model.ModeCountdown, 10*time.Second, false)
	rec := record(engine)

	engine.Start()

	want := []timer.EventType{timer.EventStateChange, timer.EventStart, timer.EventTick}
	if got := rec.types(); !equalTypes(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if rec.events[0].State != timer.StateRunning {
		t.Errorf("expected state_change to carry running, got %s", rec.events[0].State)
	}
	if rec.events[2].Elapsed != 10*time.Second {
		t.Errorf("expected first tick at 10s, got %s", rec.events[2].Elapsed)
	}
	if scheduler.Pending() != 1 {
		t.Errorf("expected one scheduled tick, got %d", scheduler.Pending())
	}
}

func TestCountdown_ReachesTargetWithoutOverflow(t *testing.T) {
	engine, clock, scheduler := newTimer(model.ModeCountdown, time.Second, false)
	rec := record(engine)

	engine.Start()
	rec.reset()

	clock.Advance(time.Second)
	scheduler.Step()

	want := []timer.EventType{
		timer.EventTick,
		timer.EventStateChange,
		timer.EventDone,
		timer.EventStop,
	}
	if got := rec.types(); !equalTypes(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if rec.events[0].Elapsed != 0 {
		t.Errorf("expected final tick at 0, got %s", rec.events[0].Elapsed)
	}
	if !engine.IsDone() {
		t.Error("expected done")
	}
	if engine.IsOverflowed() {
		t.Error("expected no overflow")
	}
	if engine.State() != timer.StateStopped {
		t.Errorf("expected stopped, got %s", engine.State())
	}
	if scheduler.Pending() != 0 {
		t.Errorf("expected no further ticks, got %d pending", scheduler.Pending())
	}
}

func TestStopwatch_ClampsToLengthWithoutOverflow(t *testing.T) {
	engine, clock, scheduler := newTimer(model.ModeStopwatch, 500*time.Millisecond, false)
	rec := record(engine)

	engine.Start()
	clock.Advance(800 * time.Millisecond)
	scheduler.Step()

	ticks := rec.ticks()
	if last := ticks[len(ticks)-1]; last != 500*time.Millisecond {
		t.Errorf("expected final tick clamped to 500ms, got %s", last)
	}
	if rec.count(timer.EventStop) != 1 {
		t.Errorf("expected one stop, got %d", rec.count(timer.EventStop))
	}
	if rec.count(timer.EventOverflow) != 0 {
		t.Errorf("expected no overflow events, got %d", rec.count(timer.EventOverflow))
	}
}

func TestStopwatch_OverflowFlagsFlipOnce(t *testing.T) {
	engine, clock, scheduler := newTimer(model.ModeStopwatch, 500*time.Millisecond, true)
	rec := record(engine)

	engine.Start()
	for step := 0; step < 10; step++ {
		clock.Advance(100 * time.Millisecond)
		scheduler.Step()
	}

	if rec.count(timer.EventDone) != 1 {
		t.Errorf("expected one done event, got %d", rec.count(timer.EventDone))
	}
	if rec.count(timer.EventOverflow) != 1 {
		t.Errorf("expected one overflow event, got %d", rec.count(timer.EventOverflow))
	}
	if !engine.IsDone() || !engine.IsOverflowed() {
		t.Error("expected done and overflowed")
	}
	if engine.State() != timer.StateRunning {
		t.Errorf("expected still running, got %s", engine.State())
	}

	ticks := rec.ticks()
	if last := ticks[len(ticks)-1]; last <= 500*time.Millisecond {
		t.Errorf("expected ticks past 500ms, got %s", last)
	}
	for index := 1; index < len(ticks); index++ {
		if ticks[index] < ticks[index-1] {
			t.Fatalf("tick %d went backwards: %s after %s", index, ticks[index], ticks[index-1])
		}
	}
}

func TestCountdown_OverflowGoesNegative(t *testing.T) {
	engine, clock, scheduler := newTimer(model.ModeCountdown, time.Second, true)
	rec := record(engine)

	engine.Start()
	clock.Advance(1500 * time.Millisecond)
	scheduler.Step()

	ticks := rec.ticks()
	if last := ticks[len(ticks)-1]; last != -500*time.Millisecond {
		t.Errorf("expected -500ms, got %s", last)
	}
	if rec.count(timer.EventStop) != 0 {
		t.Errorf("expected no stop while overflowing, got %d", rec.count(timer.EventStop))
	}
}

func TestOverflow_DoneSetBeforeOverflowTick(t *testing.T) {
	engine, clock, scheduler := newTimer(model.ModeCountdown, time.Second, true)
	rec := record(engine)

	engine.Start()
	rec.reset()
	clock.Advance(time.Second)
	scheduler.Step()

	want := []timer.EventType{timer.EventDone, timer.EventTick, timer.EventOverflow}
	if got := rec.types(); !equalTypes(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !rec.events[1].Done || rec.events[1].Overflowed {
		t.Errorf("expected boundary tick with done set and overflow not yet set, got %+v", rec.events[1])
	}
}

func TestElapsed_Monotonic(t *testing.T) {
	tests := []struct {
		name       string
		mode       model.Mode
		length     time.Duration
		increasing bool
	}{
		{"countdown zero", model.ModeCountdown, 0, false},
		{"countdown short", model.ModeCountdown, 350 * time.Millisecond, false},
		{"countdown long", model.ModeCountdown, 3 * time.Second, false},
		{"stopwatch zero", model.ModeStopwatch, 0, true},
		{"stopwatch short", model.ModeStopwatch, 350 * time.Millisecond, true},
		{"stopwatch long", model.ModeStopwatch, 3 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, clock, scheduler := newTimer(tt.mode, tt.length, false)
			rec := record(engine)

			engine.Start()
			for engine.State() == timer.StateRunning {
				clock.Advance(70 * time.Millisecond)
				scheduler.Step()
			}

			ticks := rec.ticks()
			for index, value := range ticks {
				if value < 0 || value > tt.length {
					t.Errorf("tick %d out of range: %s", index, value)
				}
				if index == 0 {
					continue
				}
				if tt.increasing && value < ticks[index-1] {
					t.Errorf("tick %d decreased: %s after %s", index, value, ticks[index-1])
				}
				if !tt.increasing && value > ticks[index-1] {
					t.Errorf("tick %d increased: %s after %s", index, value, ticks[index-1])
				}
			}
			if !engine.IsDone() {
				t.Error("expected done after the run ended")
			}
		})
	}
}

func TestPause_FreezesElapsed(t *testing.T) {
	engine, clock, scheduler := newTimer(model.ModeCountdown, 10*time.Second, false)
	rec := record(engine)

	engine.Start()
	clock.Advance(3 * time.Second)
	scheduler.Step()
	rec.reset()

	engine.Pause()
	want := []timer.EventType{timer.EventStateChange, timer.EventPause}
	if got := rec.types(); !equalTypes(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	atPause := engine.Elapsed()
	clock.Advance(time.Hour)
	if engine.Elapsed() != atPause {
		t.Errorf("expected elapsed frozen at %s, got %s", atPause, engine.Elapsed())
	}

	scheduler.Step()
	if rec.count(timer.EventTick) != 0 {
		t.Error("expected no ticks while paused")
	}
}

func TestPauseResume_RoundTripKeepsProgress(t *testing.T) {
	pauses := []time.Duration{0, time.Millisecond, 5 * time.Second, 48 * time.Hour}

	for _, pause := range pauses {
		t.Run(pause.String(), func(t *testing.T) {
			engine, clock, scheduler := newTimer(model.ModeStopwatch, time.Minute, false)
			rec := record(engine)

			engine.Start()
			clock.Advance(12 * time.Second)
			scheduler.Step()

			engine.Pause()
			atPause := engine.Elapsed()
			clock.Advance(pause)
			rec.reset()
			engine.Resume()

			want := []timer.EventType{timer.EventStateChange, timer.EventResume, timer.EventTick}
			if got := rec.types(); !equalTypes(got, want) {
				t.Fatalf("expected %v, got %v", want, got)
			}
			if engine.Elapsed() != atPause {
				t.Errorf("expected %s after resume, got %s", atPause, engine.Elapsed())
			}
			if rec.events[2].Elapsed != atPause {
				t.Errorf("expected resume tick at %s, got %s", atPause, rec.events[2].Elapsed)
			}
		})
	}
}

func TestResume_RetiresStaleTickChain(t *testing.T) {
	engine, clock, scheduler := newTimer(model.ModeCountdown, 10*time.Second, false)
	rec := record(engine)

	engine.Start()
	engine.Pause()
	engine.Resume()
	rec.reset()

	if scheduler.Pending() != 2 {
		t.Fatalf("expected stale and current callbacks queued, got %d", scheduler.Pending())
	}
	clock.Advance(time.Second)
	scheduler.Step()

	if rec.count(timer.EventTick) != 1 {
		t.Errorf("expected a single tick per frame, got %d", rec.count(timer.EventTick))
	}
	if scheduler.Pending() != 1 {
		t.Errorf("expected one live chain, got %d pending", scheduler.Pending())
	}
}

func TestStart_WhileRunningRestarts(t *testing.T) {
	engine, clock, scheduler := newTimer(model.ModeCountdown, 10*time.Second, true)
	rec := record(engine)

	engine.Start()
	clock.Advance(11 * time.Second)
	scheduler.Step()
	if !engine.IsOverflowed() {
		t.Fatal("expected overflow before restart")
	}

	rec.reset()
	engine.Start()

	if engine.IsDone() || engine.IsOverflowed() {
		t.Error("expected restart to clear done and overflowed")
	}
	if rec.count(timer.EventDone) != 1 || rec.count(timer.EventOverflow) != 1 {
		t.Errorf("expected clearing edges for done and overflow, got %v", rec.types())
	}
	ticks := rec.ticks()
	if len(ticks) != 1 || ticks[0] != 10*time.Second {
		t.Errorf("expected a fresh tick at 10s, got %v", ticks)
	}

	rec.reset()
	scheduler.Step()
	if rec.count(timer.EventTick) != 1 {
		t.Errorf("expected a single tick chain after restart, got %d ticks", rec.count(timer.EventTick))
	}
}

func TestPause_WhileStoppedIsNoop(t *testing.T) {
	engine, _, _ := newTimer(model.ModeCountdown, time.Second, false)
	rec := record(engine)

	engine.Pause()

	if len(rec.events) != 0 {
		t.Errorf("expected no events, got %v", rec.types())
	}
	if engine.State() != timer.StateStopped {
		t.Errorf("expected stopped, got %s", engine.State())
	}
}

func TestResume_WhenNotPausedIsNoop(t *testing.T) {
	engine, _, _ := newTimer(model.ModeCountdown, time.Second, false)
	rec := record(engine)

	engine.Resume()
	engine.Start()
	rec.reset()
	engine.Resume()

	if len(rec.events) != 0 {
		t.Errorf("expected no events, got %v", rec.types())
	}
}

func TestStop_MarkDone(t *testing.T) {
	tests := []struct {
		name     string
		markDone bool
		want     []timer.EventType
	}{
		{
			name:     "plain",
			markDone: false,
			want:     []timer.EventType{timer.EventStateChange, timer.EventStop},
		},
		{
			name:     "mark done",
			markDone: true,
			want:     []timer.EventType{timer.EventStateChange, timer.EventDone, timer.EventStop},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _, _ := newTimer(model.ModeCountdown, time.Minute, false)
			rec := record(engine)

			engine.Start()
			rec.reset()
			engine.Stop(tt.markDone)

			if got := rec.types(); !equalTypes(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if engine.IsDone() != tt.markDone {
				t.Errorf("expected done=%v, got %v", tt.markDone, engine.IsDone())
			}
			if engine.Elapsed() != 0 {
				t.Errorf("expected zero elapsed after stop, got %s", engine.Elapsed())
			}
		})
	}
}

func TestReset_AnnouncesBaseline(t *testing.T) {
	tests := []struct {
		name string
		mode model.Mode
		want time.Duration
	}{
		{"countdown", model.ModeCountdown, 90 * time.Second},
		{"stopwatch", model.ModeStopwatch, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, clock, scheduler := newTimer(tt.mode, 90*time.Second, true)
			rec := record(engine)

			engine.Start()
			clock.Advance(2 * time.Minute)
			scheduler.Step()
			rec.reset()

			engine.Reset()

			last := rec.events[len(rec.events)-1]
			if last.Type != timer.EventReset {
				t.Fatalf("expected reset last, got %v", rec.types())
			}
			if last.Elapsed != tt.want {
				t.Errorf("expected reset at %s, got %s", tt.want, last.Elapsed)
			}
			if last.Done || last.Overflowed {
				t.Errorf("expected flags cleared on reset, got %+v", last)
			}
			if engine.State() != timer.StateStopped {
				t.Errorf("expected stopped, got %s", engine.State())
			}
			if rec.count(timer.EventStop) != 0 {
				t.Error("expected reset not to emit stop")
			}
		})
	}
}

func TestSetLength_StopsActiveRun(t *testing.T) {
	for _, paused := range []bool{false, true} {
		engine, clock, scheduler := newTimer(model.ModeCountdown, 10*time.Second, true)
		rec := record(engine)

		engine.Start()
		clock.Advance(11 * time.Second)
		scheduler.Step()
		if paused {
			engine.Pause()
		}
		rec.reset()

		engine.SetLength(3 * time.Second)

		if rec.count(timer.EventStop) != 1 {
			t.Errorf("paused=%v: expected one stop, got %v", paused, rec.types())
		}
		if engine.State() != timer.StateStopped {
			t.Errorf("paused=%v: expected stopped, got %s", paused, engine.State())
		}
		if engine.IsDone() || engine.IsOverflowed() {
			t.Errorf("paused=%v: expected flags cleared", paused)
		}

		rec.reset()
		engine.Start()
		if ticks := rec.ticks(); len(ticks) != 1 || ticks[0] != 3*time.Second {
			t.Errorf("paused=%v: expected start against new length, got %v", paused, ticks)
		}
	}
}

func TestSetLength_WhileStoppedIsSilent(t *testing.T) {
	engine, _, _ := newTimer(model.ModeCountdown, 10*time.Second, false)
	rec := record(engine)

	engine.SetLength(time.Minute)

	if len(rec.events) != 0 {
		t.Errorf("expected no events, got %v", rec.types())
	}
	if engine.Length() != time.Minute {
		t.Errorf("expected length 1m, got %s", engine.Length())
	}
}

func TestSetMode_IgnoresUnknownMode(t *testing.T) {
	engine, _, _ := newTimer(model.ModeStopwatch, time.Second, false)

	engine.SetMode(model.Mode("sundial"))
	if engine.Mode() != model.ModeStopwatch {
		t.Errorf("expected stopwatch, got %s", engine.Mode())
	}

	engine.SetMode(model.ModeCountdown)
	if engine.Mode() != model.ModeCountdown {
		t.Errorf("expected countdown, got %s", engine.Mode())
	}
}

func TestSetAllowOverflow_AppliesAtBoundary(t *testing.T) {
	engine, clock, scheduler := newTimer(model.ModeCountdown, time.Second, true)

	engine.Start()
	engine.SetAllowOverflow(false)
	clock.Advance(2 * time.Second)
	scheduler.Step()

	if engine.State() != timer.StateStopped {
		t.Errorf("expected stop at the boundary, got %s", engine.State())
	}
	if engine.IsOverflowed() {
		t.Error("expected no overflow")
	}
}

func TestSetAllowOverflow_OffDuringOverflow(t *testing.T) {
	engine, clock, scheduler := newTimer(model.ModeStopwatch, time.Second, true)
	rec := record(engine)

	engine.Start()
	clock.Advance(1500 * time.Millisecond)
	scheduler.Step()
	if !engine.IsOverflowed() {
		t.Fatal("expected overflow before turning it off")
	}

	engine.SetAllowOverflow(false)
	rec.reset()
	clock.Advance(100 * time.Millisecond)
	scheduler.Step()

	want := []timer.EventType{
		timer.EventTick,
		timer.EventStateChange,
		timer.EventOverflow,
		timer.EventStop,
	}
	if got := rec.types(); !equalTypes(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if rec.events[0].Elapsed != time.Second {
		t.Errorf("expected final tick clamped to 1s, got %s", rec.events[0].Elapsed)
	}
	if !engine.IsDone() || engine.IsOverflowed() {
		t.Errorf("expected done kept and overflow cleared, got done=%v overflowed=%v", engine.IsDone(), engine.IsOverflowed())
	}
}

func TestStart_NegativeLength(t *testing.T) {
	tests := []struct {
		name          string
		mode          model.Mode
		allowOverflow bool
		want          []timer.EventType
		tick          time.Duration
		state         timer.State
	}{
		{
			name: "countdown",
			mode: model.ModeCountdown,
			want: []timer.EventType{
				timer.EventStateChange, timer.EventStart, timer.EventTick,
				timer.EventStateChange, timer.EventDone, timer.EventStop,
			},
			tick:  0,
			state: timer.StateStopped,
		},
		{
			name: "stopwatch",
			mode: model.ModeStopwatch,
			want: []timer.EventType{
				timer.EventStateChange, timer.EventStart, timer.EventTick,
				timer.EventStateChange, timer.EventDone, timer.EventStop,
			},
			tick:  -time.Second,
			state: timer.StateStopped,
		},
		{
			name:          "countdown overflow",
			mode:          model.ModeCountdown,
			allowOverflow: true,
			want: []timer.EventType{
				timer.EventStateChange, timer.EventStart,
				timer.EventDone, timer.EventTick, timer.EventOverflow,
			},
			tick:  -time.Second,
			state: timer.StateRunning,
		},
		{
			name:          "stopwatch overflow",
			mode:          model.ModeStopwatch,
			allowOverflow: true,
			want: []timer.EventType{
				timer.EventStateChange, timer.EventStart,
				timer.EventDone, timer.EventTick, timer.EventOverflow,
			},
			tick:  0,
			state: timer.StateRunning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _, _ := newTimer(tt.mode, -time.Second, tt.allowOverflow)
			rec := record(engine)

			engine.Start()

			if got := rec.types(); !equalTypes(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			ticks := rec.ticks()
			if len(ticks) != 1 || ticks[0] != tt.tick {
				t.Errorf("expected a single tick at %s, got %v", tt.tick, ticks)
			}
			if engine.State() != tt.state {
				t.Errorf("expected %s, got %s", tt.state, engine.State())
			}
			if !engine.IsDone() {
				t.Error("expected done on the first tick")
			}
			if engine.IsOverflowed() != tt.allowOverflow {
				t.Errorf("expected overflowed=%v, got %v", tt.allowOverflow, engine.IsOverflowed())
			}
		})
	}
}

func TestDestroy_SilencesEverything(t *testing.T) {
	engine, clock, scheduler := newTimer(model.ModeCountdown, time.Second, false)
	rec := record(engine)
	events, _ := engine.Subscribe(4)

	engine.Start()
	rec.reset()
	engine.Destroy()

	clock.Advance(2 * time.Second)
	scheduler.Step()
	engine.Start()
	engine.Pause()
	engine.Reset()
	engine.Stop(true)

	if len(rec.events) != 0 {
		t.Errorf("expected no events after destroy, got %v", rec.types())
	}
	if scheduler.Pending() != 0 {
		t.Errorf("expected nothing rescheduled after destroy, got %d", scheduler.Pending())
	}

	drained := 0
	for range events {
		drained++
	}
	if drained != 3 {
		t.Errorf("expected the 3 start events before the channel closed, got %d", drained)
	}
}

func TestOff_RemovesHandler(t *testing.T) {
	engine, _, _ := newTimer(model.ModeCountdown, time.Second, false)

	calls := 0
	sub := engine.On(timer.EventStart, func(timer.Event) {
		calls++
	})
	engine.Start()
	engine.Off(sub)
	engine.Start()

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}
