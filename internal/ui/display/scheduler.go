package display

import (
	"time"

	"fyne.io/fyne/v2"
)

// FrameScheduler runs timer callbacks on the fyne main goroutine after
// roughly one display frame.
type FrameScheduler struct {
	Interval time.Duration
}

// Schedule implements timer.Scheduler.
func (scheduler FrameScheduler) Schedule(callback func()) {
	interval := scheduler.Interval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	time.AfterFunc(interval, func() {
		fyne.Do(callback)
	})
}
