package model

import "time"

// Mode selects how elapsed time is reported.
type Mode string

const (
	// ModeCountdown counts down from Length to zero.
	ModeCountdown Mode = "countdown"
	// ModeStopwatch counts up from zero toward Length.
	ModeStopwatch Mode = "stopwatch"
)

// Valid reports whether the mode is one of the known modes.
func (mode Mode) Valid() bool {
	return mode == ModeCountdown || mode == ModeStopwatch
}

// ParseMode converts user input into a Mode.
func ParseMode(value string) (Mode, bool) {
	mode := Mode(value)
	return mode, mode.Valid()
}

// TimerConfig contains the settings a timer is created with.
type TimerConfig struct {
	Mode          Mode
	Length        time.Duration
	AllowOverflow bool

	// Autostart is read by hosts that mount a timer, the engine ignores it.
	Autostart bool
}

// DefaultTimerConfig returns a countdown config that keeps counting past zero.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Mode:          ModeCountdown,
		AllowOverflow: true,
	}
}

// Baseline returns the value a freshly reset timer displays.
func (config TimerConfig) Baseline() time.Duration {
	if config.Mode == ModeCountdown {
		return config.Length
	}
	return 0
}
