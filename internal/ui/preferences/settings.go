package preferences

import (
	"time"

	"ticktock/internal/core/idle"
	"ticktock/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Mode          model.Mode
	Length        time.Duration
	AllowOverflow bool
	Autostart     bool

	IdlePause      bool
	IdlePauseAfter time.Duration
}

// DefaultSettings returns default settings for TickTock.
func DefaultSettings() Settings {
	return Settings{
		Mode:           model.ModeCountdown,
		Length:         25 * time.Minute,
		AllowOverflow:  true,
		Autostart:      false,
		IdlePause:      true,
		IdlePauseAfter: 5 * time.Minute,
	}
}

// TimerConfig converts settings to a TimerConfig.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		Mode:          settings.Mode,
		Length:        settings.Length,
		AllowOverflow: settings.AllowOverflow,
		Autostart:     settings.Autostart,
	}
}

// IdleConfig converts settings to an idle watcher config without callbacks.
func (settings Settings) IdleConfig() idle.Config {
	return idle.Config{
		After:         settings.IdlePauseAfter,
		CheckInterval: 5 * time.Second,
	}
}
