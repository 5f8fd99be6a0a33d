package main

import (
	"context"
	"log"

	"ticktock/internal/core/idle"
	"ticktock/internal/core/model"
	"ticktock/internal/core/timer"
	"ticktock/internal/platform"
	"ticktock/internal/storage"
	"ticktock/internal/ui/display"
	"ticktock/internal/ui/preferences"
	"ticktock/internal/ui/tray"
	"ticktock/internal/ui/window"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "TickTock"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	fyneApp := app.NewWithID("com.ticktock.app")

	timerDisplay := display.New(settings.TimerConfig(), display.Options{
		Scheduler: display.FrameScheduler{},
	})

	var mainWindow *window.Window
	var trayManager *tray.Manager
	var prefsWindow *preferences.Window

	toggle := func() {
		if err := timerDisplay.Toggle(); err != nil {
			log.Printf("toggle: %v", err)
			mainWindow.ShowError(err)
		}
	}

	mainWindow = window.New(fyneApp, appName, timerDisplay.CanvasObject(), timerDisplay.Bindings().State, window.Callbacks{
		OnToggle: toggle,
		OnStop:   timerDisplay.Stop,
		OnReset:  timerDisplay.Reset,
		OnPreferences: func() {
			prefsWindow.Show()
		},
	})

	idlePause := newIdlePause(timerDisplay, platform.NewIdleChecker())

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		applySettings(timerDisplay, settings, updated)
		idlePause.Configure(updated)
		settings = updated
		if err := storage.SaveSettings(appName, settings); err != nil {
			log.Printf("save settings: %v", err)
		}
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:   mainWindow.Show,
			OnToggle: toggle,
			OnStop:   timerDisplay.Stop,
			OnReset:  timerDisplay.Reset,
			OnMode: func(mode model.Mode) {
				updated := settings
				updated.Mode = mode
				prefsWindow.UpdateSettings(updated)
				applySettings(timerDisplay, settings, updated)
				settings = updated
				if err := storage.SaveSettings(appName, settings); err != nil {
					log.Printf("save settings: %v", err)
				}
			},
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		trayManager.SetMode(settings.Mode)
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	lastStatus := ""
	updateStatus := func(timer.Event) {
		if trayManager == nil {
			return
		}
		parts := timerDisplay.Snapshot().Parts
		status := parts.Get("h") + ":" + parts.Get("m") + ":" + parts.Get("s")
		if status != lastStatus {
			lastStatus = status
			trayManager.SetStatus(status)
		}
	}
	timerDisplay.On(timer.EventTick, updateStatus)
	timerDisplay.On(timer.EventReset, updateStatus)
	timerDisplay.On(timer.EventStateChange, func(event timer.Event) {
		if trayManager != nil {
			trayManager.SetState(event.State)
		}
	})
	timerDisplay.On(timer.EventDone, func(event timer.Event) {
		if event.Done {
			fyneApp.SendNotification(fyne.NewNotification(appName, "Time is up"))
		}
	})

	go guard.Serve(func() {
		fyne.Do(mainWindow.Show)
	})

	idlePause.Configure(settings)
	defer idlePause.Stop()

	mainWindow.Show()
	timerDisplay.Mount()
	fyneApp.Run()
	timerDisplay.Destroy()
}

func applySettings(timerDisplay *display.Display, previous, updated preferences.Settings) {
	if updated.Mode != previous.Mode {
		timerDisplay.SetMode(updated.Mode)
		if timerDisplay.Snapshot().State == timer.StateStopped {
			timerDisplay.Reset()
		}
	}
	if updated.AllowOverflow != previous.AllowOverflow {
		timerDisplay.SetAllowOverflow(updated.AllowOverflow)
	}
	if updated.Length != previous.Length {
		timerDisplay.SetLength(updated.Length)
	}
}

// idlePause pauses the timer while the user is away and resumes it only
// when it was the one that paused it.
type idlePause struct {
	display *display.Display
	checker idle.Checker
	cancel  context.CancelFunc
	paused  bool
}

func newIdlePause(timerDisplay *display.Display, checker idle.Checker) *idlePause {
	return &idlePause{display: timerDisplay, checker: checker}
}

// Configure restarts the watcher for the given settings. Main goroutine only.
func (pause *idlePause) Configure(settings preferences.Settings) {
	pause.Stop()
	if !settings.IdlePause {
		return
	}

	config := settings.IdleConfig()
	config.OnIdle = func() {
		fyne.Do(pause.onIdle)
	}
	config.OnActive = func() {
		fyne.Do(pause.onActive)
	}
	config.OnError = func(err error) {
		log.Printf("idle check: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	pause.cancel = cancel
	go idle.NewWatcher(pause.checker, config).Run(ctx)
}

// Stop ends the current watcher, if any.
func (pause *idlePause) Stop() {
	if pause.cancel != nil {
		pause.cancel()
		pause.cancel = nil
	}
}

func (pause *idlePause) onIdle() {
	if pause.display.Snapshot().State != timer.StateRunning {
		return
	}
	pause.display.Pause()
	pause.paused = true
	log.Printf("paused while idle")
}

func (pause *idlePause) onActive() {
	if !pause.paused {
		return
	}
	pause.paused = false
	if pause.display.Snapshot().State == timer.StatePaused {
		pause.display.Resume()
		log.Printf("resumed after idle")
	}
}
