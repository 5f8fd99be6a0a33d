package tray

import (
	"fmt"

	"ticktock/internal/core/model"
	"ticktock/internal/core/timer"
	"ticktock/internal/ui/window"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "TickTock"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnStop        func()
	OnReset       func()
	OnMode        func(model.Mode)
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	stopItem    *fyne.MenuItem
	resetItem   *fyne.MenuItem
	modeItem    *fyne.MenuItem
	countdown   *fyne.MenuItem
	stopwatch   *fyne.MenuItem
	state       timer.State
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		state:     timer.StateStopped,
	}

	manager.statusItem = fyne.NewMenuItem("Status: stopped", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})
	manager.stopItem = fyne.NewMenuItem("Stop", func() {
		if manager.callbacks.OnStop != nil {
			manager.callbacks.OnStop()
		}
	})
	manager.stopItem.Disabled = true
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	manager.countdown = fyne.NewMenuItem("Countdown", func() {
		manager.selectMode(model.ModeCountdown)
	})
	manager.stopwatch = fyne.NewMenuItem("Stopwatch", func() {
		manager.selectMode(model.ModeStopwatch)
	})
	manager.modeItem = fyne.NewMenuItem("Mode", nil)
	manager.modeItem.ChildMenu = fyne.NewMenu("", manager.countdown, manager.stopwatch)

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label, typically with the formatted time.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetState updates items that depend on the run state.
func (manager *Manager) SetState(state timer.State) {
	if manager.state == state {
		return
	}
	manager.state = state
	manager.toggleItem.Label = window.ToggleLabel(state)
	manager.stopItem.Disabled = state == timer.StateStopped
	manager.refreshStatus()
}

// SetMode checks the menu item of the active mode.
func (manager *Manager) SetMode(mode model.Mode) {
	manager.countdown.Checked = mode == model.ModeCountdown
	manager.stopwatch.Checked = mode == model.ModeStopwatch
	manager.refreshMenu()
}

func (manager *Manager) selectMode(mode model.Mode) {
	manager.SetMode(mode)
	if manager.callbacks.OnMode != nil {
		manager.callbacks.OnMode(mode)
	}
}

func (manager *Manager) refreshStatus() {
	status := string(manager.state)
	if manager.statusLabel != "" {
		status = fmt.Sprintf("%s (%s)", manager.statusLabel, manager.state)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.toggleItem,
		manager.stopItem,
		manager.resetItem,
		manager.modeItem,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
