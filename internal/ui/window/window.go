package window

import (
	"ticktock/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines window button handlers.
type Callbacks struct {
	OnToggle      func()
	OnReset       func()
	OnStop        func()
	OnPreferences func()
}

// Window is the main timer window.
type Window struct {
	window       fyne.Window
	callbacks    Callbacks
	toggleButton *widget.Button
	resetButton  *widget.Button
	stopButton   *widget.Button
	statusLabel  *widget.Label
}

// New creates the main window around content. state is the display's
// mirrored run state and drives the toggle button label.
func New(app fyne.App, title string, content fyne.CanvasObject, state binding.String, callbacks Callbacks) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	win := &Window{
		window:      window,
		callbacks:   callbacks,
		statusLabel: widget.NewLabelWithData(state),
	}
	win.toggleButton = widget.NewButton("Start", func() {
		if win.callbacks.OnToggle != nil {
			win.callbacks.OnToggle()
		}
	})
	win.stopButton = widget.NewButton("Stop", func() {
		if win.callbacks.OnStop != nil {
			win.callbacks.OnStop()
		}
	})
	win.resetButton = widget.NewButton("Reset", func() {
		if win.callbacks.OnReset != nil {
			win.callbacks.OnReset()
		}
	})
	settingsButton := widget.NewButton("Settings", func() {
		if win.callbacks.OnPreferences != nil {
			win.callbacks.OnPreferences()
		}
	})

	buttons := container.NewHBox(win.toggleButton, win.stopButton, win.resetButton, layout.NewSpacer(), settingsButton)
	window.SetContent(container.NewBorder(nil, container.NewVBox(win.statusLabel, buttons), nil, nil, content))
	window.Resize(fyne.NewSize(420, 200))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	state.AddListener(binding.NewDataListener(func() {
		value, err := state.Get()
		if err != nil {
			return
		}
		win.SetState(timer.State(value))
	}))

	return win
}

// SetState updates button labels for the given run state.
func (win *Window) SetState(state timer.State) {
	win.toggleButton.SetText(ToggleLabel(state))
	if state == timer.StateStopped {
		win.stopButton.Disable()
	} else {
		win.stopButton.Enable()
	}
}

// Show displays the window and brings it to the front.
func (win *Window) Show() {
	win.window.Show()
	win.window.RequestFocus()
}

// ShowError reports err in a dialog on top of the window.
func (win *Window) ShowError(err error) {
	dialog.ShowError(err, win.window)
}

// Hide hides the window.
func (win *Window) Hide() {
	win.window.Hide()
}

// ToggleLabel names the action the toggle button performs in state.
func ToggleLabel(state timer.State) string {
	switch state {
	case timer.StateRunning:
		return "Pause"
	case timer.StatePaused:
		return "Resume"
	default:
		return "Start"
	}
}
