package preferences

import (
	"fmt"
	"strconv"
	"time"

	"ticktock/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	mode      *widget.Select
	minutes   *widget.Entry
	seconds   *widget.Entry
	overflow  *widget.Check
	autostart *widget.Check
	idlePause *widget.Check
	idleAfter *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("TickTock Settings")

	mode := widget.NewSelect([]string{string(model.ModeCountdown), string(model.ModeStopwatch)}, nil)
	minutes := widget.NewEntry()
	seconds := widget.NewEntry()
	overflow := widget.NewCheck("Keep counting past the end", nil)
	autostart := widget.NewCheck("Start the timer on launch", nil)
	idlePause := widget.NewCheck("Pause while I'm away", nil)
	idleAfter := widget.NewEntry()

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Mode"), mode),
		container.NewHBox(widget.NewLabel("Length"), minutes, widget.NewLabel("min"), seconds, widget.NewLabel("sec")),
		overflow,
		autostart,
		widget.NewLabelWithStyle("Idle", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		idlePause,
		container.NewHBox(widget.NewLabel("Away after"), idleAfter, widget.NewLabel("min")),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 320))

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		mode:      mode,
		minutes:   minutes,
		seconds:   seconds,
		overflow:  overflow,
		autostart: autostart,
		idlePause: idlePause,
		idleAfter: idleAfter,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.mode.SetSelected(string(settings.Mode))
	prefs.minutes.SetText(fmt.Sprintf("%d", int(settings.Length/time.Minute)))
	prefs.seconds.SetText(fmt.Sprintf("%d", int((settings.Length%time.Minute)/time.Second)))
	prefs.overflow.SetChecked(settings.AllowOverflow)
	prefs.autostart.SetChecked(settings.Autostart)
	prefs.idlePause.SetChecked(settings.IdlePause)
	prefs.idleAfter.SetText(fmt.Sprintf("%d", int(settings.IdlePauseAfter.Minutes())))
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	prefs.settings = prefs.collect()
	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}

// collect reads the form, keeping the previous value for any field that
// does not parse.
func (prefs *Window) collect() Settings {
	settings := prefs.settings

	if mode, ok := model.ParseMode(prefs.mode.Selected); ok {
		settings.Mode = mode
	}

	minutes, minutesOK := parseNonNegativeInt(prefs.minutes.Text)
	seconds, secondsOK := parseNonNegativeInt(prefs.seconds.Text)
	if minutesOK && secondsOK {
		settings.Length = time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	}

	settings.AllowOverflow = prefs.overflow.Checked
	settings.Autostart = prefs.autostart.Checked
	settings.IdlePause = prefs.idlePause.Checked
	if minutes, ok := parsePositiveInt(prefs.idleAfter.Text); ok {
		settings.IdlePauseAfter = time.Duration(minutes) * time.Minute
	}
	return settings
}

func parsePositiveInt(value string) (int, bool) {
	parsed, ok := parseNonNegativeInt(value)
	if !ok || parsed == 0 {
		return 0, false
	}
	return parsed, true
}

func parseNonNegativeInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}
