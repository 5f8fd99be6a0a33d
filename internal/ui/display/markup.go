package display

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
)

const timerTextSize = 42

// markup is the default hh:mm:ss:ms rendering.
type markup struct {
	root    *fyne.Container
	hours   *canvas.Text
	minutes *canvas.Text
	seconds *canvas.Text
	millis  *canvas.Text
}

func newMarkup() *markup {
	view := &markup{
		hours:   newDigits(),
		minutes: newDigits(),
		seconds: newDigits(),
		millis:  newDigits(),
	}
	view.root = container.NewCenter(container.NewHBox(
		view.hours,
		newDelimiter(),
		view.minutes,
		newDelimiter(),
		view.seconds,
		newDelimiter(),
		view.millis,
	))
	return view
}

func (view *markup) update(snapshot Snapshot) {
	fill := digitColor(snapshot)
	for _, item := range []struct {
		text  *canvas.Text
		label string
	}{
		{view.hours, "h"},
		{view.minutes, "m"},
		{view.seconds, "s"},
		{view.millis, "ms"},
	} {
		value := snapshot.Parts.Get(item.label)
		if item.text.Text == value && item.text.Color == fill {
			continue
		}
		item.text.Text = value
		item.text.Color = fill
		item.text.Refresh()
	}
}

// Text returns the rendered digits, mainly for tests and accessibility.
func (view *markup) Text() string {
	return view.hours.Text + ":" + view.minutes.Text + ":" + view.seconds.Text + ":" + view.millis.Text
}

func digitColor(snapshot Snapshot) color.Color {
	switch {
	case snapshot.Overflowed:
		return theme.Color(theme.ColorNameError)
	case snapshot.Done:
		return theme.Color(theme.ColorNameSuccess)
	default:
		return theme.Color(theme.ColorNameForeground)
	}
}

func newDigits() *canvas.Text {
	text := canvas.NewText("00", theme.Color(theme.ColorNameForeground))
	text.TextSize = timerTextSize
	text.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	return text
}

func newDelimiter() *canvas.Text {
	text := canvas.NewText(":", theme.Color(theme.ColorNameDisabled))
	text.TextSize = timerTextSize
	return text
}
