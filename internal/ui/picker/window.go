package picker

import (
	"errors"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"sleeper/internal/core/timeutil"
)

// ScheduleFunc submits a target and reports a synchronous rejection.
type ScheduleFunc func(target time.Time) error

// Window lets the user pick a sleep time.
type Window struct {
	window     fyne.Window
	entry      *widget.Entry
	errorText  *canvas.Text
	hint       *widget.Label
	minLead    time.Duration
	now        func() time.Time
	onSchedule ScheduleFunc
}

// New creates the picker window. It is hidden until Show.
func New(app fyne.App, minLead time.Duration, now func() time.Time, onSchedule ScheduleFunc) *Window {
	window := app.NewWindow("Schedule Sleep")
	if now == nil {
		now = time.Now
	}

	entry := widget.NewEntry()
	entry.SetPlaceHolder(EntryLayout)

	hint := widget.NewLabel("")
	hint.Wrapping = fyne.TextWrapWord

	errorText := canvas.NewText("", color.NRGBA{R: 220, G: 60, B: 60, A: 255})
	errorText.TextSize = 12

	form := container.NewVBox(
		widget.NewLabelWithStyle("Put the computer to sleep at", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		entry,
		hint,
		errorText,
	)

	scheduleButton := widget.NewButton("Schedule", nil)
	scheduleButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(cancelButton, layout.NewSpacer(), scheduleButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 200))
	window.SetCloseIntercept(window.Hide)

	picker := &Window{
		window:     window,
		entry:      entry,
		errorText:  errorText,
		hint:       hint,
		minLead:    minLead,
		now:        now,
		onSchedule: onSchedule,
	}

	scheduleButton.OnTapped = picker.submit
	entry.OnSubmitted = func(string) { picker.submit() }
	cancelButton.OnTapped = window.Hide

	return picker
}

// Show resets the entry to the earliest selectable minute and shows the window.
func (picker *Window) Show() {
	now := picker.now()
	earliest := timeutil.MinimumSelectableDate(now, picker.minLead)
	picker.entry.SetText(earliest.Format(EntryLayout))
	picker.hint.SetText("Earliest: " + timeutil.FormatForDisplay(earliest) + ". Also accepts 23:30 or 45m.")
	picker.setError("")
	picker.window.Show()
	picker.window.RequestFocus()
}

// Hide closes the window without scheduling.
func (picker *Window) Hide() {
	picker.window.Hide()
}

func (picker *Window) submit() {
	target, err := ParseTarget(picker.entry.Text, picker.now(), time.Local)
	if err != nil {
		picker.setError(err.Error())
		return
	}
	if picker.onSchedule == nil {
		picker.window.Hide()
		return
	}
	if err := picker.onSchedule(target); err != nil {
		var validationErr *timeutil.ValidationError
		if errors.As(err, &validationErr) {
			picker.setError(validationErr.Message)
		} else {
			picker.setError(err.Error())
		}
		return
	}
	picker.window.Hide()
}

func (picker *Window) setError(message string) {
	picker.errorText.Text = message
	picker.errorText.Refresh()
}
