package preferences

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"sleeper/internal/storage"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      storage.Settings
	onSave        func(storage.Settings)
	presets       *widget.Entry
	launchAtLogin *widget.Check
	errorText     *canvas.Text
}

// New creates a preferences window.
func New(app fyne.App, settings storage.Settings, onSave func(storage.Settings)) *Window {
	window := app.NewWindow("Sleeper Preferences")

	presets := widget.NewEntry()
	presets.SetPlaceHolder("30, 60, 120")
	launchAtLogin := widget.NewCheck("Launch at login", nil)

	errorText := canvas.NewText("", color.NRGBA{R: 220, G: 60, B: 60, A: 255})
	errorText.TextSize = 12

	form := container.NewVBox(
		widget.NewLabelWithStyle("Quick Schedule", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, widget.NewLabel("min"), presets),
		errorText,
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		launchAtLogin,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 240))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		presets:       presets,
		launchAtLogin: launchAtLogin,
		errorText:     errorText,
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
func (prefs *Window) UpdateSettings(settings storage.Settings) {
	prefs.settings = settings
	prefs.presets.SetText(FormatPresets(settings.QuickPresets))
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
	prefs.setError("")
}

func (prefs *Window) handleSave() {
	presets, err := ParsePresets(prefs.presets.Text)
	if err != nil {
		prefs.setError(err.Error())
		return
	}

	settings := prefs.settings
	settings.QuickPresets = presets
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked
	prefs.settings = settings
	prefs.setError("")

	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) setError(message string) {
	prefs.errorText.Text = message
	prefs.errorText.Refresh()
}
