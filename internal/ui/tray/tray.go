package tray

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"sleeper/internal/core/model"
	"sleeper/internal/core/timeutil"
)

const menuTitle = "Sleeper"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnOpenPicker    func()
	OnQuickSchedule func(time.Duration)
	OnCancel        func()
	OnPreferences   func()
	OnQuit          func()
}

// Manager renders coordinator state into the system tray.
type Manager struct {
	app       desktop.App
	callbacks Callbacks
	presets   []time.Duration

	state    model.SchedulingState
	snapshot model.Snapshot
	info     string
	icon     IconState
	menu     *fyne.Menu
}

// New creates a tray manager with the provided presets and callbacks.
// app may be nil, in which case the menu is built but never installed.
func New(app desktop.App, presets []time.Duration, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		presets:   append([]time.Duration(nil), presets...),
		state:     model.Idle(),
	}
	manager.refresh()
	return manager
}

// Update renders a new state. info is the schedule description line.
func (manager *Manager) Update(state model.SchedulingState, snapshot model.Snapshot, info string) {
	manager.state = state
	manager.snapshot = snapshot
	manager.info = info
	manager.refresh()
}

// SetPresets replaces the quick schedule durations.
func (manager *Manager) SetPresets(presets []time.Duration) {
	manager.presets = append([]time.Duration(nil), presets...)
	manager.refresh()
}

// Menu returns the menu currently installed.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// Icon returns the icon state currently shown.
func (manager *Manager) Icon() IconState {
	return manager.icon
}

func (manager *Manager) refresh() {
	icon := IconFor(manager.state, manager.snapshot)
	manager.menu = manager.buildMenu()
	if manager.app == nil {
		manager.icon = icon
		return
	}
	if icon != manager.icon {
		manager.app.SetSystemTrayIcon(IconResource(icon))
	}
	manager.icon = icon
	manager.app.SetSystemTrayMenu(manager.menu)
}

func (manager *Manager) buildMenu() *fyne.Menu {
	status := fyne.NewMenuItem(StatusText(manager.state, manager.snapshot), nil)
	status.Disabled = true
	items := []*fyne.MenuItem{status}

	if manager.info != "" {
		info := fyne.NewMenuItem(manager.info, nil)
		info.Disabled = true
		items = append(items, info)
	}
	items = append(items, fyne.NewMenuItemSeparator())

	canSchedule := manager.state.State == model.StateIdle

	schedule := fyne.NewMenuItem("Schedule Sleep...", func() {
		if manager.callbacks.OnOpenPicker != nil {
			manager.callbacks.OnOpenPicker()
		}
	})
	schedule.Disabled = !canSchedule

	quick := fyne.NewMenuItem("Quick Schedule", nil)
	quick.ChildMenu = fyne.NewMenu("", manager.presetItems()...)
	quick.Disabled = !canSchedule || len(manager.presets) == 0

	cancel := fyne.NewMenuItem("Cancel Current Schedule", func() {
		if manager.callbacks.OnCancel != nil {
			manager.callbacks.OnCancel()
		}
	})
	cancel.Disabled = !manager.state.IsActive()

	preferences := fyne.NewMenuItem("Preferences...", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	items = append(items, schedule, quick, cancel, fyne.NewMenuItemSeparator(), preferences, quit)
	return fyne.NewMenu(menuTitle, items...)
}

func (manager *Manager) presetItems() []*fyne.MenuItem {
	items := make([]*fyne.MenuItem, 0, len(manager.presets))
	for _, preset := range manager.presets {
		items = append(items, fyne.NewMenuItem(timeutil.PresetLabel(preset), func() {
			if manager.callbacks.OnQuickSchedule != nil {
				manager.callbacks.OnQuickSchedule(preset)
			}
		}))
	}
	return items
}
