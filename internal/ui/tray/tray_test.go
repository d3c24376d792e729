package tray

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleeper/internal/core/model"
)

func TestIconFor(t *testing.T) {
	target := time.Date(2026, 4, 2, 23, 0, 0, 0, time.Local)
	testCases := []struct {
		name     string
		state    model.SchedulingState
		snapshot model.Snapshot
		want     IconState
	}{
		{name: "idle", state: model.Idle(), want: IconIdle},
		{name: "scheduling", state: model.Scheduling(), want: IconScheduling},
		{name: "error", state: model.Failed("nope"), want: IconError},
		{name: "active normal", state: model.ActiveCountdown(target), snapshot: model.Snapshot{Phase: model.PhaseNormal}, want: IconActive},
		{name: "active critical", state: model.ActiveCountdown(target), snapshot: model.Snapshot{Phase: model.PhaseCritical}, want: IconWarning},
		{name: "active final", state: model.ActiveCountdown(target), snapshot: model.Snapshot{Phase: model.PhaseFinal}, want: IconWarning},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IconFor(tc.state, tc.snapshot))
		})
	}
}

func TestStatusText(t *testing.T) {
	target := time.Date(2026, 4, 2, 23, 0, 0, 0, time.Local)

	assert.Equal(t, "No sleep scheduled", StatusText(model.Idle(), model.Snapshot{}))
	assert.Equal(t, "Scheduling sleep...", StatusText(model.Scheduling(), model.Snapshot{}))
	assert.Equal(t, "Administrator authentication was cancelled", StatusText(model.Failed("Administrator authentication was cancelled"), model.Snapshot{}))
	assert.Equal(t, "Sleep scheduled", StatusText(model.ActiveCountdown(target), model.Snapshot{}))
	assert.Equal(t, "Sleeping in 1h 5m", StatusText(model.ActiveCountdown(target), model.Snapshot{Formatted: "1h 5m"}))
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	require.FailNow(t, "menu item not found", label)
	return nil
}

func TestMenuWhileIdle(t *testing.T) {
	var picked []time.Duration
	opened := false
	manager := New(nil, []time.Duration{30 * time.Minute, time.Hour}, Callbacks{
		OnOpenPicker:    func() { opened = true },
		OnQuickSchedule: func(d time.Duration) { picked = append(picked, d) },
	})
	menu := manager.Menu()

	assert.Equal(t, "No sleep scheduled", menu.Items[0].Label)
	assert.True(t, menu.Items[0].Disabled)
	assert.True(t, findItem(t, menu, "Cancel Current Schedule").Disabled)

	findItem(t, menu, "Schedule Sleep...").Action()
	assert.True(t, opened)

	quick := findItem(t, menu, "Quick Schedule")
	require.Len(t, quick.ChildMenu.Items, 2)
	assert.Equal(t, "Sleep in 30m", quick.ChildMenu.Items[0].Label)
	assert.Equal(t, "Sleep in 1h", quick.ChildMenu.Items[1].Label)
	quick.ChildMenu.Items[1].Action()
	quick.ChildMenu.Items[0].Action()
	assert.Equal(t, []time.Duration{time.Hour, 30 * time.Minute}, picked)
	assert.Equal(t, IconIdle, manager.Icon())
}

func TestMenuWhileActive(t *testing.T) {
	cancelled := false
	manager := New(nil, []time.Duration{30 * time.Minute}, Callbacks{OnCancel: func() { cancelled = true }})
	target := time.Date(2026, 4, 2, 23, 0, 0, 0, time.Local)

	manager.Update(model.ActiveCountdown(target), model.Snapshot{Formatted: "4:59", Phase: model.PhaseCritical}, "Next sleep: Thu Apr 2 23:00")
	menu := manager.Menu()

	assert.Equal(t, "Sleeping in 4:59", menu.Items[0].Label)
	assert.Equal(t, "Next sleep: Thu Apr 2 23:00", menu.Items[1].Label)
	assert.True(t, findItem(t, menu, "Schedule Sleep...").Disabled)
	assert.True(t, findItem(t, menu, "Quick Schedule").Disabled)
	cancel := findItem(t, menu, "Cancel Current Schedule")
	assert.False(t, cancel.Disabled)
	cancel.Action()
	assert.True(t, cancelled)
	assert.Equal(t, IconWarning, manager.Icon())
}

func TestSetPresets(t *testing.T) {
	manager := New(nil, nil, Callbacks{})
	assert.True(t, findItem(t, manager.Menu(), "Quick Schedule").Disabled)

	manager.SetPresets([]time.Duration{2 * time.Hour})

	quick := findItem(t, manager.Menu(), "Quick Schedule")
	assert.False(t, quick.Disabled)
	require.Len(t, quick.ChildMenu.Items, 1)
	assert.Equal(t, "Sleep in 2h", quick.ChildMenu.Items[0].Label)
}

func TestNilCallbacksAreSafe(t *testing.T) {
	manager := New(nil, []time.Duration{time.Hour}, Callbacks{})
	menu := manager.Menu()

	assert.NotPanics(t, func() {
		findItem(t, menu, "Schedule Sleep...").Action()
		findItem(t, menu, "Quit").Action()
		findItem(t, menu, "Quick Schedule").ChildMenu.Items[0].Action()
	})
}
