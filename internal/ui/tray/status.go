package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"sleeper/internal/core/model"
)

// IconState selects the tray icon.
type IconState string

const (
	IconIdle       IconState = "idle"
	IconScheduling IconState = "scheduling"
	IconActive     IconState = "active"
	IconWarning    IconState = "warning"
	IconError      IconState = "error"
)

// IconFor derives the icon from the coordinator state. An active countdown
// inside its last ten minutes shows the warning icon.
func IconFor(state model.SchedulingState, snapshot model.Snapshot) IconState {
	switch state.State {
	case model.StateScheduling:
		return IconScheduling
	case model.StateError:
		return IconError
	case model.StateActive:
		if snapshot.Critical() {
			return IconWarning
		}
		return IconActive
	default:
		return IconIdle
	}
}

// StatusText is the first, disabled line of the tray menu.
func StatusText(state model.SchedulingState, snapshot model.Snapshot) string {
	switch state.State {
	case model.StateScheduling:
		return "Scheduling sleep..."
	case model.StateError:
		return state.Message
	case model.StateActive:
		if snapshot.Formatted == "" {
			return "Sleep scheduled"
		}
		return "Sleeping in " + snapshot.Formatted
	default:
		return "No sleep scheduled"
	}
}

// IconResource maps an icon state to a themed resource.
func IconResource(icon IconState) fyne.Resource {
	switch icon {
	case IconScheduling:
		return theme.ViewRefreshIcon()
	case IconActive:
		return theme.HistoryIcon()
	case IconWarning:
		return theme.WarningIcon()
	case IconError:
		return theme.ErrorIcon()
	default:
		return theme.MediaPauseIcon()
	}
}
