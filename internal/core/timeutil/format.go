package timeutil

import (
	"fmt"
	"time"

	"sleeper/internal/core/model"
)

const (
	criticalThreshold = 10 * time.Minute
	finalThreshold    = time.Minute

	commandLayout  = "01/02/06 15:04:05"
	calendarLayout = "2006-01-02 15:04:05"
	displayLayout  = "Mon Jan 2 15:04"
)

// FormatRemaining renders a countdown: "1h 5m", "1h", "42m", "7:03" or "0:09".
func FormatRemaining(remaining time.Duration) string {
	totalSeconds := int(remaining / time.Second)
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes >= 10:
		return fmt.Sprintf("%dm", minutes)
	case minutes > 0:
		return fmt.Sprintf("%d:%02d", minutes, seconds)
	default:
		return fmt.Sprintf("0:%02d", seconds)
	}
}

// PhaseFor derives the countdown phase from the remaining time.
func PhaseFor(remaining time.Duration) model.Phase {
	switch {
	case remaining <= finalThreshold:
		return model.PhaseFinal
	case remaining <= criticalThreshold:
		return model.PhaseCritical
	default:
		return model.PhaseNormal
	}
}

// NewSnapshot builds the derived countdown view.
func NewSnapshot(target time.Time, remaining time.Duration) model.Snapshot {
	return model.Snapshot{
		Target:    target,
		Remaining: remaining,
		Formatted: FormatRemaining(remaining),
		Phase:     PhaseFor(remaining),
	}
}

// FormatForCommand renders the pmset date argument in local time.
func FormatForCommand(target time.Time) string {
	return target.Local().Format(commandLayout)
}

// FormatForCalendar renders a systemd OnCalendar timestamp in local time.
func FormatForCalendar(target time.Time) string {
	return target.Local().Format(calendarLayout)
}

// FormatForDisplay renders a short human date.
func FormatForDisplay(target time.Time) string {
	return target.Local().Format(displayLayout)
}

// ScheduleInfo is the one-line summary of the schedule for state, or ""
// when no sleep is scheduled.
func ScheduleInfo(state model.SchedulingState) string {
	if !state.IsActive() {
		return ""
	}
	return "Next sleep: " + FormatForDisplay(state.Target)
}

// PresetTarget returns the target for a "sleep in" preset.
func PresetTarget(now time.Time, after time.Duration) time.Time {
	return now.Add(after)
}

// PresetLabel names a "sleep in" preset using the countdown format.
func PresetLabel(after time.Duration) string {
	return "Sleep in " + FormatRemaining(after)
}
