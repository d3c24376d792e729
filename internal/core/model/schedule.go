package model

import "time"

// State identifies the coordinator mode.
type State string

const (
	StateIdle       State = "idle"
	StateScheduling State = "scheduling"
	StateActive     State = "active_countdown"
	StateError      State = "error"
)

// SchedulingState is the single authoritative coordinator state.
// Target is set only for StateActive and Message only for StateError.
type SchedulingState struct {
	State   State
	Target  time.Time
	Message string
}

// Idle returns the resting state.
func Idle() SchedulingState {
	return SchedulingState{State: StateIdle}
}

// Scheduling returns the state held while the arm command is in flight.
func Scheduling() SchedulingState {
	return SchedulingState{State: StateScheduling}
}

// ActiveCountdown returns the state for an armed schedule.
func ActiveCountdown(target time.Time) SchedulingState {
	return SchedulingState{State: StateActive, Target: target}
}

// Failed returns an error state carrying a user-facing message.
func Failed(message string) SchedulingState {
	return SchedulingState{State: StateError, Message: message}
}

// IsActive reports whether a countdown is running.
func (state SchedulingState) IsActive() bool {
	return state.State == StateActive
}

// Equal compares states using time.Time.Equal for the target.
func (state SchedulingState) Equal(other SchedulingState) bool {
	return state.State == other.State &&
		state.Message == other.Message &&
		state.Target.Equal(other.Target)
}

// ScheduleRecord is the persisted form of the active schedule.
type ScheduleRecord struct {
	TargetTime time.Time
	IsActive   bool
	CreatedAt  time.Time
}

// UsableAt reports whether the record may be adopted at now.
func (record ScheduleRecord) UsableAt(now time.Time) bool {
	return record.IsActive && record.TargetTime.After(now)
}

// Phase classifies how close the countdown is to its target.
type Phase string

const (
	PhaseNormal   Phase = "normal"
	PhaseCritical Phase = "critical"
	PhaseFinal    Phase = "final"
)

// Snapshot is a derived view of the countdown, recomputed on every tick.
type Snapshot struct {
	Target    time.Time
	Remaining time.Duration
	Formatted string
	Phase     Phase
}

// Critical is true for both the critical and final phases.
func (snapshot Snapshot) Critical() bool {
	return snapshot.Phase == PhaseCritical || snapshot.Phase == PhaseFinal
}

// Final is true during the last minute.
func (snapshot Snapshot) Final() bool {
	return snapshot.Phase == PhaseFinal
}

// PowerEvent is a payload-less system power notification.
type PowerEvent string

const (
	PowerWillSleep PowerEvent = "will_sleep"
	PowerDidWake   PowerEvent = "did_wake"
)
