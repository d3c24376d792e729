package coordinator

import (
	"time"

	"sleeper/internal/core/model"
)

// EventType defines the type of coordinator event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
)

// Event is delivered to subscribers in the order the coordinator mutates state.
type Event struct {
	Type     EventType
	State    model.SchedulingState
	Snapshot model.Snapshot
	At       time.Time
}
