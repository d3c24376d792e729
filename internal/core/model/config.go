package model

import (
	"fmt"
	"time"
)

// Horizon is a calendar distance. It is applied with time.AddDate so a year
// stays a year across leap days and DST changes.
type Horizon struct {
	Years int
	Days  int
}

// OneYear is the stock scheduling horizon.
var OneYear = Horizon{Years: 1}

// From returns the instant the horizon reaches when measured from start.
func (horizon Horizon) From(start time.Time) time.Time {
	return start.AddDate(horizon.Years, 0, horizon.Days)
}

// IsZero reports whether the horizon spans no time.
func (horizon Horizon) IsZero() bool {
	return horizon.Years <= 0 && horizon.Days <= 0
}

func (horizon Horizon) String() string {
	switch {
	case horizon.Days <= 0:
		return plural(horizon.Years, "year")
	case horizon.Years <= 0:
		return plural(horizon.Days, "day")
	default:
		return plural(horizon.Years, "year") + " " + plural(horizon.Days, "day")
	}
}

func plural(count int, unit string) string {
	if count == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", count, unit)
}

// CoordinatorConfig contains the runtime limits of the schedule coordinator.
type CoordinatorConfig struct {
	MinLead      time.Duration
	MaxHorizon   Horizon
	ErrorDisplay time.Duration
}

// DefaultCoordinatorConfig returns the stock limits: one minute lead time,
// one year horizon and a three second error display window.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		MinLead:      time.Minute,
		MaxHorizon:   OneYear,
		ErrorDisplay: 3 * time.Second,
	}
}

// Normalize replaces non-positive values with defaults.
func (config CoordinatorConfig) Normalize() CoordinatorConfig {
	defaults := DefaultCoordinatorConfig()
	if config.MinLead <= 0 {
		config.MinLead = defaults.MinLead
	}
	if config.MaxHorizon.Years < 0 || config.MaxHorizon.Days < 0 || config.MaxHorizon.IsZero() {
		config.MaxHorizon = defaults.MaxHorizon
	}
	if config.ErrorDisplay <= 0 {
		config.ErrorDisplay = defaults.ErrorDisplay
	}
	return config
}
