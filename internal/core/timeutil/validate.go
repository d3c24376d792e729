// Package timeutil holds the pure date helpers shared by the coordinator,
// the countdown engine, the executors and the presenters.
package timeutil

import (
	"fmt"
	"time"

	"sleeper/internal/core/model"
)

// Reason tells why a target time was rejected.
type Reason string

const (
	ReasonTooSoon Reason = "too_soon"
	ReasonTooFar  Reason = "too_far"
)

// ValidationError reports a target outside the allowed window.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (err *ValidationError) Error() string {
	return err.Message
}

// Validate checks that target lies strictly after now+minLead and no later
// than maxHorizon measured on the calendar from now.
func Validate(target, now time.Time, minLead time.Duration, maxHorizon model.Horizon) error {
	if !target.After(now.Add(minLead)) {
		return &ValidationError{
			Reason:  ReasonTooSoon,
			Message: fmt.Sprintf("Sleep time must be more than %s from now", describe(minLead)),
		}
	}
	if target.After(maxHorizon.From(now)) {
		return &ValidationError{
			Reason:  ReasonTooFar,
			Message: fmt.Sprintf("Sleep time must be within %s from now", maxHorizon),
		}
	}
	return nil
}

// MinimumSelectableDate returns the first whole minute that passes Validate.
func MinimumSelectableDate(now time.Time, minLead time.Duration) time.Time {
	return now.Add(minLead).Truncate(time.Minute).Add(time.Minute)
}

func describe(duration time.Duration) string {
	switch {
	case duration >= 24*time.Hour && duration%(24*time.Hour) == 0:
		return plural(int(duration/(24*time.Hour)), "day")
	case duration >= time.Hour && duration%time.Hour == 0:
		return plural(int(duration/time.Hour), "hour")
	case duration >= time.Minute && duration%time.Minute == 0:
		return plural(int(duration/time.Minute), "minute")
	default:
		return plural(int(duration/time.Second), "second")
	}
}

func plural(count int, unit string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", count, unit)
}
