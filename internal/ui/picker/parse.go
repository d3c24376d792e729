package picker

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// EntryLayout is the layout the picker pre-fills and accepts.
const EntryLayout = "2006-01-02 15:04"

var clockLayouts = []string{"15:04", "3:04pm", "3:04 pm", "3pm"}

// ErrEmptyEntry is returned for a blank picker entry.
var ErrEmptyEntry = errors.New("enter a sleep time")

// ParseTarget turns picker input into an absolute time in loc. Accepted
// forms are a date and time ("2026-04-02 23:30"), a clock time ("23:30",
// "11:30pm") meaning its next occurrence after now, and a relative
// duration ("+90m", "1h30m").
func ParseTarget(text string, now time.Time, loc *time.Location) (time.Time, error) {
	input := strings.ToLower(strings.TrimSpace(text))
	if input == "" {
		return time.Time{}, ErrEmptyEntry
	}
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	if target, err := time.ParseInLocation(EntryLayout, input, loc); err == nil {
		return target, nil
	}

	for _, layout := range clockLayouts {
		clock, err := time.ParseInLocation(layout, input, loc)
		if err != nil {
			continue
		}
		target := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
		if !target.After(now) {
			target = target.AddDate(0, 0, 1)
		}
		return target, nil
	}

	if delay, err := time.ParseDuration(strings.TrimPrefix(input, "+")); err == nil {
		if delay <= 0 {
			return time.Time{}, fmt.Errorf("duration %q must be positive", text)
		}
		return now.Add(delay), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized time %q: use YYYY-MM-DD HH:MM, HH:MM or a duration like 45m", strings.TrimSpace(text))
}
