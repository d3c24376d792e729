package timeutil

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleeper/internal/core/model"
)

func TestFormatRemaining(t *testing.T) {
	testCases := []struct {
		seconds int
		want    string
	}{
		{seconds: 3661, want: "1h 1m"},
		{seconds: 3600, want: "1h"},
		{seconds: 7325, want: "2h 2m"},
		{seconds: 3599, want: "59m"},
		{seconds: 600, want: "10m"},
		{seconds: 599, want: "9:59"},
		{seconds: 65, want: "1:05"},
		{seconds: 60, want: "1:00"},
		{seconds: 30, want: "0:30"},
		{seconds: 5, want: "0:05"},
		{seconds: 0, want: "0:00"},
		{seconds: -4, want: "0:00"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatRemaining(time.Duration(tc.seconds)*time.Second))
		})
	}
}

func TestFormatRemainingTruncatesFraction(t *testing.T) {
	assert.Equal(t, "0:05", FormatRemaining(5*time.Second+900*time.Millisecond))
}

func TestPhaseFor(t *testing.T) {
	testCases := []struct {
		name    string
		seconds int
		want    model.Phase
	}{
		{name: "601s normal", seconds: 601, want: model.PhaseNormal},
		{name: "600s critical", seconds: 600, want: model.PhaseCritical},
		{name: "61s critical", seconds: 61, want: model.PhaseCritical},
		{name: "60s final", seconds: 60, want: model.PhaseFinal},
		{name: "1s final", seconds: 1, want: model.PhaseFinal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			phase := PhaseFor(time.Duration(tc.seconds) * time.Second)
			assert.Equal(t, tc.want, phase)
		})
	}

	snapshot := NewSnapshot(time.Time{}, 601*time.Second)
	assert.False(t, snapshot.Critical())
	snapshot = NewSnapshot(time.Time{}, 61*time.Second)
	assert.True(t, snapshot.Critical())
	assert.False(t, snapshot.Final())
}

func TestValidate(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)
	lead := time.Minute
	horizon := model.OneYear

	testCases := []struct {
		name   string
		target time.Time
		reason Reason
	}{
		{name: "past", target: now.Add(-time.Hour), reason: ReasonTooSoon},
		{name: "now", target: now, reason: ReasonTooSoon},
		{name: "exactly lead", target: now.Add(lead), reason: ReasonTooSoon},
		{name: "just after lead", target: now.Add(lead + time.Second)},
		{name: "one hour", target: now.Add(time.Hour)},
		{name: "exactly horizon", target: now.AddDate(1, 0, 0)},
		{name: "past horizon", target: now.AddDate(1, 0, 0).Add(time.Second), reason: ReasonTooFar},
		{name: "two years", target: now.AddDate(2, 0, 0), reason: ReasonTooFar},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.target, now, lead, horizon)
			if tc.reason == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tc.reason, validationErr.Reason)
			assert.NotEmpty(t, validationErr.Message)
		})
	}
}

func TestValidateAcrossLeapDay(t *testing.T) {
	now := time.Date(2027, 3, 1, 12, 0, 0, 0, time.UTC)
	target := now.AddDate(1, 0, 0)
	require.Equal(t, 366*24*time.Hour, target.Sub(now))

	assert.NoError(t, Validate(target, now, time.Minute, model.OneYear))

	err := Validate(target.Add(time.Second), now, time.Minute, model.OneYear)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, ReasonTooFar, validationErr.Reason)
}

func TestValidateAcrossDSTChange(t *testing.T) {
	zone, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tz database unavailable")
	}
	now := time.Date(2026, 3, 28, 12, 0, 0, 0, zone)

	assert.NoError(t, Validate(now.AddDate(0, 0, 1), now, time.Minute, model.Horizon{Days: 1}))
	assert.Error(t, Validate(now.Add(24*time.Hour), now, time.Minute, model.Horizon{Days: 1}))
}

func TestValidateMessages(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

	err := Validate(now, now, time.Minute, model.OneYear)
	assert.EqualError(t, err, "Sleep time must be more than 1 minute from now")

	err = Validate(now.AddDate(2, 0, 0), now, time.Minute, model.OneYear)
	assert.EqualError(t, err, "Sleep time must be within 1 year from now")

	err = Validate(now.AddDate(0, 0, 31), now, time.Minute, model.Horizon{Days: 30})
	assert.EqualError(t, err, "Sleep time must be within 30 days from now")
}

func TestMinimumSelectableDate(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 30, 20, 0, time.UTC)

	earliest := MinimumSelectableDate(now, time.Minute)

	assert.Equal(t, time.Date(2026, 5, 10, 9, 32, 0, 0, time.UTC), earliest)
	assert.NoError(t, Validate(earliest, now, time.Minute, model.Horizon{Days: 1}))

	onBoundary := time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)
	assert.NoError(t, Validate(MinimumSelectableDate(onBoundary, time.Minute), onBoundary, time.Minute, model.Horizon{Days: 1}))
}

func TestCommandFormats(t *testing.T) {
	target := time.Date(2024, 12, 25, 14, 30, 0, 0, time.Local)

	assert.Equal(t, "12/25/24 14:30:00", FormatForCommand(target))
	assert.Equal(t, "2024-12-25 14:30:00", FormatForCalendar(target))
	assert.Equal(t, "Wed Dec 25 14:30", FormatForDisplay(target))
	assert.Equal(t, "Next sleep: Wed Dec 25 14:30", ScheduleInfo(model.ActiveCountdown(target)))
	assert.Empty(t, ScheduleInfo(model.Idle()))
	assert.Empty(t, ScheduleInfo(model.Failed("boom")))
}

func TestPresets(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, now.Add(30*time.Minute), PresetTarget(now, 30*time.Minute))
	assert.Equal(t, "Sleep in 30m", PresetLabel(30*time.Minute))
	assert.Equal(t, "Sleep in 1h", PresetLabel(time.Hour))
	assert.Equal(t, "Sleep in 2h", PresetLabel(2*time.Hour))
}
