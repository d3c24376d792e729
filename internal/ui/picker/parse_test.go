package picker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	now := time.Date(2026, 4, 2, 21, 15, 30, 0, loc)

	testCases := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "date and time", input: "2026-04-03 07:45", want: time.Date(2026, 4, 3, 7, 45, 0, 0, loc)},
		{name: "later today", input: "23:30", want: time.Date(2026, 4, 2, 23, 30, 0, 0, loc)},
		{name: "already passed today", input: "08:00", want: time.Date(2026, 4, 3, 8, 0, 0, 0, loc)},
		{name: "current minute rolls over", input: "21:15", want: time.Date(2026, 4, 3, 21, 15, 0, 0, loc)},
		{name: "twelve hour clock", input: "11:30PM", want: time.Date(2026, 4, 2, 23, 30, 0, 0, loc)},
		{name: "bare hour", input: "6am", want: time.Date(2026, 4, 3, 6, 0, 0, 0, loc)},
		{name: "relative minutes", input: "+90m", want: now.Add(90 * time.Minute)},
		{name: "relative mixed", input: " 1h30m ", want: now.Add(90 * time.Minute)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTarget(tc.input, now, loc)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestParseTargetErrors(t *testing.T) {
	now := time.Date(2026, 4, 2, 21, 0, 0, 0, time.UTC)

	_, err := ParseTarget("   ", now, time.UTC)
	assert.ErrorIs(t, err, ErrEmptyEntry)

	_, err = ParseTarget("-10m", now, time.UTC)
	assert.ErrorContains(t, err, "must be positive")

	_, err = ParseTarget("tomorrow-ish", now, time.UTC)
	assert.ErrorContains(t, err, "unrecognized time")

	_, err = ParseTarget("25:00", now, time.UTC)
	assert.Error(t, err)
}
