package preferences

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const maxPresets = 6

// FormatPresets renders presets as a comma separated list of minutes.
func FormatPresets(presets []time.Duration) string {
	parts := make([]string, 0, len(presets))
	for _, preset := range presets {
		parts = append(parts, strconv.Itoa(int(preset/time.Minute)))
	}
	return strings.Join(parts, ", ")
}

// ParsePresets reads a comma separated list of minutes. Duplicates are
// dropped and the result is sorted.
func ParsePresets(text string) ([]time.Duration, error) {
	seen := make(map[int]bool)
	var minutes []int
	for _, field := range strings.Split(text, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		value, err := strconv.Atoi(field)
		if err != nil || value <= 0 {
			return nil, fmt.Errorf("preset %q is not a positive number of minutes", field)
		}
		if !seen[value] {
			seen[value] = true
			minutes = append(minutes, value)
		}
	}
	if len(minutes) == 0 {
		return nil, fmt.Errorf("enter at least one preset")
	}
	if len(minutes) > maxPresets {
		return nil, fmt.Errorf("at most %d presets are allowed", maxPresets)
	}
	sort.Ints(minutes)

	presets := make([]time.Duration, 0, len(minutes))
	for _, value := range minutes {
		presets = append(presets, time.Duration(value)*time.Minute)
	}
	return presets, nil
}
