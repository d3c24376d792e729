//go:build !linux

package platform

import "log/slog"

// NewPowerMonitor returns a GapMonitor; no native signal source is wired here.
func NewPowerMonitor(logger *slog.Logger) PowerMonitor {
	return NewGapMonitor(gapCheckInterval, gapSlack, logger)
}
