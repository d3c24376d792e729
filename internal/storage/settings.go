package storage

import (
	"log/slog"
	"strings"
	"time"

	"sleeper/internal/core/model"
)

// Store backend names accepted in settings.
const (
	BackendFile        = "file"
	BackendSQLite      = "sqlite"
	BackendPreferences = "preferences"
	BackendMemory      = "memory"
)

// Settings defines user-editable application settings.
type Settings struct {
	MinLead         time.Duration
	MaxHorizon      model.Horizon
	ErrorDisplay    time.Duration
	QuickPresets    []time.Duration
	StoreBackend    string
	StateDir        string
	LogLevel        string
	DryRun          bool
	LaunchAtLogin   bool
	ShutdownTimeout time.Duration
}

// DefaultSettings returns default settings for Sleeper.
func DefaultSettings() Settings {
	config := model.DefaultCoordinatorConfig()
	return Settings{
		MinLead:         config.MinLead,
		MaxHorizon:      config.MaxHorizon,
		ErrorDisplay:    config.ErrorDisplay,
		QuickPresets:    []time.Duration{30 * time.Minute, time.Hour, 2 * time.Hour},
		StoreBackend:    BackendFile,
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
	}
}

// CoordinatorConfig converts settings to a CoordinatorConfig.
func (settings Settings) CoordinatorConfig() model.CoordinatorConfig {
	return model.CoordinatorConfig{
		MinLead:      settings.MinLead,
		MaxHorizon:   settings.MaxHorizon,
		ErrorDisplay: settings.ErrorDisplay,
	}.Normalize()
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (settings Settings) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(settings.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ApplyEnv overlays SLEEPER_* environment values read through lookup.
func ApplyEnv(settings Settings, lookup func(string) (string, bool)) Settings {
	if value, ok := lookup("SLEEPER_STATE_DIR"); ok && value != "" {
		settings.StateDir = value
	}
	if value, ok := lookup("SLEEPER_STORE_BACKEND"); ok && value != "" {
		settings.StoreBackend = strings.ToLower(value)
	}
	if value, ok := lookup("SLEEPER_LOG_LEVEL"); ok && value != "" {
		settings.LogLevel = value
	}
	if value, ok := lookup("SLEEPER_DRY_RUN"); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			settings.DryRun = true
		case "false", "0", "no", "off":
			settings.DryRun = false
		default:
			slog.Warn("invalid SLEEPER_DRY_RUN value, keeping setting", "value", value, "dry_run", settings.DryRun)
		}
	}
	return settings
}
