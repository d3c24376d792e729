package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sleeper/internal/core/model"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// ConfigDirResolver locates the per-user configuration directory.
type ConfigDirResolver interface {
	GetConfigDir() (string, error)
}

type yamlSettings struct {
	MinLeadSeconds         int    `yaml:"min_lead_seconds"`
	MaxHorizonYears        int    `yaml:"max_horizon_years,omitempty"`
	MaxHorizonDays         int    `yaml:"max_horizon_days,omitempty"`
	ErrorDisplaySeconds    int    `yaml:"error_display_seconds"`
	QuickPresetsMinutes    []int  `yaml:"quick_presets_minutes"`
	StoreBackend           string `yaml:"store_backend"`
	StateDir               string `yaml:"state_dir,omitempty"`
	LogLevel               string `yaml:"log_level"`
	DryRun                 bool   `yaml:"dry_run"`
	LaunchAtLogin          bool   `yaml:"launch_at_login"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

// LoadSettings reads settings from the YAML file at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes settings to the YAML file at path.
func SaveSettings(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	presets := make([]int, 0, len(settings.QuickPresets))
	for _, preset := range settings.QuickPresets {
		presets = append(presets, int(preset/time.Minute))
	}

	fileData := yamlSettings{
		MinLeadSeconds:         int(settings.MinLead / time.Second),
		MaxHorizonYears:        settings.MaxHorizon.Years,
		MaxHorizonDays:         settings.MaxHorizon.Days,
		ErrorDisplaySeconds:    int(settings.ErrorDisplay / time.Second),
		QuickPresetsMinutes:    presets,
		StoreBackend:           settings.StoreBackend,
		StateDir:               settings.StateDir,
		LogLevel:               settings.LogLevel,
		DryRun:                 settings.DryRun,
		LaunchAtLogin:          settings.LaunchAtLogin,
		ShutdownTimeoutSeconds: int(settings.ShutdownTimeout / time.Second),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// ResolveConfigPath returns the settings file path under the user config dir.
func ResolveConfigPath(service ConfigDirResolver, appName string) (string, error) {
	dir, err := ResolveAppDir(service, appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFileName), nil
}

// ResolveAppDir returns the per-user application directory.
func ResolveAppDir(service ConfigDirResolver, appName string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

func applyYamlSettings(settings *Settings, fileData yamlSettings) {
	if fileData.MinLeadSeconds > 0 {
		settings.MinLead = time.Duration(fileData.MinLeadSeconds) * time.Second
	}
	if fileData.MaxHorizonYears >= 0 && fileData.MaxHorizonDays >= 0 {
		horizon := model.Horizon{Years: fileData.MaxHorizonYears, Days: fileData.MaxHorizonDays}
		if !horizon.IsZero() {
			settings.MaxHorizon = horizon
		}
	}
	if fileData.ErrorDisplaySeconds > 0 {
		settings.ErrorDisplay = time.Duration(fileData.ErrorDisplaySeconds) * time.Second
	}
	if fileData.ShutdownTimeoutSeconds > 0 {
		settings.ShutdownTimeout = time.Duration(fileData.ShutdownTimeoutSeconds) * time.Second
	}

	var presets []time.Duration
	for _, minutes := range fileData.QuickPresetsMinutes {
		if minutes > 0 {
			presets = append(presets, time.Duration(minutes)*time.Minute)
		}
	}
	if len(presets) > 0 {
		settings.QuickPresets = presets
	}

	switch fileData.StoreBackend {
	case BackendFile, BackendSQLite, BackendPreferences, BackendMemory:
		settings.StoreBackend = fileData.StoreBackend
	}

	if fileData.StateDir != "" {
		settings.StateDir = fileData.StateDir
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
	settings.DryRun = fileData.DryRun
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}
