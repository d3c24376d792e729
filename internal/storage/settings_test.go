package storage

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleeper/internal/core/model"
)

type fixedConfigDir struct {
	dir string
	err error
}

func (service fixedConfigDir) GetConfigDir() (string, error) {
	return service.dir, service.err
}

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestSaveAndLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Sleeper", "settings.yaml")
	settings := DefaultSettings()
	settings.MinLead = 2 * time.Minute
	settings.MaxHorizon = model.Horizon{Days: 30}
	settings.QuickPresets = []time.Duration{15 * time.Minute, 45 * time.Minute}
	settings.StoreBackend = BackendSQLite
	settings.StateDir = "/tmp/sleeper-state"
	settings.LogLevel = "debug"
	settings.DryRun = true
	settings.LaunchAtLogin = true

	require.NoError(t, SaveSettings(path, settings))
	loaded, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestLoadSettingsIgnoresInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "min_lead_seconds: -5\nquick_presets_minutes: [0, -1]\nstore_backend: redis\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettings(path)

	require.NoError(t, err)
	defaults := DefaultSettings()
	assert.Equal(t, defaults.MinLead, settings.MinLead)
	assert.Equal(t, defaults.QuickPresets, settings.QuickPresets)
	assert.Equal(t, BackendFile, settings.StoreBackend)
}

func TestLoadSettingsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_lead_seconds: [oops"), 0o644))

	settings, err := LoadSettings(path)

	assert.ErrorContains(t, err, "parse settings yaml")
	assert.Equal(t, DefaultSettings(), settings)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SLEEPER_STATE_DIR":     "/srv/sleeper",
		"SLEEPER_STORE_BACKEND": "SQLite",
		"SLEEPER_LOG_LEVEL":     "warn",
		"SLEEPER_DRY_RUN":       "yes",
	}
	lookup := func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}

	settings := ApplyEnv(DefaultSettings(), lookup)

	assert.Equal(t, "/srv/sleeper", settings.StateDir)
	assert.Equal(t, BackendSQLite, settings.StoreBackend)
	assert.Equal(t, slog.LevelWarn, settings.SlogLevel())
	assert.True(t, settings.DryRun)

	env["SLEEPER_DRY_RUN"] = "maybe"
	settings = ApplyEnv(settings, lookup)
	assert.True(t, settings.DryRun)
}

func TestCoordinatorConfigFromSettings(t *testing.T) {
	settings := DefaultSettings()
	settings.ErrorDisplay = 0

	config := settings.CoordinatorConfig()

	assert.Equal(t, time.Minute, config.MinLead)
	assert.Equal(t, 3*time.Second, config.ErrorDisplay)
}

func TestResolveConfigPath(t *testing.T) {
	path, err := ResolveConfigPath(fixedConfigDir{dir: "/home/u/.config"}, "Sleeper")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/u/.config", "Sleeper", "settings.yaml"), path)

	_, err = ResolveConfigPath(fixedConfigDir{err: errors.New("no home")}, "Sleeper")
	assert.ErrorContains(t, err, "resolve user config dir")
}

func TestOpenBackend(t *testing.T) {
	settings := DefaultSettings()
	settings.StateDir = t.TempDir()

	for _, name := range []string{BackendFile, BackendSQLite, BackendMemory} {
		settings.StoreBackend = name
		backend, closeBackend, err := OpenBackend(settings, nil)
		require.NoError(t, err, name)
		assert.NotNil(t, backend)
		assert.NoError(t, closeBackend())
	}

	settings.StoreBackend = BackendPreferences
	_, _, err := OpenBackend(settings, nil)
	assert.Error(t, err)
	backend, _, err := OpenBackend(settings, &mapPreferences{values: map[string]string{}})
	require.NoError(t, err)
	assert.IsType(t, &PreferencesBackend{}, backend)

	settings.StoreBackend = "etcd"
	_, closeBackend, err := OpenBackend(settings, nil)
	assert.Error(t, err)
	assert.NotNil(t, closeBackend)
}
