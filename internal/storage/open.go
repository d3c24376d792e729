package storage

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const sqliteFileName = "sleeper.db"

// OpenBackend builds the backend named in settings. The returned close
// function is never nil. prefs is only needed for the preferences backend.
func OpenBackend(settings Settings, prefs Preferences) (Backend, func() error, error) {
	noop := func() error { return nil }

	switch settings.StoreBackend {
	case BackendFile, "":
		return NewFileBackend(afero.NewOsFs(), settings.StateDir), noop, nil
	case BackendSQLite:
		backend, err := OpenSQLiteBackend(filepath.Join(settings.StateDir, sqliteFileName))
		if err != nil {
			return nil, noop, err
		}
		return backend, backend.Close, nil
	case BackendPreferences:
		if prefs == nil {
			return nil, noop, fmt.Errorf("open preferences backend: no preference store available")
		}
		return NewPreferencesBackend(prefs), noop, nil
	case BackendMemory:
		return NewMemoryBackend(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", settings.StoreBackend)
	}
}
