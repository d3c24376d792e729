package storage

// Preferences is the subset of fyne.Preferences used for persistence.
type Preferences interface {
	String(key string) string
	SetString(key string, value string)
	RemoveValue(key string)
}

// PreferencesBackend stores values in the host app's preference store.
// An empty string reads as a missing key.
type PreferencesBackend struct {
	prefs Preferences
}

// NewPreferencesBackend wraps prefs.
func NewPreferencesBackend(prefs Preferences) *PreferencesBackend {
	return &PreferencesBackend{prefs: prefs}
}

func (backend *PreferencesBackend) Get(key string) ([]byte, bool, error) {
	value := backend.prefs.String(key)
	if value == "" {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

func (backend *PreferencesBackend) Put(key string, value []byte) error {
	backend.prefs.SetString(key, string(value))
	return nil
}

func (backend *PreferencesBackend) Delete(key string) error {
	backend.prefs.RemoveValue(key)
	return nil
}
