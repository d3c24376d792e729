package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrLoginItemUnsupported is returned where launch at login cannot be configured.
var ErrLoginItemUnsupported = errors.New("launch at login is not supported on this system")

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableLaunchAtLogin(appName, execPath string) error
	DisableLaunchAtLogin(appName string) error
	LaunchAtLoginEnabled(appName string) (bool, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// SyncLaunchAtLogin makes the login item match enabled. Missing items are
// created and stale ones removed; an item already in the wanted state is left alone.
func SyncLaunchAtLogin(service Service, appName, execPath string, enabled bool) error {
	current, err := service.LaunchAtLoginEnabled(appName)
	if err != nil {
		return err
	}
	switch {
	case enabled && !current:
		return service.EnableLaunchAtLogin(appName, execPath)
	case !enabled && current:
		return service.DisableLaunchAtLogin(appName)
	default:
		return nil
	}
}

func loginItemName(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "sleeper"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

func validateLoginItem(action, appName, execPath string, needPath bool) error {
	if strings.TrimSpace(appName) == "" {
		return fmt.Errorf("%s launch at login: app name is empty", action)
	}
	if needPath && strings.TrimSpace(execPath) == "" {
		return fmt.Errorf("%s launch at login: exec path is empty", action)
	}
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}
