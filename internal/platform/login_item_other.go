//go:build !darwin && !linux && !windows

package platform

import "path/filepath"

func (service *platformService) EnableLaunchAtLogin(string, string) error {
	return ErrLoginItemUnsupported
}

func (service *platformService) DisableLaunchAtLogin(string) error {
	return ErrLoginItemUnsupported
}

func (service *platformService) LaunchAtLoginEnabled(string) (bool, error) {
	return false, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}
