package platform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeLoginService struct {
	enabled  bool
	queryErr error
	enables  int
	disables int
}

func (service *fakeLoginService) GetConfigDir() (string, error) {
	return "/tmp", nil
}

func (service *fakeLoginService) EnableLaunchAtLogin(string, string) error {
	service.enables++
	service.enabled = true
	return nil
}

func (service *fakeLoginService) DisableLaunchAtLogin(string) error {
	service.disables++
	service.enabled = false
	return nil
}

func (service *fakeLoginService) LaunchAtLoginEnabled(string) (bool, error) {
	return service.enabled, service.queryErr
}

func TestSyncLaunchAtLogin(t *testing.T) {
	testCases := []struct {
		name         string
		current      bool
		want         bool
		wantEnables  int
		wantDisables int
	}{
		{name: "enable missing item", current: false, want: true, wantEnables: 1},
		{name: "remove stale item", current: true, want: false, wantDisables: 1},
		{name: "already enabled", current: true, want: true},
		{name: "already disabled", current: false, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := &fakeLoginService{enabled: tc.current}

			assert.NoError(t, SyncLaunchAtLogin(service, "Sleeper", "/usr/bin/sleeper", tc.want))
			assert.Equal(t, tc.wantEnables, service.enables)
			assert.Equal(t, tc.wantDisables, service.disables)
			assert.Equal(t, tc.want, service.enabled)
		})
	}
}

func TestSyncLaunchAtLoginQueryError(t *testing.T) {
	service := &fakeLoginService{queryErr: errors.New("registry locked")}

	assert.Error(t, SyncLaunchAtLogin(service, "Sleeper", "/usr/bin/sleeper", true))
	assert.Zero(t, service.enables)
}

func TestLoginItemName(t *testing.T) {
	assert.Equal(t, "sleep-schedule", loginItemName("  Sleep Schedule "))
	assert.Equal(t, "sleeper", loginItemName(""))
}
