//go:build linux

package platform

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"

	"sleeper/internal/core/model"
)

func TestPowerEventFromSignal(t *testing.T) {
	testCases := []struct {
		name   string
		signal *dbus.Signal
		want   model.PowerEvent
		ok     bool
	}{
		{
			name:   "going to sleep",
			signal: &dbus.Signal{Path: logindPath, Name: "org.freedesktop.login1.Manager.PrepareForSleep", Body: []interface{}{true}},
			want:   model.PowerWillSleep,
			ok:     true,
		},
		{
			name:   "woke up",
			signal: &dbus.Signal{Path: logindPath, Name: "org.freedesktop.login1.Manager.PrepareForSleep", Body: []interface{}{false}},
			want:   model.PowerDidWake,
			ok:     true,
		},
		{
			name:   "other member",
			signal: &dbus.Signal{Path: logindPath, Name: "org.freedesktop.login1.Manager.PrepareForShutdown", Body: []interface{}{true}},
		},
		{
			name:   "wrong body",
			signal: &dbus.Signal{Path: logindPath, Name: "org.freedesktop.login1.Manager.PrepareForSleep", Body: []interface{}{"yes"}},
		},
		{name: "nil signal"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event, ok := powerEventFromSignal(tc.signal)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, event)
		})
	}
}
