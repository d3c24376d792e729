package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortFromNameIsStableAndInRange(t *testing.T) {
	first := portFromName("Sleeper")
	second := portFromName("Sleeper")

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 20000)
	assert.LessOrEqual(t, first, 39999)
}

func TestSingleInstanceLock(t *testing.T) {
	appName := "sleeper-test-" + t.Name()
	guard, err := AcquireSingleInstance(appName, nil)
	require.NoError(t, err)

	_, err = AcquireSingleInstance(appName, nil)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	again, err := AcquireSingleInstance(appName, nil)
	require.NoError(t, err)
	assert.NoError(t, again.Release())
}

func TestNotifyRunningActivatesHolder(t *testing.T) {
	appName := "sleeper-test-" + t.Name()
	activated := make(chan struct{}, 1)
	guard, err := AcquireSingleInstance(appName, func() { activated <- struct{}{} })
	require.NoError(t, err)
	t.Cleanup(func() { _ = guard.Release() })

	require.NoError(t, NotifyRunning(appName))

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not activated")
	}
}

func TestNilGuardRelease(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Equal(t, "", guard.Address())
}
