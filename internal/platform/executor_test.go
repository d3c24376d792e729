package platform

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDryRunExecutor(t *testing.T) {
	executor := NewDryRunExecutor(nil)
	target := time.Date(2026, 12, 25, 14, 30, 0, 0, time.Local)

	assert.NoError(t, executor.Arm(context.Background(), target))
	assert.NoError(t, executor.CancelAll(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, executor.Arm(ctx, target), context.Canceled)
	assert.ErrorIs(t, executor.CancelAll(ctx), context.Canceled)
}

func TestNewExecutorDryRun(t *testing.T) {
	assert.IsType(t, &DryRunExecutor{}, NewExecutor(true, nil))
}
