//go:build !darwin && !linux

package platform

import (
	"context"
	"log/slog"
	"time"

	"sleeper/internal/core/model"
)

// UnsupportedExecutor reports that scheduled sleep is unavailable.
type UnsupportedExecutor struct{}

func newSystemExecutor(runner, *slog.Logger) Executor {
	return UnsupportedExecutor{}
}

func (UnsupportedExecutor) Arm(context.Context, time.Time) error {
	return &model.CommandError{Kind: model.CommandUnsupported, Message: "no sleep scheduler on this system"}
}

func (UnsupportedExecutor) CancelAll(context.Context) error {
	return nil
}

func armCommandLine(time.Time) []string {
	return nil
}

func cancelCommandLine() []string {
	return nil
}
