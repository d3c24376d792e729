package platform

import (
	"context"
	"log/slog"
	"os/exec"
	"time"

	"al.essio.dev/pkg/shellescape"
)

// Executor arms and clears the OS-level sleep schedule.
type Executor interface {
	Arm(ctx context.Context, target time.Time) error
	CancelAll(ctx context.Context) error
}

type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// NewExecutor returns the executor for this OS, or a DryRunExecutor when
// dryRun is set.
func NewExecutor(dryRun bool, logger *slog.Logger) Executor {
	if logger == nil {
		logger = slog.Default()
	}
	if dryRun {
		return NewDryRunExecutor(logger)
	}
	return newSystemExecutor(execRunner, logger)
}

// DryRunExecutor logs the commands it would run and always succeeds.
type DryRunExecutor struct {
	logger *slog.Logger
}

// NewDryRunExecutor creates a DryRunExecutor.
func NewDryRunExecutor(logger *slog.Logger) *DryRunExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DryRunExecutor{logger: logger}
}

func (executor *DryRunExecutor) Arm(ctx context.Context, target time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	executor.logger.Info("dry run: arm sleep", "target", target, "command", shellescape.QuoteCommand(armCommandLine(target)))
	return nil
}

func (executor *DryRunExecutor) CancelAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	executor.logger.Info("dry run: cancel sleep", "command", shellescape.QuoteCommand(cancelCommandLine()))
	return nil
}
