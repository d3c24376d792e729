//go:build darwin

package platform

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"

	"sleeper/internal/core/timeutil"
)

// PmsetExecutor schedules sleep with pmset through an osascript
// administrator prompt.
type PmsetExecutor struct {
	run    runner
	logger *slog.Logger
}

func newSystemExecutor(run runner, logger *slog.Logger) Executor {
	return &PmsetExecutor{run: run, logger: logger}
}

func (executor *PmsetExecutor) Arm(ctx context.Context, target time.Time) error {
	return executor.runPrivileged(ctx, armCommandLine(target))
}

func (executor *PmsetExecutor) CancelAll(ctx context.Context) error {
	return executor.runPrivileged(ctx, cancelCommandLine())
}

func (executor *PmsetExecutor) runPrivileged(ctx context.Context, commandLine []string) error {
	script := administratorScript(shellescape.QuoteCommand(commandLine))
	executor.logger.Debug("running privileged command", "command", commandLine)
	output, err := executor.run(ctx, "osascript", "-e", script)
	return classifyOsascriptError(output, err)
}

func armCommandLine(target time.Time) []string {
	return []string{"pmset", "schedule", "sleep", timeutil.FormatForCommand(target)}
}

func cancelCommandLine() []string {
	return []string{"pmset", "schedule", "cancelall"}
}

func administratorScript(shellCommand string) string {
	return "do shell script " + appleScriptString(shellCommand) + " with administrator privileges"
}

func appleScriptString(value string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value) + `"`
}
