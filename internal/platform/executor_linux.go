//go:build linux

package platform

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"sleeper/internal/core/timeutil"
)

const sleepTimerUnit = "sleeper-scheduled-sleep"

// SystemdExecutor schedules suspend with a transient systemd timer, asking
// for authorization through polkit.
type SystemdExecutor struct {
	run    runner
	logger *slog.Logger
}

func newSystemExecutor(run runner, logger *slog.Logger) Executor {
	return &SystemdExecutor{run: run, logger: logger}
}

func (executor *SystemdExecutor) Arm(ctx context.Context, target time.Time) error {
	commandLine := armCommandLine(target)
	executor.logger.Debug("running privileged command", "command", commandLine)
	output, err := executor.run(ctx, commandLine[0], commandLine[1:]...)
	return classifyPkexecError(output, err)
}

// CancelAll stops the transient timer. A timer that is not loaded counts
// as already cancelled.
func (executor *SystemdExecutor) CancelAll(ctx context.Context) error {
	commandLine := cancelCommandLine()
	executor.logger.Debug("running privileged command", "command", commandLine)
	output, err := executor.run(ctx, commandLine[0], commandLine[1:]...)
	if err != nil && strings.Contains(string(output), "not loaded") {
		return nil
	}
	return classifyPkexecError(output, err)
}

// armCommandLine unloads both units once the timer has fired so the unit
// name is free for the next schedule.
func armCommandLine(target time.Time) []string {
	return []string{
		"pkexec", "systemd-run",
		"--unit=" + sleepTimerUnit,
		"--description=Scheduled sleep",
		"--collect",
		"--on-calendar=" + timeutil.FormatForCalendar(target),
		"--timer-property=AccuracySec=1s",
		"--timer-property=RemainAfterElapse=no",
		"systemctl", "suspend",
	}
}

func cancelCommandLine() []string {
	return []string{"pkexec", "systemctl", "stop", sleepTimerUnit + ".timer"}
}
