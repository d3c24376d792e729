package platform

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"sleeper/internal/core/model"
)

// pkexec exit statuses for a dismissed dialog and a refused authorization.
const (
	pkexecDismissed     = 126
	pkexecNotAuthorized = 127
)

// classifyOsascriptError maps an osascript failure to a CommandError.
func classifyOsascriptError(output []byte, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &model.CommandError{Kind: model.CommandUnknown, Message: "command interrupted", Err: err}
	}
	text := strings.TrimSpace(string(output))
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(text, "(-128)") || strings.Contains(lower, "user canceled") || strings.Contains(lower, "user cancelled"):
		return &model.CommandError{Kind: model.CommandDeclined, Message: "authorization declined", Err: err}
	case strings.Contains(lower, "pmset"):
		return &model.CommandError{Kind: model.CommandFailed, Message: text, Err: err}
	case exitCode(err) > 0:
		return &model.CommandError{Kind: model.CommandFailed, Message: fallbackMessage(text, "osascript failed"), Err: err}
	default:
		return &model.CommandError{Kind: model.CommandUnknown, Message: fallbackMessage(text, err.Error()), Err: err}
	}
}

// classifyPkexecError maps a pkexec failure to a CommandError.
func classifyPkexecError(output []byte, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &model.CommandError{Kind: model.CommandUnknown, Message: "command interrupted", Err: err}
	}
	if errors.Is(err, exec.ErrNotFound) {
		return &model.CommandError{Kind: model.CommandUnsupported, Message: "pkexec or systemd-run not found", Err: err}
	}
	text := strings.TrimSpace(string(output))
	switch code := exitCode(err); {
	case code == pkexecDismissed:
		return &model.CommandError{Kind: model.CommandDeclined, Message: "authorization declined", Err: err}
	case code == pkexecNotAuthorized:
		return &model.CommandError{Kind: model.CommandFailed, Message: fallbackMessage(text, "not authorized"), Err: err}
	case code > 0:
		return &model.CommandError{Kind: model.CommandFailed, Message: fallbackMessage(text, "command failed"), Err: err}
	default:
		return &model.CommandError{Kind: model.CommandUnknown, Message: fallbackMessage(text, err.Error()), Err: err}
	}
}

type exitCoder interface {
	ExitCode() int
}

func exitCode(err error) int {
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return -1
}

func fallbackMessage(text, fallback string) string {
	if text == "" {
		return fallback
	}
	return text
}
