package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleeper/internal/core/model"
)

type exitStatusError struct {
	code int
}

func (err exitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", err.code)
}

func (err exitStatusError) ExitCode() int {
	return err.code
}

func TestClassifyOsascriptError(t *testing.T) {
	testCases := []struct {
		name   string
		output string
		err    error
		want   model.CommandKind
	}{
		{name: "user cancelled dialog", output: "execution error: User canceled. (-128)", err: exitStatusError{code: 1}, want: model.CommandDeclined},
		{name: "cancel code only", output: "0:45: execution error: (-128)", err: exitStatusError{code: 1}, want: model.CommandDeclined},
		{name: "pmset rejected", output: "execution error: pmset: Error: bad date (1)", err: exitStatusError{code: 1}, want: model.CommandFailed},
		{name: "other exit", output: "", err: exitStatusError{code: 2}, want: model.CommandFailed},
		{name: "no exit status", output: "", err: errors.New("broken pipe"), want: model.CommandUnknown},
		{name: "context cancelled", output: "", err: context.Canceled, want: model.CommandUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyOsascriptError([]byte(tc.output), tc.err)

			var commandErr *model.CommandError
			require.ErrorAs(t, err, &commandErr)
			assert.Equal(t, tc.want, commandErr.Kind)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestClassifyPkexecError(t *testing.T) {
	testCases := []struct {
		name   string
		output string
		err    error
		want   model.CommandKind
	}{
		{name: "dialog dismissed", err: exitStatusError{code: 126}, want: model.CommandDeclined},
		{name: "not authorized", output: "Error executing command as another user: Not authorized", err: exitStatusError{code: 127}, want: model.CommandFailed},
		{name: "systemd-run failure", output: "Failed to start transient timer unit", err: exitStatusError{code: 1}, want: model.CommandFailed},
		{name: "missing binary", err: &exec.Error{Name: "pkexec", Err: exec.ErrNotFound}, want: model.CommandUnsupported},
		{name: "deadline", err: context.DeadlineExceeded, want: model.CommandUnknown},
		{name: "unknown", err: errors.New("signal: killed"), want: model.CommandUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyPkexecError([]byte(tc.output), tc.err)

			var commandErr *model.CommandError
			require.ErrorAs(t, err, &commandErr)
			assert.Equal(t, tc.want, commandErr.Kind)
		})
	}
}

func TestClassifySuccess(t *testing.T) {
	assert.NoError(t, classifyOsascriptError([]byte("ok"), nil))
	assert.NoError(t, classifyPkexecError(nil, nil))
}

func TestFailedMessageKeepsOutput(t *testing.T) {
	err := classifyPkexecError([]byte("  Unit already exists\n"), exitStatusError{code: 1})

	var commandErr *model.CommandError
	require.ErrorAs(t, err, &commandErr)
	assert.Equal(t, "Unit already exists", commandErr.Message)
}
