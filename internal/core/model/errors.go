package model

import "fmt"

// CommandKind is the closed classification of privileged command failures.
type CommandKind string

const (
	CommandDeclined    CommandKind = "declined"
	CommandFailed      CommandKind = "failed"
	CommandUnsupported CommandKind = "unsupported"
	CommandUnknown     CommandKind = "unknown"
)

// CommandError is returned by executors when the OS-level sleep command
// fails or the user declines authorization.
type CommandError struct {
	Kind    CommandKind
	Message string
	Err     error
}

func (err *CommandError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("%s command: %s: %v", err.Kind, err.Message, err.Err)
	}
	return fmt.Sprintf("%s command: %s", err.Kind, err.Message)
}

func (err *CommandError) Unwrap() error {
	return err.Err
}
