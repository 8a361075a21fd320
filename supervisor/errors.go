package supervisor

import (
	"errors"
	"fmt"
	"time"
)

// TimeoutError indicates the command's wall-clock budget was exceeded.
// The whole process tree of the command has been terminated by the time
// this error is returned.
type TimeoutError struct {
	Command string
	After   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %q timed out after %s", e.Command, e.After)
}

// ExitError indicates the command ran to completion but exited non-zero.
// Stdout holds everything captured before exit, for failure-summary
// extraction.
type ExitError struct {
	Command string
	Code    int
	Stdout  string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.Command, e.Code)
}

// SpawnError indicates the OS failed to create or reap the process.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("command %q failed to spawn: %v", e.Command, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IsTimeout checks if the error is or wraps a TimeoutError
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return err != nil && errors.As(err, &timeoutErr)
}

// IsExit checks if the error is or wraps an ExitError
func IsExit(err error) bool {
	var exitErr *ExitError
	return err != nil && errors.As(err, &exitErr)
}

// IsSpawn checks if the error is or wraps a SpawnError
func IsSpawn(err error) bool {
	var spawnErr *SpawnError
	return err != nil && errors.As(err, &spawnErr)
}

// CapturedStdout returns the stdout payload attached to an ExitError,
// if the error carries one.
func CapturedStdout(err error) (string, bool) {
	var exitErr *ExitError
	if err != nil && errors.As(err, &exitErr) {
		return exitErr.Stdout, true
	}
	return "", false
}
