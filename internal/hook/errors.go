package hook

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCommand is returned for a command line with no words.
var ErrEmptyCommand = errors.New("hook command is empty")

// SplitError is returned when a command line has unbalanced quotes or a
// dangling escape.
type SplitError struct {
	Command string
	Cause   error
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("cannot parse hook command %q: %v", e.Command, e.Cause)
}

func (e *SplitError) Unwrap() error {
	return e.Cause
}

// ExitError is returned when a hook exits with a non-zero status.
type ExitError struct {
	Command  string
	Argv     []string
	ExitCode int
	// Stderr holds the trailing part of the child's error output.
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("hook %q exited with status %d", e.Command, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + lastLine(s)
	}
	return msg
}

// SpawnError is returned when a hook cannot be started, e.g. the program
// does not exist.
type SpawnError struct {
	Command string
	Argv    []string
	Cause   error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("cannot start hook %q: %v", e.Command, e.Cause)
}

func (e *SpawnError) Unwrap() error {
	return e.Cause
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
