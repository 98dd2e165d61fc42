package together

import (
	"errors"
	"fmt"
)

// FaultExitCode is the exit code used when a handler's result cannot be
// used as an exit code.
const FaultExitCode = 255

var (
	// ErrNoRootCommand is returned by Build when no plugin contributes a
	// root command.
	ErrNoRootCommand = errors.New("no root command contributed")
	// ErrUnusableExitCode marks a handler result outside 0..255.
	ErrUnusableExitCode = errors.New("exception handler returned an unusable exit code")
)

// StructuralError reports a root contribution that cannot own children.
type StructuralError struct {
	Root interface{}
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("cannot register a non-group root: %v", e.Root)
}

// ExitError signals a specific process exit code chosen by an exception
// handler for Err.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
