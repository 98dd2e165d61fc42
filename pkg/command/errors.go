package command

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotACommand is returned when a registration carries no command.
	ErrNotACommand = errors.New("registration does not carry a command")
	// ErrDuplicateChild is returned when a group already has a child of the
	// same name.
	ErrDuplicateChild = errors.New("duplicate child command")
)

// ResolutionError reports a registration path that does not lead to an
// existing group.
type ResolutionError struct {
	// Path is the full path being resolved.
	Path []string
	// Segment is the offending path element.
	Segment string
	// Expected is the root name when the path starts with a different one.
	Expected string
	// NotGroup is set when Segment exists but cannot own children.
	NotGroup bool
}

func (e *ResolutionError) Error() string {
	path := strings.Join(e.Path, " ")
	switch {
	case e.Expected != "":
		return fmt.Sprintf("expected name for root to be %q, but path %q started with %q", e.Expected, path, e.Segment)
	case e.NotGroup:
		return fmt.Sprintf("cannot resolve path %q: %q is not a group", path, e.Segment)
	default:
		return fmt.Sprintf("cannot resolve path %q: no command named %q", path, e.Segment)
	}
}
