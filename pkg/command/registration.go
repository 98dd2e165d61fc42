package command

import (
	"fmt"
)

// Registration pairs a command with the place it attaches in the tree.
//
// Path is root-qualified: either empty, meaning "directly under the root",
// or the root's name followed by the names of the groups to descend
// through. For a root "foo", registering "foo bar buzz" takes
//
//	Registration{Command: buzz, Path: []string{"foo", "bar"}}
//
// and "bar" must already be a group in the tree when buzz is attached.
type Registration struct {
	Command Command
	Path    []string

	// Raw holds the unrecognized value an Opaque contribution carried.
	// Command is nil whenever Raw is set.
	Raw interface{}
}

func (r Registration) String() string {
	if r.Command == nil {
		return fmt.Sprintf("registration of non-command %v", r.Raw)
	}
	if len(r.Path) == 0 {
		return fmt.Sprintf("registration of %q at root", r.Command.Name())
	}
	return fmt.Sprintf("registration of %q at %v", r.Command.Name(), r.Path)
}

// Contribution is whatever a plugin's subcommand hook returns. The set of
// shapes is closed: build one with Cmd, At, List or Opaque, or use a
// Registration directly.
type Contribution interface {
	contribution()
}

type bareContribution struct{ cmd Command }

type pathContribution struct {
	cmd  Command
	path []string
}

type listContribution []Contribution

type opaqueContribution struct{ v interface{} }

func (Registration) contribution()       {}
func (bareContribution) contribution()   {}
func (pathContribution) contribution()   {}
func (listContribution) contribution()   {}
func (opaqueContribution) contribution() {}

// Cmd contributes cmd directly under the root.
func Cmd(cmd Command) Contribution {
	return bareContribution{cmd: cmd}
}

// At contributes cmd under the group named by path.
func At(cmd Command, path ...string) Contribution {
	return pathContribution{cmd: cmd, path: path}
}

// List groups contributions; lists may nest to any depth.
func List(items ...Contribution) Contribution {
	return listContribution(items)
}

// Opaque wraps a value of no recognized shape. It normalizes to a
// registration that fails to attach with ErrNotACommand.
func Opaque(v interface{}) Contribution {
	return opaqueContribution{v: v}
}

// Normalize flattens a contribution into registrations, in order. A nil
// contribution yields none.
func Normalize(c Contribution) []Registration {
	var out []Registration
	normalize(c, &out)
	return out
}

// NormalizeAll normalizes each contribution and concatenates the results.
func NormalizeAll(cs []Contribution) []Registration {
	var out []Registration
	for _, c := range cs {
		normalize(c, &out)
	}
	return out
}

func normalize(c Contribution, out *[]Registration) {
	switch v := c.(type) {
	case nil:
	case Registration:
		*out = append(*out, v)
	case bareContribution:
		*out = append(*out, Registration{Command: v.cmd})
	case pathContribution:
		*out = append(*out, Registration{Command: v.cmd, Path: v.path})
	case listContribution:
		for _, item := range v {
			normalize(item, out)
		}
	case opaqueContribution:
		*out = append(*out, Registration{Raw: v.v})
	default:
		panic(fmt.Sprintf("command: unhandled contribution type %T", c))
	}
}
