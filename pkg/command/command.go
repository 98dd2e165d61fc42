// Package command adapts cobra commands to the two capabilities the tree
// builder cares about: something invocable (Command) and something that
// can also own named children (MultiCommand).
package command

import (
	"context"
	"fmt"

	"github.com/kiosk404/together/pkg/state"
	"github.com/spf13/cobra"
)

// Command is a unit of executable behavior identified by a name unique
// among its siblings.
type Command interface {
	// Name returns the command name as typed on the command line.
	Name() string
	// Cobra returns the underlying cobra command.
	Cobra() *cobra.Command
	// Invoke executes the tree this command belongs to with args, starting
	// from the tree's root.
	Invoke(ctx context.Context, args []string) error
}

// MultiCommand is a Command that owns named child commands and dispatches
// to them. Only a MultiCommand may act as root or as an intermediate path
// segment.
type MultiCommand interface {
	Command
	// Child returns the child named name.
	Child(name string) (Command, bool)
	// AddChild attaches child. It fails with ErrDuplicateChild when a child
	// of the same name exists.
	AddChild(child Command) error
	// ChildNames lists child names in attachment order.
	ChildNames() []string
	// State returns the invocation state installed at this node, or nil.
	State() *state.State
	// SetState installs s at this node. Every nested execution context
	// reads the state of the root it runs under.
	SetState(s *state.State)
}

// Leaf is an invocable command with no children.
type Leaf struct {
	cmd *cobra.Command
}

var _ Command = (*Leaf)(nil)

// NewLeaf wraps cmd as a leaf command.
func NewLeaf(cmd *cobra.Command) *Leaf {
	return &Leaf{cmd: cmd}
}

func (l *Leaf) Name() string          { return l.cmd.Name() }
func (l *Leaf) Cobra() *cobra.Command { return l.cmd }
func (l *Leaf) String() string        { return fmt.Sprintf("command %q", l.Name()) }

func (l *Leaf) Invoke(ctx context.Context, args []string) error {
	return execute(ctx, l.cmd, args, nil)
}

// Group is a command that owns children.
type Group struct {
	cmd      *cobra.Command
	children map[string]Command
	order    []string
	state    *state.State
}

var _ MultiCommand = (*Group)(nil)

// NewGroup wraps cmd as a group. Children already attached to cmd through
// cobra are adopted the first time they are looked up: as groups when they
// have subcommands or no run function, as leaves otherwise.
func NewGroup(cmd *cobra.Command) *Group {
	return &Group{
		cmd:      cmd,
		children: make(map[string]Command),
	}
}

func (g *Group) Name() string            { return g.cmd.Name() }
func (g *Group) Cobra() *cobra.Command   { return g.cmd }
func (g *Group) State() *state.State     { return g.state }
func (g *Group) SetState(s *state.State) { g.state = s }
func (g *Group) String() string          { return fmt.Sprintf("group %q", g.Name()) }

func (g *Group) Invoke(ctx context.Context, args []string) error {
	return execute(ctx, g.cmd, args, g.state)
}

func (g *Group) Child(name string) (Command, bool) {
	if c, ok := g.children[name]; ok {
		return c, true
	}
	for _, sub := range g.cmd.Commands() {
		if sub.Name() != name {
			continue
		}
		var adopted Command
		if sub.HasSubCommands() || !sub.Runnable() {
			adopted = NewGroup(sub)
		} else {
			adopted = NewLeaf(sub)
		}
		g.children[name] = adopted
		g.order = append(g.order, name)
		return adopted, true
	}
	return nil, false
}

func (g *Group) AddChild(child Command) error {
	if child == nil {
		return ErrNotACommand
	}
	name := child.Name()
	if _, exists := g.Child(name); exists {
		return fmt.Errorf("%w: %q already has a child named %q", ErrDuplicateChild, g.Name(), name)
	}
	g.cmd.AddCommand(child.Cobra())
	g.children[name] = child
	g.order = append(g.order, name)
	return nil
}

func (g *Group) ChildNames() []string {
	for _, sub := range g.cmd.Commands() {
		g.Child(sub.Name())
	}
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

// execute runs cmd's tree with args. A nil args slice means no arguments,
// never os.Args.
func execute(ctx context.Context, cmd *cobra.Command, args []string, s *state.State) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if s != nil && state.FromContext(ctx) == nil {
		ctx = state.NewContext(ctx, s)
	}
	if args == nil {
		args = []string{}
	}
	root := cmd.Root()
	// cobra only hands the context down to commands that have none yet,
	// so a second execution would otherwise see the first one's context.
	setContext(ctx, root)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func setContext(ctx context.Context, cmd *cobra.Command) {
	cmd.SetContext(ctx)
	for _, sub := range cmd.Commands() {
		setContext(ctx, sub)
	}
}
