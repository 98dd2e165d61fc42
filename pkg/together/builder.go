package together

import (
	"fmt"

	"github.com/kiosk404/together/pkg/command"
	"github.com/kiosk404/together/pkg/config"
	"github.com/kiosk404/together/pkg/exception"
	"github.com/kiosk404/together/pkg/logger"
	"github.com/kiosk404/together/pkg/plugin"
)

// Builder assembles the command tree and the handler chain from the hooks
// of the plugins in a Manager. It runs each hook once per call; CLI adds
// the once-only guarantee.
type Builder struct {
	plugins *plugin.Manager
	config  *config.Config
}

// NewBuilder returns a Builder over m, passing cfg to every hook.
func NewBuilder(m *plugin.Manager, cfg *config.Config) *Builder {
	return &Builder{plugins: m, config: cfg}
}

// Root runs the root command hook and returns the first registered
// plugin's non-nil root.
func (b *Builder) Root() (command.MultiCommand, error) {
	roots := plugin.Reverse(plugin.Dispatch(b.plugins, func(p plugin.RootCommandProvider) command.Command {
		return p.RootCommand(b.config)
	}))

	var root command.Command
	for _, r := range roots {
		if r == nil {
			continue
		}
		if root != nil {
			logger.Debug("[Build] ignoring additional root command %q", r.Name())
			continue
		}
		root = r
	}
	if root == nil {
		return nil, ErrNoRootCommand
	}

	group, ok := root.(command.MultiCommand)
	if !ok {
		return nil, &StructuralError{Root: root}
	}
	return group, nil
}

// Registrations runs the subcommand hooks and returns their normalized
// registrations in registration order: subcommand hook results first,
// then the collection hook's.
func (b *Builder) Registrations() []command.Registration {
	subcommands := plugin.Reverse(plugin.Dispatch(b.plugins, func(p plugin.SubcommandProvider) command.Contribution {
		return p.Subcommands(b.config)
	}))
	collections := plugin.Reverse(plugin.Dispatch(b.plugins, func(p plugin.SubcommandCollectionProvider) []command.Contribution {
		return p.SubcommandCollection(b.config)
	}))

	all := make([]command.Contribution, 0, len(subcommands))
	all = append(all, subcommands...)
	for _, cs := range collections {
		all = append(all, cs...)
	}
	return command.NormalizeAll(all)
}

// Tree builds the full command tree in a single pass. A registration whose
// path names a group contributed by a later registration fails.
func (b *Builder) Tree() (command.MultiCommand, error) {
	root, err := b.Root()
	if err != nil {
		return nil, err
	}

	regs := b.Registrations()
	for _, reg := range regs {
		if err := command.Attach(root, reg); err != nil {
			return nil, fmt.Errorf("build %q: %w", root.Name(), err)
		}
	}
	logger.Debug("[Build] attached %d commands to %q from %d plugins", len(regs), root.Name(), b.plugins.Len())
	return root, nil
}

// Handlers runs the exception handler hook and compiles the chain, with
// handlers of equal priority in registration order.
func (b *Builder) Handlers() (*exception.Chain, error) {
	raws := plugin.Reverse(plugin.Dispatch(b.plugins, func(p plugin.ExceptionHandlerProvider) exception.Contribution {
		return p.ExceptionHandlers(b.config)
	}))
	chain, err := exception.Compile(raws)
	if err != nil {
		return nil, err
	}
	logger.Debug("[Build] compiled %d exception handlers", chain.Len())
	for i, e := range chain.Entries() {
		logger.Debug("[Build] exception handler #%d: %s", i, e)
	}
	return chain, nil
}
