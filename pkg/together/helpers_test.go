package together

import (
	"bytes"
	"fmt"

	"github.com/kiosk404/together/pkg/cli/genericclioptions"
	"github.com/kiosk404/together/pkg/command"
	"github.com/kiosk404/together/pkg/config"
	"github.com/kiosk404/together/pkg/exception"
	"github.com/kiosk404/together/pkg/state"
	"github.com/spf13/cobra"
)

// fakePlugin implements every hook; unset hooks contribute nothing.
type fakePlugin struct {
	name       string
	root       func(cfg *config.Config) command.Command
	subs       func(cfg *config.Config) command.Contribution
	collection func(cfg *config.Config) []command.Contribution
	configure  func(cfg *config.Config)
	handlers   exception.Contribution

	calls int
}

func (p *fakePlugin) Name() string { return p.name }

func (p *fakePlugin) RootCommand(cfg *config.Config) command.Command {
	p.calls++
	if p.root == nil {
		return nil
	}
	return p.root(cfg)
}

func (p *fakePlugin) Subcommands(cfg *config.Config) command.Contribution {
	p.calls++
	if p.subs == nil {
		return nil
	}
	return p.subs(cfg)
}

func (p *fakePlugin) SubcommandCollection(cfg *config.Config) []command.Contribution {
	p.calls++
	if p.collection == nil {
		return nil
	}
	return p.collection(cfg)
}

func (p *fakePlugin) Configure(cfg *config.Config) {
	if p.configure != nil {
		p.configure(cfg)
	}
}

func (p *fakePlugin) ExceptionHandlers(*config.Config) exception.Contribution {
	p.calls++
	return p.handlers
}

func rootPlugin(name, root string) *fakePlugin {
	return &fakePlugin{
		name: name,
		root: func(*config.Config) command.Command { return group(root) },
	}
}

func subsPlugin(name string, subs func() command.Contribution) *fakePlugin {
	return &fakePlugin{
		name: name,
		subs: func(*config.Config) command.Contribution { return subs() },
	}
}

func group(name string) *command.Group {
	return command.NewGroup(&cobra.Command{
		Use: name,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", name)
			return nil
		},
	})
}

func leaf(name string) *command.Leaf {
	return command.NewLeaf(&cobra.Command{
		Use: name,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", name)
			return nil
		},
	})
}

// failing returns a leaf whose run returns err.
func failing(name string, err error) *command.Leaf {
	return command.NewLeaf(&cobra.Command{
		Use:          name,
		SilenceUsage: true,
		RunE:         func(*cobra.Command, []string) error { return err },
	})
}

// verboseLeaf reports the accumulated verbosity of its invocation.
func verboseLeaf(name string) *command.Leaf {
	return command.NewLeaf(state.VerboseOption(&cobra.Command{
		Use: name,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "verbosity=%d\n", state.Verbosity(cmd))
			return nil
		},
	}))
}

func newTestCLI(plugins ...*fakePlugin) (*CLI, *bytes.Buffer, *bytes.Buffer) {
	streams, _, out, errOut := genericclioptions.NewTestIOStreams()
	c := New(WithIOStreams(streams))
	for _, p := range plugins {
		_ = c.Register(p)
	}
	return c, out, errOut
}
