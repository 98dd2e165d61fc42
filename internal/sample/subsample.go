package sample

import (
	"fmt"

	"github.com/kiosk404/together/pkg/command"
	"github.com/kiosk404/together/pkg/config"
	"github.com/kiosk404/together/pkg/plugin"
	"github.com/kiosk404/together/pkg/state"
	"github.com/spf13/cobra"
)

// SubsampleName is the ID of the subsample plugin.
const SubsampleName = "subsample"

func SubsampleDefinition() plugin.Definition {
	return plugin.Definition{
		ID:          SubsampleName,
		Name:        "Subsample",
		Description: "Adds bar under foo and the fruit group",
	}
}

func SubsampleFactory(plugin.Args) (plugin.Plugin, error) {
	return &subsamplePlugin{}, nil
}

type subsamplePlugin struct{}

var _ plugin.SubcommandProvider = (*subsamplePlugin)(nil)

func (p *subsamplePlugin) Name() string { return SubsampleName }

func (p *subsamplePlugin) Subcommands(cfg *config.Config) command.Contribution {
	bar := &cobra.Command{
		Use:   "bar",
		Short: "Print bar and the current verbosity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "bar verbosity=%d\n", state.Verbosity(cmd))
			return nil
		},
	}
	state.VerboseOption(bar)

	fruit := &cobra.Command{
		Use:   "fruit",
		Short: "A group built with plain cobra",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "fruit")
			return nil
		},
	}
	// Children added through cobra come along with their group.
	fruit.AddCommand(&cobra.Command{
		Use:   "banana",
		Short: "Print banana",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "banana")
			return nil
		},
	})

	return command.List(
		// bar goes under foo, so its full path is needed.
		command.At(command.NewLeaf(bar), RootName, "foo"),
		command.Cmd(command.NewGroup(fruit)),
	)
}
