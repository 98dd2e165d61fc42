package sample

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kiosk404/together/pkg/command"
	"github.com/kiosk404/together/pkg/config"
	"github.com/kiosk404/together/pkg/logger"
	"github.com/kiosk404/together/pkg/plugin"
	"github.com/kiosk404/together/pkg/state"
	"github.com/spf13/cobra"
)

const (
	// BaseName is the ID of the plugin contributing the root command.
	BaseName = "sample-base"
	// RootName is the name of the sample CLI.
	RootName = "sample"
)

// BaseDefinition returns the static metadata for the base plugin.
func BaseDefinition() plugin.Definition {
	return plugin.Definition{
		ID:          BaseName,
		Name:        "Sample Base",
		Description: "Root command and the foo group",
		Required:    true,
	}
}

// BaseFactory is the plugin.Factory for the base plugin.
func BaseFactory(plugin.Args) (plugin.Plugin, error) {
	return &basePlugin{}, nil
}

type basePlugin struct{}

var _ plugin.RootCommandProvider = (*basePlugin)(nil)

func (p *basePlugin) Name() string { return BaseName }

// RootCommand returns the sample root. The foo group is created here, with
// the root, so that every subcommand hook can rely on it existing.
func (p *basePlugin) RootCommand(cfg *config.Config) command.Command {
	rootCmd := &cobra.Command{
		Use:   RootName,
		Short: "sample is assembled from plugins",
		Long: heredoc.Doc(`
			sample is a demonstration CLI. Every command below is contributed
			by a plugin; this one only provides the root and the foo group.`),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.SetVerbosity(state.Verbosity(cmd))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "at root")
			return nil
		},
	}
	state.VerboseOption(rootCmd)
	root := command.NewGroup(rootCmd)

	foo := command.NewGroup(&cobra.Command{
		Use:   "foo",
		Short: "Group other plugins attach commands to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "foo")
			return nil
		},
	})
	if err := root.AddChild(foo); err != nil {
		logger.Error("[Sample] %v", err)
	}
	return root
}
