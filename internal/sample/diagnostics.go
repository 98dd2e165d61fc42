package sample

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/kiosk404/together/pkg/command"
	"github.com/kiosk404/together/pkg/config"
	"github.com/kiosk404/together/pkg/plugin"
	"github.com/spf13/cobra"
)

// DiagnosticsName is the ID of the diagnostics plugin.
const DiagnosticsName = "sample-diagnostics"

func DiagnosticsDefinition() plugin.Definition {
	return plugin.Definition{
		ID:          DiagnosticsName,
		Name:        "Sample Diagnostics",
		Description: "Lists the plugins the CLI was assembled from and host info",
	}
}

// NewDiagnostics returns the diagnostics plugin. plugins is called when the
// command runs, after every plugin has been registered.
func NewDiagnostics(plugins func() *plugin.Manager) plugin.Plugin {
	return &diagnosticsPlugin{plugins: plugins}
}

type diagnosticsPlugin struct {
	plugins func() *plugin.Manager
}

var (
	_ plugin.Describer          = (*diagnosticsPlugin)(nil)
	_ plugin.SubcommandProvider = (*diagnosticsPlugin)(nil)
)

func (p *diagnosticsPlugin) Definition() plugin.Definition { return DiagnosticsDefinition() }

func (p *diagnosticsPlugin) Name() string { return DiagnosticsName }

func (p *diagnosticsPlugin) Subcommands(*config.Config) command.Contribution {
	plugins := command.NewLeaf(&cobra.Command{
		Use:   "plugins",
		Short: "List loaded plugins in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := p.plugins()
			if m == nil {
				return fmt.Errorf("plugins are not loaded")
			}
			table := uitable.New()
			table.MaxColWidth = 60
			table.AddRow("#", "PLUGIN", "DESCRIPTION")
			for i, name := range m.Names() {
				def, _ := m.Definition(name)
				table.AddRow(i+1, name, def.Description)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), table)
			return err
		},
	})
	return command.List(command.Cmd(plugins), command.Cmd(command.NewLeaf(NewCmdInfo())))
}
