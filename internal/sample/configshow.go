package sample

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/bytedance/sonic"
	"github.com/kiosk404/together/pkg/command"
	"github.com/kiosk404/together/pkg/config"
	"github.com/kiosk404/together/pkg/plugin"
	"github.com/kiosk404/together/pkg/state"
	"github.com/spf13/cobra"
)

const (
	// ConfigName is the ID of the config plugin.
	ConfigName = "sample-config"

	keyOutput   = "output"
	keyGreeting = "greeting"
)

func ConfigDefinition() plugin.Definition {
	return plugin.Definition{
		ID:          ConfigName,
		Name:        "Sample Config",
		Description: "Configuration defaults and the config command",
	}
}

// ConfigFactory reads an optional "greeting" arg from the plugin entry.
func ConfigFactory(args plugin.Args) (plugin.Plugin, error) {
	p := &configPlugin{greeting: "hello"}
	if v, ok := args["greeting"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s: 'greeting' must be a string, got %T", ConfigName, v)
		}
		p.greeting = s
	}
	return p, nil
}

type configPlugin struct {
	greeting string
}

var (
	_ plugin.Configurer         = (*configPlugin)(nil)
	_ plugin.SubcommandProvider = (*configPlugin)(nil)
)

func (p *configPlugin) Name() string { return ConfigName }

func (p *configPlugin) Configure(cfg *config.Config) {
	cfg.SetDefault(keyOutput, "toml")
	if !cfg.IsSet(keyGreeting) {
		cfg.Set(keyGreeting, p.greeting)
	}
}

func (p *configPlugin) Subcommands(cfg *config.Config) command.Contribution {
	var output string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration",
		Long: heredoc.Doc(`
			Print the configuration every plugin sees, after defaults, the
			config file, environment overrides and Configure hooks.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// pflag keeps values between parses of the same tree.
			defer func() {
				output = ""
				cmd.Flags().Lookup("output").Changed = false
			}()
			current := cfg
			if s := state.FromCommand(cmd); s != nil && s.Config() != nil {
				current = s.Config()
			}
			format := output
			if format == "" {
				format = current.GetString(keyOutput)
			}
			return writeSettings(cmd.OutOrStdout(), current.AllSettings(), format)
		},
	}
	show.Flags().StringVarP(&output, "output", "o", "", "Output format: toml or json.")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	configCmd.AddCommand(show)

	return command.Cmd(command.NewGroup(configCmd))
}

func writeSettings(w io.Writer, settings map[string]interface{}, format string) error {
	switch format {
	case "json":
		data, err := sonic.ConfigStd.MarshalIndent(settings, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "toml":
		return toml.NewEncoder(w).Encode(settings)
	default:
		return &ValueError{Field: "output", Value: format}
	}
}
