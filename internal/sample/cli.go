// Package sample assembles the sample CLI out of a handful of plugins.
package sample

import (
	"github.com/kiosk404/together/pkg/cli/genericclioptions"
	"github.com/kiosk404/together/pkg/logger"
	"github.com/kiosk404/together/pkg/plugin"
	"github.com/kiosk404/together/pkg/together"
)

// NewInTreeRegistry creates the in-tree registry with the default plugins,
// in registration order:
// - sample-base: root command and the foo group
// - sample-config: configuration defaults and "config show"
// - subsample: "foo bar" and the fruit group
func NewInTreeRegistry(opts *together.Options) *plugin.InTreeRegistry {
	registry := plugin.NewInTreeRegistry()

	registry.Register(BaseDefinition(), BaseFactory, nil)
	registry.Register(ConfigDefinition(), ConfigFactory, plugin.EntryArgs(opts.Plugins, ConfigName))
	registry.Register(SubsampleDefinition(), SubsampleFactory, nil)

	return registry
}

// NewCLI returns the sample CLI writing to streams.
func NewCLI(streams genericclioptions.IOStreams, opts ...together.Option) *together.CLI {
	base := []together.Option{
		together.WithIOStreams(streams),
		together.WithInTree(NewInTreeRegistry),
		together.WithDefaults(map[string]interface{}{
			"count.limit": 100,
		}),
	}
	cli := together.New(append(base, opts...)...)

	for _, p := range []plugin.Plugin{
		NewDiagnostics(cli.Plugins),
		NewFailures(streams.ErrOut),
	} {
		if err := cli.Register(p); err != nil {
			logger.Error("[Sample] register %q: %v", p.Name(), err)
		}
	}
	return cli
}
