package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// PluginsOptions holds the top-level configuration for the plugin system.
type PluginsOptions struct {
	// Enabled controls whether third-party plugins are loaded at all. (default: true)
	// Plugins marked Required in their Definition are loaded regardless.
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	// Allow lists plugins that are explicitly allowed to be loaded.
	// Empty means every plugin not denied is allowed.
	Allow []string `json:"allow" mapstructure:"allow"`
	// Deny lists plugins that are explicitly denied to be loaded.
	Deny []string `json:"deny" mapstructure:"deny"`
	// Entries holds per-plugin configuration, keyed by plugin ID.
	Entries map[string]PluginEntryConfig `json:"entries" mapstructure:"entries"`
}

// PluginEntryConfig holds per-plugin configuration.
type PluginEntryConfig struct {
	Enabled *bool                  `json:"enabled,omitempty" mapstructure:"enabled"`
	Config  map[string]interface{} `json:"config,omitempty" mapstructure:"config"`
}

// NewPluginsOptions returns a new instance of PluginsOptions.
func NewPluginsOptions() *PluginsOptions {
	return &PluginsOptions{
		Enabled: true,
		Allow:   []string{},
		Deny:    []string{},
		Entries: make(map[string]PluginEntryConfig),
	}
}

// Validate checks PluginsOptions fields.
func (o *PluginsOptions) Validate() []error {
	var errs []error

	for _, id := range append(append([]string{}, o.Allow...), o.Deny...) {
		if err := validatePluginID(id); err != nil {
			errs = append(errs, err)
		}
	}
	for _, denied := range o.Deny {
		for _, allowed := range o.Allow {
			if denied == allowed {
				errs = append(errs, fmt.Errorf("plugin %q is both allowed and denied", denied))
			}
		}
	}

	return errs
}

// validatePluginID checks that id is DNS-compatible.
func validatePluginID(id string) error {
	if id == "" {
		return fmt.Errorf("empty plugin id")
	}
	for _, c := range id {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '_') {
			return fmt.Errorf("invalid character %q in plugin id %q", c, id)
		}
	}
	return nil
}

// AddFlags adds flags for the plugins options.
// Only global-level switches are exposed as CLI flags.
func (o *PluginsOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "plugins.enabled", o.Enabled, "Enable the plugin system.")
	fs.StringSliceVar(&o.Allow, "plugins.allow", o.Allow, "Only load these plugins.")
	fs.StringSliceVar(&o.Deny, "plugins.deny", o.Deny, "Never load these plugins.")
}
