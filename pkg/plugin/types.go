// Package plugin defines what a together plugin is, the hooks it may
// implement, and the ordered manager that dispatches those hooks.
package plugin

// Plugin is the fundamental interface that all plugins must implement.
// A plugin contributes to the CLI by additionally implementing any of the
// hook interfaces in hooks.go; the manager probes for them.
type Plugin interface {
	// Name returns the unique identifier of this plugin.
	// Must be DNS-compatible (lowercase, hyphens, no spaces).
	Name() string
}

// Factory creates a plugin instance from its args.
type Factory func(args Args) (Plugin, error)

// Args is passed to a Factory. Typically per-plugin configuration taken
// from options.PluginsOptions.Entries.
type Args map[string]interface{}

// Definition is the static metadata for a plugin.
type Definition struct {
	ID          string
	Name        string
	Description string
	// Required plugins are loaded even when the plugin system is disabled
	// or the plugin is not on the allow list. Deny still wins.
	Required bool
}

// Describer is implemented by plugins registered without a factory that
// still want to carry a Definition.
type Describer interface {
	Definition() Definition
}
