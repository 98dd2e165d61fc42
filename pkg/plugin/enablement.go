package plugin

import (
	"fmt"

	"github.com/kiosk404/together/pkg/options"
)

// Resolve determines whether a plugin should be loaded given the plugin
// options.
//
// Returns nil if the plugin is allowed; returns an error (with explanation)
// if the plugin should be skipped. Deny always wins, then per-entry
// enablement, then Required, then the global switch and allow list.
func Resolve(def Definition, opts *options.PluginsOptions) error {
	if opts == nil {
		return nil
	}
	for _, id := range opts.Deny {
		if id == def.ID {
			return fmt.Errorf("plugin %q is denied by configuration", def.ID)
		}
	}
	if entry, ok := opts.Entries[def.ID]; ok && entry.Enabled != nil && !*entry.Enabled {
		return fmt.Errorf("plugin %q is disabled by its entry", def.ID)
	}
	if def.Required {
		return nil
	}
	if !opts.Enabled {
		return fmt.Errorf("plugin system is disabled, skipping %q", def.ID)
	}
	if len(opts.Allow) == 0 {
		return nil
	}
	for _, id := range opts.Allow {
		if id == def.ID {
			return nil
		}
	}
	return fmt.Errorf("plugin %q is not on the allow list", def.ID)
}
