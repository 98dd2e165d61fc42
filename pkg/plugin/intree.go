package plugin

import (
	"github.com/kiosk404/together/pkg/options"
)

// InTreeRegistry is a pre-configured, ordered set of built-in plugin
// factories. Order matters: it becomes registration order when applied.
//
// Out-of-tree plugins can be added via Manager.Register directly.
type InTreeRegistry struct {
	entries []inTreeEntry
}

type inTreeEntry struct {
	def     Definition
	factory Factory
	args    Args
}

// NewInTreeRegistry creates a new in-tree plugin registry.
func NewInTreeRegistry() *InTreeRegistry {
	return &InTreeRegistry{}
}

// Register adds a plugin factory to the in-tree registry.
func (r *InTreeRegistry) Register(def Definition, factory Factory, args Args) {
	r.entries = append(r.entries, inTreeEntry{
		def:     def,
		factory: factory,
		args:    args,
	})
}

// Len returns the number of registered factories.
func (r *InTreeRegistry) Len() int {
	return len(r.entries)
}

// ApplyTo registers all in-tree plugin factories into the given Manager.
func (r *InTreeRegistry) ApplyTo(m *Manager) error {
	for _, entry := range r.entries {
		if _, err := m.RegisterFactory(entry.def, entry.factory, entry.args); err != nil {
			return err
		}
	}
	return nil
}

// EntryArgs returns the per-plugin config for id from opts as Args, or nil.
func EntryArgs(opts *options.PluginsOptions, id string) Args {
	if opts == nil {
		return nil
	}
	entry, ok := opts.Entries[id]
	if !ok || entry.Config == nil {
		return nil
	}
	args := make(Args, len(entry.Config))
	for k, v := range entry.Config {
		args[k] = v
	}
	return args
}
