package plugin

import (
	"fmt"
	"sync"

	"github.com/kiosk404/together/pkg/logger"
	"github.com/kiosk404/together/pkg/options"
)

// Manager holds registered plugins in registration order and dispatches
// hooks over them.
//
// Thread-safe: all mutations are guarded by a mutex.
type Manager struct {
	mu sync.RWMutex

	opts *options.PluginsOptions

	// plugins holds all registered plugins, keyed by plugin name.
	plugins map[string]Plugin

	// order preserves the registration order of plugins.
	order []string

	// definitions holds static metadata for plugins created from factories.
	definitions map[string]Definition
}

// NewManager creates an empty manager. A nil opts allows every plugin.
func NewManager(opts *options.PluginsOptions) *Manager {
	if opts == nil {
		opts = options.NewPluginsOptions()
	}
	return &Manager{
		opts:        opts,
		plugins:     make(map[string]Plugin),
		definitions: make(map[string]Definition),
	}
}

// Register adds p after every plugin registered so far. Plugins rejected
// by the enable/deny options are skipped without error; the returned bool
// reports whether p was registered.
func (m *Manager) Register(p Plugin) (bool, error) {
	if p == nil {
		return false, fmt.Errorf("plugin is nil")
	}
	def := Definition{ID: p.Name()}
	if d, ok := p.(Describer); ok {
		def = d.Definition()
	}
	return m.register(def, p)
}

// RegisterFactory instantiates a plugin from factory and registers it
// under def.
func (m *Manager) RegisterFactory(def Definition, factory Factory, args Args) (bool, error) {
	if err := Resolve(def, m.opts); err != nil {
		logger.Info("[Plugin] skipping plugin %q: %v", def.ID, err)
		return false, nil
	}
	p, err := factory(args)
	if err != nil {
		return false, fmt.Errorf("failed to create plugin %q: %w", def.ID, err)
	}
	return m.register(def, p)
}

func (m *Manager) register(def Definition, p Plugin) (bool, error) {
	if p == nil {
		return false, fmt.Errorf("plugin %q is nil", def.ID)
	}
	if err := Resolve(def, m.opts); err != nil {
		logger.Info("[Plugin] skipping plugin %q: %v", def.ID, err)
		return false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := p.Name()
	if _, exists := m.plugins[name]; exists {
		return false, fmt.Errorf("plugin %q is already registered", name)
	}
	m.plugins[name] = p
	m.definitions[name] = def
	m.order = append(m.order, name)
	logger.Debug("[Plugin] registered plugin %q (#%d)", name, len(m.order))
	return true, nil
}

// Get returns a registered plugin by name.
func (m *Manager) Get(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plugins[name]
	return p, ok
}

// Definition returns the definition a plugin was registered with.
func (m *Manager) Definition(name string) (Definition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.definitions[name]
	return d, ok
}

// Names returns plugin names in registration order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]string, len(m.order))
	copy(result, m.order)
	return result
}

// Plugins returns plugins in registration order.
func (m *Manager) Plugins() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		result = append(result, m.plugins[name])
	}
	return result
}

// Len returns the number of registered plugins.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.plugins)
}
