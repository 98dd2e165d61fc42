// Package state provides the shared invocation state: one mutable object
// per top-level invocation, reachable from every command in the tree
// through the command context.
package state

import (
	"context"

	"github.com/google/uuid"
	"github.com/kiosk404/together/pkg/config"
	"github.com/spf13/cobra"
)

// State is a general parameter store for a single invocation. Options such
// as verbosity can be declared at several levels of the command tree and
// still accumulate into one value seen by the command that finally runs.
//
// A State is not safe for concurrent use; each invocation gets its own.
type State struct {
	// ID identifies the invocation, mostly for log correlation.
	ID string

	config *config.Config
	data   map[string]interface{}
}

// New returns an empty State referencing cfg.
func New(cfg *config.Config) *State {
	return &State{
		ID:     uuid.New().String(),
		config: cfg,
		data:   make(map[string]interface{}),
	}
}

// Config returns the process-wide configuration the state was created with.
func (s *State) Config() *config.Config {
	return s.config
}

// Set stores value under name.
func (s *State) Set(name string, value interface{}) {
	s.data[name] = value
}

// Get returns the value stored under name.
func (s *State) Get(name string) (interface{}, bool) {
	v, ok := s.data[name]
	return v, ok
}

// GetInt returns the int stored under name, or def if absent or not an int.
func (s *State) GetInt(name string, def int) int {
	if v, ok := s.data[name].(int); ok {
		return v
	}
	return def
}

// Len returns the number of stored values.
func (s *State) Len() int {
	return len(s.data)
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the State carried by ctx, or nil.
func FromContext(ctx context.Context) *State {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(contextKey{}).(*State)
	return s
}

// FromCommand returns the State of the invocation cmd is running in, or nil
// when cmd was executed outside of a together CLI.
func FromCommand(cmd *cobra.Command) *State {
	return FromContext(cmd.Context())
}
