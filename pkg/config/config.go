// Package config holds the process-wide configuration object. One Config
// is created per CLI and handed by reference to every plugin hook, so a
// plugin's Configure hook can change what later hooks and commands see.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kiosk404/together/pkg/logger"
	"github.com/kiosk404/together/pkg/options"
	"github.com/spf13/viper"
)

// Config is a key/value configuration tree backed by viper. Keys are
// dot-separated and case-insensitive.
type Config struct {
	v *viper.Viper
}

// New returns an empty Config.
func New() *Config {
	return &Config{v: viper.New()}
}

// Load builds a Config from opts: defaults first, then the config file if
// one is configured or found, then environment overrides when an env
// prefix is set. A missing config file is not an error unless File was
// set explicitly.
func Load(opts *options.ConfigOptions, defaults map[string]interface{}) (*Config, error) {
	c := New()
	for k, val := range defaults {
		c.v.SetDefault(k, val)
	}
	if opts == nil {
		return c, nil
	}

	if opts.EnvPrefix != "" {
		c.v.SetEnvPrefix(opts.EnvPrefix)
		c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		c.v.AutomaticEnv()
	}

	switch {
	case opts.File != "":
		c.v.SetConfigFile(opts.File)
		if err := c.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", opts.File, err)
		}
	case opts.Name != "":
		c.v.SetConfigName(opts.Name)
		for _, p := range opts.Paths {
			c.v.AddConfigPath(p)
		}
		if err := c.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %q: %w", opts.Name, err)
			}
			logger.Debug("[Config] no %q config file found in %v", opts.Name, opts.Paths)
		}
	}
	if used := c.v.ConfigFileUsed(); used != "" {
		logger.Info("[Config] loaded %s", used)
	}
	return c, nil
}

// Get returns the value at key, or nil.
func (c *Config) Get(key string) interface{} { return c.v.Get(key) }

// GetString returns the value at key as a string.
func (c *Config) GetString(key string) string { return c.v.GetString(key) }

// GetInt returns the value at key as an int.
func (c *Config) GetInt(key string) int { return c.v.GetInt(key) }

// GetBool returns the value at key as a bool.
func (c *Config) GetBool(key string) bool { return c.v.GetBool(key) }

// GetStringSlice returns the value at key as a string slice.
func (c *Config) GetStringSlice(key string) []string { return c.v.GetStringSlice(key) }

// Set overrides the value at key.
func (c *Config) Set(key string, value interface{}) { c.v.Set(key, value) }

// SetDefault sets a value used when nothing else provides key.
func (c *Config) SetDefault(key string, value interface{}) { c.v.SetDefault(key, value) }

// IsSet reports whether key has a value from any source.
func (c *Config) IsSet(key string) bool { return c.v.IsSet(key) }

// Keys lists every known key.
func (c *Config) Keys() []string { return c.v.AllKeys() }

// AllSettings returns the merged configuration as a nested map.
func (c *Config) AllSettings() map[string]interface{} { return c.v.AllSettings() }

// Unmarshal decodes the subtree at key into out ("" decodes everything).
func (c *Config) Unmarshal(key string, out interface{}) error {
	if key == "" {
		return c.v.Unmarshal(out)
	}
	return c.v.UnmarshalKey(key, out)
}

// FileUsed returns the config file that was read, or "".
func (c *Config) FileUsed() string { return c.v.ConfigFileUsed() }
