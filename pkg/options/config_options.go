package options

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ConfigOptions controls where the process-wide configuration is read from
// before plugins get to mutate it.
type ConfigOptions struct {
	// File is an explicit config file. It takes precedence over Name.
	File string `json:"file" mapstructure:"file"`
	// Name is the config file base name searched for in Paths (no extension).
	Name string `json:"name" mapstructure:"name"`
	// Paths are searched in order when File is empty.
	Paths []string `json:"paths" mapstructure:"paths"`
	// EnvPrefix enables environment overrides, e.g. SAMPLE_OUTPUT for "output".
	EnvPrefix string `json:"env-prefix" mapstructure:"env-prefix"`
}

// NewConfigOptions returns ConfigOptions with no file and no env binding.
func NewConfigOptions() *ConfigOptions {
	return &ConfigOptions{
		Paths: []string{},
	}
}

// Validate checks ConfigOptions fields.
func (o *ConfigOptions) Validate() []error {
	var errs []error
	if o.Name != "" && strings.ContainsAny(o.Name, `/\`) {
		errs = append(errs, fmt.Errorf("config name %q must not contain a path, use File instead", o.Name))
	}
	if strings.ContainsAny(o.EnvPrefix, " -.") {
		errs = append(errs, fmt.Errorf("invalid env prefix %q", o.EnvPrefix))
	}
	return errs
}

// AddFlags adds flags for the config options.
func (o *ConfigOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.File, "config", o.File, "Path to the configuration file.")
}
