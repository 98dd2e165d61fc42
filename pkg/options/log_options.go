package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// LogOptions configures pkg/logger.
type LogOptions struct {
	Level string `json:"level" mapstructure:"level"`
	// File redirects logs away from stderr when set.
	File string `json:"file" mapstructure:"file"`
}

func NewLogOptions() *LogOptions {
	return &LogOptions{Level: "warn"}
}

func (o *LogOptions) Validate() []error {
	var errs []error
	if !validLevels[o.Level] {
		errs = append(errs, fmt.Errorf("invalid log level %q", o.Level))
	}
	return errs
}

func (o *LogOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Level, "log.level", o.Level, "Minimum log level: debug, info, warn or error.")
	fs.StringVar(&o.File, "log.file", o.File, "Write logs to this file instead of stderr.")
}
