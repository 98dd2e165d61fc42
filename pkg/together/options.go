package together

import (
	"github.com/kiosk404/together/pkg/options"
	"github.com/kiosk404/together/pkg/utils/cliflag"
)

// Options are the global options every together CLI understands.
type Options struct {
	Plugins *options.PluginsOptions `json:"plugins" mapstructure:"plugins"`
	Config  *options.ConfigOptions  `json:"config"  mapstructure:"config"`
	Log     *options.LogOptions     `json:"log"     mapstructure:"log"`
}

// NewOptions returns Options with defaults.
func NewOptions() *Options {
	return &Options{
		Plugins: options.NewPluginsOptions(),
		Config:  options.NewConfigOptions(),
		Log:     options.NewLogOptions(),
	}
}

// Flags returns the option flags grouped by section.
func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.Config.AddFlags(fss.FlagSet("config"))
	o.Log.AddFlags(fss.FlagSet("log"))
	o.Plugins.AddFlags(fss.FlagSet("plugins"))
	return fss
}

// Validate checks every option section.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.Plugins.Validate()...)
	errs = append(errs, o.Config.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errs
}
