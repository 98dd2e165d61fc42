// Package together assembles one command-line interface out of the
// contributions of independently developed plugins and runs it.
package together

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kiosk404/together/pkg/cli/genericclioptions"
	"github.com/kiosk404/together/pkg/command"
	"github.com/kiosk404/together/pkg/config"
	"github.com/kiosk404/together/pkg/exception"
	"github.com/kiosk404/together/pkg/logger"
	"github.com/kiosk404/together/pkg/plugin"
	"github.com/kiosk404/together/pkg/state"
	"github.com/kiosk404/together/pkg/utils/cliflag"
	"github.com/spf13/pflag"
)

// ErrAlreadyInitialized is returned when plugins are registered after the
// CLI has loaded its plugins.
var ErrAlreadyInitialized = errors.New("cli already initialized")

// CLI is the top-level orchestrator. It loads plugins and configuration on
// Init, builds the command tree once on Build, and runs it on Invoke.
//
// A CLI is not safe for concurrent invocations: each Invoke installs a
// fresh State at the shared root.
type CLI struct {
	opts     *Options
	streams  *genericclioptions.IOStreams
	defaults map[string]interface{}
	inTree   func(*Options) *plugin.InTreeRegistry
	pending  []plugin.Plugin

	manager     *plugin.Manager
	config      *config.Config
	initialized bool
	initErr     error

	built    bool
	buildErr error
	root     command.MultiCommand
	handlers *exception.Chain
	state    *state.State
}

// Option configures a CLI.
type Option func(*CLI)

// WithOptions replaces the default global options.
func WithOptions(o *Options) Option {
	return func(c *CLI) { c.opts = o }
}

// WithPlugins registers plugins, in order, after any in-tree plugins.
func WithPlugins(ps ...plugin.Plugin) Option {
	return func(c *CLI) { c.pending = append(c.pending, ps...) }
}

// WithInTree registers the factories returned by fn first. fn receives the
// final options so it can pass per-plugin configuration.
func WithInTree(fn func(*Options) *plugin.InTreeRegistry) Option {
	return func(c *CLI) { c.inTree = fn }
}

// WithDefaults sets default configuration values.
func WithDefaults(defaults map[string]interface{}) Option {
	return func(c *CLI) { c.defaults = defaults }
}

// WithIOStreams routes command output to streams.
func WithIOStreams(streams genericclioptions.IOStreams) Option {
	return func(c *CLI) { c.streams = &streams }
}

// New returns an uninitialized CLI.
func New(opts ...Option) *CLI {
	c := &CLI{opts: NewOptions()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Register queues p after the plugins given so far. It fails once the CLI
// has been initialized.
func (c *CLI) Register(p plugin.Plugin) error {
	if c.initialized {
		return ErrAlreadyInitialized
	}
	c.pending = append(c.pending, p)
	return nil
}

// Options returns the global options.
func (c *CLI) Options() *Options { return c.opts }

// Config returns the shared configuration, or nil before Init.
func (c *CLI) Config() *config.Config { return c.config }

// Plugins returns the plugin manager, or nil before Init.
func (c *CLI) Plugins() *plugin.Manager { return c.manager }

// State returns the state installed at the root, or nil before Build.
func (c *CLI) State() *state.State { return c.state }

// Init validates options, sets up logging, loads the configuration,
// registers plugins and runs their Configure hooks. It runs once; later
// calls return the first result.
func (c *CLI) Init() error {
	if c.initialized {
		return c.initErr
	}
	c.initialized = true
	c.initErr = c.init()
	return c.initErr
}

func (c *CLI) init() error {
	if errs := c.opts.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid options: %w", errors.Join(errs...))
	}
	if err := logger.SetLevel(c.opts.Log.Level); err != nil {
		return err
	}
	if err := logger.InitLog(c.opts.Log.File); err != nil {
		return err
	}

	cfg, err := config.Load(c.opts.Config, c.defaults)
	if err != nil {
		return err
	}
	c.config = cfg

	c.manager = plugin.NewManager(c.opts.Plugins)
	if c.inTree != nil {
		if err := c.inTree(c.opts).ApplyTo(c.manager); err != nil {
			return err
		}
	}
	for _, p := range c.pending {
		if _, err := c.manager.Register(p); err != nil {
			return err
		}
	}

	n := plugin.Each(c.manager, func(p plugin.Configurer) {
		p.Configure(c.config)
	})
	logger.Debug("[CLI] %d plugins registered, %d configured", c.manager.Len(), n)
	return nil
}

// Build assembles the command tree and handler chain on first call and
// returns the same root on every later call without running hooks again.
// Build errors are returned again by later calls.
func (c *CLI) Build() (command.MultiCommand, error) {
	if c.built {
		return c.root, c.buildErr
	}
	c.built = true
	c.root, c.buildErr = c.build()
	if c.buildErr != nil {
		c.root = nil
	}
	return c.root, c.buildErr
}

func (c *CLI) build() (command.MultiCommand, error) {
	if err := c.Init(); err != nil {
		return nil, err
	}

	b := NewBuilder(c.manager, c.config)
	root, err := b.Tree()
	if err != nil {
		return nil, err
	}
	handlers, err := b.Handlers()
	if err != nil {
		return nil, err
	}
	c.handlers = handlers

	cmd := root.Cobra()
	fss := c.opts.Flags()
	fss.AddTo(cmd.PersistentFlags())
	// From this point and forward we get warnings on flags that contain "_" separators
	cmd.SetGlobalNormalizationFunc(cliflag.WarnWordSepNormalizeFunc)
	cmd.SilenceErrors = true

	c.root = root
	c.ReloadState()
	return root, nil
}

// ReloadState installs a fresh State at the root and returns it.
func (c *CLI) ReloadState() *state.State {
	s := state.New(c.config)
	if c.root != nil {
		if prev := c.root.State(); prev != nil && prev != c.state {
			logger.Warn("[CLI] root %q already carried state %s, replacing it", c.root.Name(), prev.ID)
		}
		c.root.SetState(s)
	}
	c.state = s
	return s
}

// Invoke builds the CLI if needed and runs it with args under a fresh
// State. An error escaping the command is offered to the exception
// handlers: the first match turns it into an *ExitError carrying the
// handler's exit code. Unhandled errors are returned unchanged.
func (c *CLI) Invoke(ctx context.Context, args []string) error {
	root, err := c.Build()
	if err != nil {
		return err
	}

	s := c.ReloadState()
	cmd := root.Cobra()
	if c.streams != nil {
		cmd.SetIn(c.streams.In)
		cmd.SetOut(c.streams.Out)
		cmd.SetErr(c.streams.ErrOut)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	state.Bind(cmd, s)
	logger.WithField("invocation", s.ID).Debugf("[CLI] run %s %v", root.Name(), args)

	err = root.Invoke(state.NewContext(ctx, s), args)
	if err == nil {
		return nil
	}
	return c.handle(err)
}

func (c *CLI) handle(err error) error {
	callback, ok := c.handlers.Resolve(err)
	if !ok {
		return err
	}
	code := callback(err)
	if code < 0 || code > 255 {
		logger.Error("[CLI] exception handler for %q returned exit code %d", err, code)
		return &ExitError{
			Code: FaultExitCode,
			Err:  fmt.Errorf("%w: %d", ErrUnusableExitCode, code),
		}
	}
	return &ExitError{Code: code, Err: err}
}

// Run parses the global options out of args, invokes the CLI and returns
// the process exit code. Unhandled errors are printed to the error stream.
func (c *CLI) Run(ctx context.Context, args []string) int {
	defer logger.FlushLog()

	errOut := genericclioptions.NewStdIOStreams().ErrOut
	if c.streams != nil {
		errOut = c.streams.ErrOut
	}

	if !c.initialized {
		fss := c.opts.Flags()
		if err := fss.ParseKnown(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return 1
		}
	}

	err := c.Invoke(ctx, args)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(errOut, "Error: %v\n", err)
	return 1
}

// Execute runs the CLI with the process arguments and exits.
func (c *CLI) Execute() {
	os.Exit(c.Run(context.Background(), os.Args[1:]))
}
