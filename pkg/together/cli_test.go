package together

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/kiosk404/together/pkg/command"
	"github.com/kiosk404/together/pkg/config"
	"github.com/kiosk404/together/pkg/exception"
	"github.com/kiosk404/together/pkg/logger"
	"github.com/kiosk404/together/pkg/state"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errHandled   = errors.New("handled")
	errUnhandled = errors.New("unhandled")
	errBadCode   = errors.New("bad code")
)

func failingCLI(handlers ...*fakePlugin) (*CLI, *bytes.Buffer, *bytes.Buffer) {
	plugins := []*fakePlugin{
		rootPlugin("root", "app"),
		subsPlugin("fail", func() command.Contribution {
			return command.List(
				command.Cmd(failing("handled", fmt.Errorf("wrapped: %w", errHandled))),
				command.Cmd(failing("unhandled", errUnhandled)),
				command.Cmd(failing("bad-code", errBadCode)),
			)
		}),
	}
	return newTestCLI(append(plugins, handlers...)...)
}

func TestInvokeExceptionHandling(t *testing.T) {
	handlers := &fakePlugin{
		name: "handlers",
		handlers: exception.Handlers(
			exception.Handle(exception.Is(errHandled), func(error) int { return 7 }),
			exception.Handle(exception.Is(errBadCode), func(error) int { return 300 }),
		),
	}

	t.Run("matching handler sets the exit code", func(t *testing.T) {
		c, _, _ := failingCLI(handlers)
		err := c.Invoke(context.Background(), []string{"handled"})

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 7, exitErr.Code)
		assert.ErrorIs(t, err, errHandled)
	})

	t.Run("unhandled error is returned unchanged", func(t *testing.T) {
		c, _, _ := failingCLI(handlers)
		err := c.Invoke(context.Background(), []string{"unhandled"})

		assert.Same(t, errUnhandled, err)
	})

	t.Run("unusable exit code", func(t *testing.T) {
		c, _, _ := failingCLI(handlers)
		err := c.Invoke(context.Background(), []string{"bad-code"})

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, FaultExitCode, exitErr.Code)
		assert.ErrorIs(t, err, ErrUnusableExitCode)
	})

	t.Run("priority across plugins", func(t *testing.T) {
		low := &fakePlugin{
			name:     "low",
			handlers: exception.Handle(exception.Any(), func(error) int { return 1 }),
		}
		high := &fakePlugin{
			name:     "high",
			handlers: exception.Handle(exception.Is(errHandled), func(error) int { return 9 }, 5),
		}
		c, _, _ := failingCLI(low, high)

		var exitErr *ExitError
		require.ErrorAs(t, c.Invoke(context.Background(), []string{"handled"}), &exitErr)
		assert.Equal(t, 9, exitErr.Code)
		require.ErrorAs(t, c.Invoke(context.Background(), []string{"unhandled"}), &exitErr)
		assert.Equal(t, 1, exitErr.Code)
	})

	t.Run("equal priority keeps registration order", func(t *testing.T) {
		first := &fakePlugin{
			name:     "first",
			handlers: exception.Handle(exception.Any(), func(error) int { return 11 }),
		}
		second := &fakePlugin{
			name:     "second",
			handlers: exception.Handle(exception.Any(), func(error) int { return 12 }),
		}
		c, _, _ := failingCLI(first, second)

		var exitErr *ExitError
		require.ErrorAs(t, c.Invoke(context.Background(), []string{"unhandled"}), &exitErr)
		assert.Equal(t, 11, exitErr.Code)
	})

	t.Run("malformed handlers fail the build", func(t *testing.T) {
		bad := &fakePlugin{name: "bad", handlers: exception.Handle(exception.Any(), nil)}
		c, _, _ := failingCLI(bad)
		_, err := c.Build()

		var cfgErr *exception.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})
}

func TestRun(t *testing.T) {
	handlers := &fakePlugin{
		name:     "handlers",
		handlers: exception.Handle(exception.Is(errHandled), func(error) int { return 7 }),
	}

	c, out, errOut := failingCLI(handlers)
	assert.Equal(t, 0, c.Run(context.Background(), nil))
	assert.Equal(t, "app\n", out.String())

	assert.Equal(t, 7, c.Run(context.Background(), []string{"handled"}))
	assert.Empty(t, errOut.String())

	assert.Equal(t, 1, c.Run(context.Background(), []string{"unhandled"}))
	assert.Contains(t, errOut.String(), "Error: unhandled")
}

func TestWordSeparatedFlagsWarn(t *testing.T) {
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	var dryRun bool
	c, out, errOut := newTestCLI(&fakePlugin{
		name: "root",
		root: func(*config.Config) command.Command {
			root := group("app")
			root.Cobra().Flags().BoolVar(&dryRun, "dry-run", false, "")
			return root
		},
	})
	require.Equal(t, 0, c.Run(context.Background(), []string{"--dry_run"}), errOut.String())
	assert.Equal(t, "app\n", out.String())
	assert.True(t, dryRun)
	assert.Contains(t, logs.String(), "dry_run is DEPRECATED")
}

func TestRunParsesGlobalOptions(t *testing.T) {
	c, _, errOut := newTestCLI(rootPlugin("root", "app"), &fakePlugin{name: "extra"})
	code := c.Run(context.Background(), []string{"--plugins.deny", "extra"})

	assert.Equal(t, 0, code, errOut.String())
	assert.Equal(t, []string{"root"}, c.Plugins().Names())
}

func TestInvokeVerbosity(t *testing.T) {
	c, out, _ := newTestCLI(
		&fakePlugin{
			name: "root",
			root: func(*config.Config) command.Command {
				root := group("app")
				state.VerboseOption(root.Cobra())
				return root
			},
		},
		subsPlugin("sub", func() command.Contribution { return command.Cmd(verboseLeaf("sub")) }),
	)

	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"-v", "sub", "-vv"}, want: "verbosity=3\n"},
		{args: []string{"sub"}, want: "verbosity=0\n"},
		{args: []string{"--verbose", "sub"}, want: "verbosity=1\n"},
	}
	for _, tt := range tests {
		out.Reset()
		require.NoError(t, c.Invoke(context.Background(), tt.args))
		assert.Equal(t, tt.want, out.String(), "args %v", tt.args)
	}

	root, err := c.Build()
	require.NoError(t, err)
	assert.Same(t, c.State(), root.State())
}

func TestReloadState(t *testing.T) {
	c, _, _ := newTestCLI(rootPlugin("root", "app"))
	root, err := c.Build()
	require.NoError(t, err)

	first := c.State()
	require.NotNil(t, first)
	assert.Same(t, first, root.State())

	second := c.ReloadState()
	assert.NotSame(t, first, second)
	assert.Same(t, second, root.State())
	assert.Same(t, c.Config(), second.Config())

	t.Run("foreign state is replaced with a warning", func(t *testing.T) {
		var logs bytes.Buffer
		logger.SetOutput(&logs)
		t.Cleanup(func() { logger.SetOutput(os.Stderr) })

		foreign := state.New(nil)
		root.SetState(foreign)
		fresh := c.ReloadState()

		assert.Same(t, fresh, root.State())
		assert.Contains(t, logs.String(), "already carried state "+foreign.ID)
	})
}

func TestInvokeStateIsFresh(t *testing.T) {
	var seen []*state.State
	c, _, _ := newTestCLI(
		rootPlugin("root", "app"),
		subsPlugin("record", func() command.Contribution {
			return command.Cmd(command.NewLeaf(&cobra.Command{
				Use: "record",
				Run: func(cmd *cobra.Command, _ []string) {
					seen = append(seen, state.FromCommand(cmd))
				},
			}))
		}),
	)
	for i := 0; i < 2; i++ {
		require.NoError(t, c.Invoke(context.Background(), []string{"record"}))
	}
	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
	assert.Same(t, c.State(), seen[1])
}

func TestConfigureHook(t *testing.T) {
	var seen string
	c, _, _ := newTestCLI(
		rootPlugin("root", "app"),
		&fakePlugin{
			name:      "configurer",
			configure: func(cfg *config.Config) { cfg.Set("greeting", "hey") },
		},
		&fakePlugin{
			name: "reader",
			subs: func(cfg *config.Config) command.Contribution {
				seen = cfg.GetString("greeting")
				return nil
			},
		},
	)
	_, err := c.Build()
	require.NoError(t, err)
	assert.Equal(t, "hey", seen)
	assert.Equal(t, "hey", c.State().Config().GetString("greeting"))
}

func TestRegister(t *testing.T) {
	c, _, _ := newTestCLI(rootPlugin("root", "app"))
	require.NoError(t, c.Register(&fakePlugin{name: "late"}))
	require.NoError(t, c.Init())
	assert.Equal(t, []string{"root", "late"}, c.Plugins().Names())

	assert.ErrorIs(t, c.Register(&fakePlugin{name: "too-late"}), ErrAlreadyInitialized)

	t.Run("duplicate plugin fails init", func(t *testing.T) {
		c, _, _ := newTestCLI(rootPlugin("root", "app"), rootPlugin("root", "other"))
		_, err := c.Build()
		assert.ErrorContains(t, err, "already registered")
	})

	t.Run("invalid options fail init", func(t *testing.T) {
		opts := NewOptions()
		opts.Log.Level = "loud"
		c := New(WithOptions(opts), WithPlugins(rootPlugin("root", "app")))
		_, err := c.Build()
		assert.ErrorContains(t, err, "invalid options")
	})
}
