package sample

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/kiosk404/together/pkg/command"
	"github.com/kiosk404/together/pkg/config"
	"github.com/kiosk404/together/pkg/exception"
	"github.com/kiosk404/together/pkg/plugin"
	"github.com/spf13/cobra"
)

const (
	// FailuresName is the ID of the plugin mapping errors to exit codes.
	FailuresName = "sample-failures"

	// ExitBadValue is returned for a *ValueError.
	ExitBadValue = 3
	// ExitQuota is returned for ErrQuotaExceeded.
	ExitQuota = 4
)

// ErrQuotaExceeded is returned by "sample count" past the configured limit.
var ErrQuotaExceeded = errors.New("quota exceeded")

// ValueError reports a bad user-supplied value.
type ValueError struct {
	Field string
	Value string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func FailuresDefinition() plugin.Definition {
	return plugin.Definition{
		ID:          FailuresName,
		Name:        "Sample Failures",
		Description: "Exit codes for sample errors and the count command",
	}
}

// NewFailures returns the failures plugin writing handler messages to errOut.
func NewFailures(errOut io.Writer) plugin.Plugin {
	return &failuresPlugin{errOut: errOut}
}

type failuresPlugin struct {
	errOut io.Writer
}

var (
	_ plugin.Describer                = (*failuresPlugin)(nil)
	_ plugin.SubcommandProvider       = (*failuresPlugin)(nil)
	_ plugin.ExceptionHandlerProvider = (*failuresPlugin)(nil)
)

func (p *failuresPlugin) Definition() plugin.Definition { return FailuresDefinition() }

func (p *failuresPlugin) Name() string { return FailuresName }

func (p *failuresPlugin) Subcommands(cfg *config.Config) command.Contribution {
	return command.Cmd(command.NewLeaf(&cobra.Command{
		Use:   "count N",
		Short: "Print N, failing for non-numbers or values above count.limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return &ValueError{Field: "count", Value: args[0]}
			}
			if limit := cfg.GetInt("count.limit"); limit > 0 && n > limit {
				return fmt.Errorf("count %d over limit %d: %w", n, limit, ErrQuotaExceeded)
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}))
}

func (p *failuresPlugin) ExceptionHandlers(*config.Config) exception.Contribution {
	red := color.New(color.FgRed)
	return exception.Handlers(
		exception.Handle(exception.OfType[*ValueError](), func(err error) int {
			red.Fprintf(p.errOut, "Bad value: %v\n", err)
			return ExitBadValue
		}),
		exception.Handle(exception.Is(ErrQuotaExceeded), func(err error) int {
			red.Fprintf(p.errOut, "Quota: %v\n", err)
			return ExitQuota
		}, 10),
	)
}
