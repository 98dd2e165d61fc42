package state

import (
	"strconv"

	"github.com/kiosk404/together/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// VerbosityKey is the State key verbosity accumulates under.
const VerbosityKey = "verbosity"

// verbosityValue is a counting flag value that adds every occurrence to the
// bound State instead of keeping a private count, so the same option
// declared on several commands sums into one number.
type verbosityValue struct {
	state *State
	count int
}

var _ pflag.Value = (*verbosityValue)(nil)

func (v *verbosityValue) String() string { return strconv.Itoa(v.count) }

func (v *verbosityValue) Type() string { return "count" }

func (v *verbosityValue) Set(s string) error {
	n := 1
	if s != "+1" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		n = parsed
	}
	v.count += n

	if v.state == nil {
		logger.Warn("verbose option was used, but no state object was bound. " +
			"the root state was probably replaced incorrectly or the command ran " +
			"outside of a together CLI. verbose flag will be ignored.")
		return nil
	}
	v.state.Set(VerbosityKey, v.state.GetInt(VerbosityKey, 0)+n)
	return nil
}

// VerboseOption declares a counting -v/--verbose option on cmd. It is a
// persistent flag, so it is also accepted after any subcommand of cmd. When
// a descendant declares its own, occurrences go to the descendant's flag;
// either way they land in the same State.
func VerboseOption(cmd *cobra.Command) *cobra.Command {
	f := cmd.PersistentFlags().VarPF(&verbosityValue{}, "verbose", "v", "Control level of output")
	f.NoOptDefVal = "+1"
	return cmd
}

// Verbosity returns the accumulated verbosity of the invocation cmd runs in.
func Verbosity(cmd *cobra.Command) int {
	s := FromCommand(cmd)
	if s == nil {
		return 0
	}
	return s.GetInt(VerbosityKey, 0)
}

// Bind attaches s to every verbose option declared in the tree under root
// and resets their counts. It returns how many options were bound.
func Bind(root *cobra.Command, s *State) int {
	seen := make(map[*verbosityValue]bool)
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		bindFlags := func(f *pflag.Flag) {
			if v, ok := f.Value.(*verbosityValue); ok && !seen[v] {
				seen[v] = true
				v.state = s
				v.count = 0
			}
		}
		c.PersistentFlags().VisitAll(bindFlags)
		for _, child := range c.Commands() {
			walk(child)
		}
	}
	walk(root)
	return len(seen)
}
