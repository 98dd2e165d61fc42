package state

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/kiosk404/together/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tree returns root -> group -> leaf, with verbose options on root and leaf.
func tree(seen *int) *cobra.Command {
	root := VerboseOption(&cobra.Command{Use: "app"})
	group := &cobra.Command{Use: "group"}
	leaf := VerboseOption(&cobra.Command{
		Use: "leaf",
		Run: func(cmd *cobra.Command, _ []string) { *seen = Verbosity(cmd) },
	})
	group.AddCommand(leaf)
	root.AddCommand(group)
	return root
}

func run(t *testing.T, root *cobra.Command, s *State, args ...string) {
	t.Helper()
	ctx := NewContext(context.Background(), s)
	root.SetArgs(args)
	require.NoError(t, root.ExecuteContext(ctx))
}

func TestVerbosityAccumulates(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "none", args: []string{"group", "leaf"}, want: 0},
		{name: "root only", args: []string{"-v", "group", "leaf"}, want: 1},
		{name: "leaf only", args: []string{"group", "leaf", "-vv"}, want: 2},
		{name: "root and leaf", args: []string{"-v", "group", "leaf", "-vv"}, want: 3},
		{name: "long form", args: []string{"--verbose", "group", "leaf", "--verbose"}, want: 2},
		{name: "explicit count", args: []string{"group", "leaf", "--verbose=4"}, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen int
			root := tree(&seen)
			s := New(nil)
			assert.Equal(t, 2, Bind(root, s))

			run(t, root, s, tt.args...)
			assert.Equal(t, tt.want, seen)
			assert.Equal(t, tt.want, s.GetInt(VerbosityKey, 0))
		})
	}
}

func TestBindResetsBetweenInvocations(t *testing.T) {
	var seen int
	root := tree(&seen)

	first := New(nil)
	Bind(root, first)
	run(t, root, first, "-v", "group", "leaf", "-v")
	assert.Equal(t, 2, seen)

	second := New(nil)
	Bind(root, second)
	run(t, root, second, "group", "leaf", "-v")
	assert.Equal(t, 1, seen)
	assert.Equal(t, 2, first.GetInt(VerbosityKey, 0), "earlier state is left alone")
}

func TestVerbosityWithoutState(t *testing.T) {
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	var seen int
	root := tree(&seen)
	root.SetArgs([]string{"group", "leaf", "-v"})
	require.NoError(t, root.Execute())

	assert.Zero(t, seen)
	assert.Contains(t, logs.String(), "no state object was bound")
}
