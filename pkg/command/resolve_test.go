package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttach(t *testing.T) {
	t.Run("empty path attaches under root", func(t *testing.T) {
		root := group("app")
		require.NoError(t, Attach(root, Registration{Command: leaf("foo")}))

		child, ok := root.Child("foo")
		require.True(t, ok)
		assert.Equal(t, "foo", child.Name())
		assert.Same(t, root.Cobra(), child.Cobra().Parent())
	})

	t.Run("root-qualified path descends through groups", func(t *testing.T) {
		root := group("app")
		require.NoError(t, Attach(root, Registration{Command: group("foo")}))
		require.NoError(t, Attach(root, Registration{Command: leaf("bar"), Path: []string{"app", "foo"}}))

		foo, ok := root.Child("foo")
		require.True(t, ok)
		bar, ok := foo.(MultiCommand).Child("bar")
		require.True(t, ok)
		assert.Equal(t, "bar", bar.Name())
	})

	t.Run("path of just the root name", func(t *testing.T) {
		root := group("app")
		require.NoError(t, Attach(root, Registration{Command: leaf("foo"), Path: []string{"app"}}))
		assert.Equal(t, []string{"foo"}, root.ChildNames())
	})

	t.Run("wrong root name", func(t *testing.T) {
		root := group("app")
		err := Attach(root, Registration{Command: leaf("foo"), Path: []string{"other"}})

		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "app", resErr.Expected)
		assert.Equal(t, "other", resErr.Segment)
		assert.Contains(t, err.Error(), `expected name for root to be "app"`)
	})

	t.Run("missing intermediate is not created", func(t *testing.T) {
		root := group("app")
		err := Attach(root, Registration{Command: leaf("bar"), Path: []string{"app", "foo"}})

		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "foo", resErr.Segment)
		assert.False(t, resErr.NotGroup)
		_, ok := root.Child("foo")
		assert.False(t, ok)
	})

	t.Run("leaf intermediate", func(t *testing.T) {
		root := group("app")
		require.NoError(t, root.AddChild(leaf("foo")))
		err := Attach(root, Registration{Command: leaf("bar"), Path: []string{"app", "foo"}})

		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.True(t, resErr.NotGroup)
		assert.Contains(t, err.Error(), `"foo" is not a group`)
	})

	t.Run("duplicate child", func(t *testing.T) {
		root := group("app")
		require.NoError(t, Attach(root, Registration{Command: leaf("foo")}))
		err := Attach(root, Registration{Command: leaf("foo")})
		assert.True(t, errors.Is(err, ErrDuplicateChild))
	})

	t.Run("opaque registration", func(t *testing.T) {
		root := group("app")
		regs := Normalize(Opaque("not a command"))
		require.Len(t, regs, 1)
		err := Attach(root, regs[0])
		assert.ErrorIs(t, err, ErrNotACommand)
		assert.Contains(t, err.Error(), "not a command")
	})
}
