package command

import (
	"fmt"
)

// Resolve walks path from root and returns the group it names. An empty
// path resolves to root. Intermediate groups are never created.
func Resolve(root MultiCommand, path []string) (MultiCommand, error) {
	if len(path) == 0 {
		return root, nil
	}
	if path[0] != root.Name() {
		return nil, &ResolutionError{Path: path, Segment: path[0], Expected: root.Name()}
	}

	cur := root
	for _, name := range path[1:] {
		next, ok := cur.Child(name)
		if !ok {
			return nil, &ResolutionError{Path: path, Segment: name}
		}
		group, ok := next.(MultiCommand)
		if !ok {
			return nil, &ResolutionError{Path: path, Segment: name, NotGroup: true}
		}
		cur = group
	}
	return cur, nil
}

// Attach resolves reg's path from root and adds reg's command there.
func Attach(root MultiCommand, reg Registration) error {
	if reg.Command == nil {
		return fmt.Errorf("%w: %v", ErrNotACommand, reg.Raw)
	}
	parent, err := Resolve(root, reg.Path)
	if err != nil {
		return err
	}
	if err := parent.AddChild(reg.Command); err != nil {
		return fmt.Errorf("attach %q: %w", reg.Command.Name(), err)
	}
	return nil
}
