package tree

import (
	"errors"
	"fmt"

	"github.com/matzehuels/jsongraph/pkg/accessor"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
)

// ErrNotContainer is returned when a path steps into a primitive, or uses a
// key on an array.
var ErrNotContainer = errors.New("path crosses a non-container value")

// maxGrow bounds how far past the end of an array an index may write.
const maxGrow = 1 << 20

// ErrIndexTooLarge is returned when an index would grow an array by more than
// maxGrow null elements.
var ErrIndexTooLarge = errors.New("array index too far past the end")

// SetAtPath assigns value at path inside root and returns the new root.
// The empty path is a no-op and returns root unchanged.
//
// Missing or null intermediates are replaced by a new container: an array when
// the next segment is an index, an object otherwise. An index past the end of
// an array grows it, padding with nulls. An index applied to an object uses
// its decimal form as the key.
//
// On error root may be partially modified; callers discard it.
func SetAtPath(root jsonvalue.Value, path accessor.Path, value jsonvalue.Value) (jsonvalue.Value, error) {
	if len(path) == 0 {
		return root, nil
	}
	return setIn(root, path, 0, value)
}

func setIn(container jsonvalue.Value, path accessor.Path, i int, value jsonvalue.Value) (jsonvalue.Value, error) {
	seg := path[i]
	last := i == len(path)-1

	child := func(cur jsonvalue.Value, present bool) (jsonvalue.Value, error) {
		if last {
			return value, nil
		}
		if !present || cur == nil {
			cur = newContainer(path[i+1])
		}
		return setIn(cur, path, i+1, value)
	}

	switch c := container.(type) {
	case *jsonvalue.Object:
		if c == nil {
			break
		}
		cur, ok := c.Get(seg.Key())
		next, err := child(cur, ok)
		if err != nil {
			return nil, err
		}
		c.Set(seg.Key(), next)
		return c, nil

	case []any:
		if !seg.IsIndex() {
			return nil, fmt.Errorf("%w: key %q on array at %s", ErrNotContainer, seg.Key(), accessor.Encode(path[:i]))
		}
		idx := seg.Index()
		if idx >= len(c) {
			if idx-len(c) > maxGrow {
				return nil, fmt.Errorf("%w: index %d, length %d", ErrIndexTooLarge, idx, len(c))
			}
			grown := make([]any, idx+1)
			copy(grown, c)
			c = grown
			next, err := child(nil, false)
			if err != nil {
				return nil, err
			}
			c[idx] = next
			return c, nil
		}
		next, err := child(c[idx], true)
		if err != nil {
			return nil, err
		}
		c[idx] = next
		return c, nil
	}

	return nil, fmt.Errorf("%w: %s value at %s", ErrNotContainer, jsonvalue.KindOf(container), displayPrefix(path, i))
}

func newContainer(next accessor.Segment) jsonvalue.Value {
	if next.IsIndex() {
		return []any{}
	}
	return jsonvalue.NewObject()
}

func displayPrefix(path accessor.Path, i int) string {
	return accessor.Display(path[:i])
}

// Lookup returns the value at path and whether it exists. The empty path
// returns root.
func Lookup(root jsonvalue.Value, path accessor.Path) (jsonvalue.Value, bool) {
	cur := root
	for _, seg := range path {
		switch c := cur.(type) {
		case *jsonvalue.Object:
			if c == nil {
				return nil, false
			}
			v, ok := c.Get(seg.Key())
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			if !seg.IsIndex() || seg.Index() >= len(c) {
				return nil, false
			}
			cur = c[seg.Index()]
		default:
			return nil, false
		}
	}
	return cur, true
}
