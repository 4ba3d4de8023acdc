package accessor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// MarshalJSON writes p as an array of keys and indices, e.g. ["user",0].
func (p Path) MarshalJSON() ([]byte, error) {
	parts := make([]any, len(p))
	for i, seg := range p {
		if seg.isIdx {
			parts[i] = seg.index
		} else {
			parts[i] = seg.key
		}
	}
	return json.Marshal(parts)
}

// UnmarshalJSON reads the array form written by MarshalJSON. Strings become
// keys and non-negative integers become indices.
func (p *Path) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var parts []any
	if err := dec.Decode(&parts); err != nil {
		return err
	}

	out := make(Path, 0, len(parts))
	for _, part := range parts {
		switch v := part.(type) {
		case string:
			out = append(out, Key(v))
		case json.Number:
			n, err := v.Int64()
			if err != nil || n < 0 || n > math.MaxInt32 {
				return fmt.Errorf("invalid path index %s", v)
			}
			out = append(out, Index(int(n)))
		default:
			return fmt.Errorf("invalid path segment %v", part)
		}
	}
	*p = out
	return nil
}
