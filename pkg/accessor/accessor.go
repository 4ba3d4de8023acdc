package accessor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
)

// Segment is one step of a [Path]: an object key or an array index.
// Exactly one of the two is meaningful, as reported by IsIndex.
type Segment struct {
	key   string
	index int
	isIdx bool
}

// Key returns a segment addressing an object member.
func Key(k string) Segment { return Segment{key: k} }

// Index returns a segment addressing an array element.
func Index(i int) Segment { return Segment{index: i, isIdx: true} }

// IsIndex reports whether the segment is an array index.
func (s Segment) IsIndex() bool { return s.isIdx }

// Key returns the object key. For index segments it returns the decimal form
// of the index, which is how an index reads when applied to an object.
func (s Segment) Key() string {
	if s.isIdx {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Index returns the array index, or -1 for key segments.
func (s Segment) Index() int {
	if !s.isIdx {
		return -1
	}
	return s.index
}

// String returns the key or the decimal index.
func (s Segment) String() string { return s.Key() }

// Path addresses a location inside a JSON value. The empty path is the root.
type Path []Segment

// String returns the accessor form of p.
func (p Path) String() string { return Encode(p) }

// IsRoot reports whether p addresses the document root.
func (p Path) IsRoot() bool { return len(p) == 0 }

// Append returns a new path with segs added. p is not modified.
func (p Path) Append(segs ...Segment) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// Parent returns the path without its last segment. The root's parent is the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	return append(Path{}, p[:len(p)-1]...)
}

// Last returns the final segment and false if p is the root.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

// Equal reports whether p and q address the same location.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Encode renders p as an accessor string.
// Indices render as "[n]"; a key renders bare in first position and as ".k"
// afterwards. The root encodes as "".
func Encode(p Path) string {
	var b strings.Builder
	for i, seg := range p {
		switch {
		case seg.isIdx:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.index))
			b.WriteByte(']')
		case i == 0:
			b.WriteString(seg.key)
		default:
			b.WriteByte('.')
			b.WriteString(seg.key)
		}
	}
	return b.String()
}

var digitsRe = regexp.MustCompile(`^\d+$`)

// Decode parses an accessor string into a path. It never fails; malformed
// input yields whatever segments survive tokenization, possibly none.
func Decode(acc string) Path {
	acc = strings.ReplaceAll(acc, "]", "")
	tokens := strings.FieldsFunc(acc, func(r rune) bool { return r == '.' || r == '[' })

	path := make(Path, 0, len(tokens))
	for _, tok := range tokens {
		if digitsRe.MatchString(tok) {
			if n, err := strconv.Atoi(tok); err == nil {
				path = append(path, Index(n))
				continue
			}
		}
		path = append(path, Key(tok))
	}
	return path
}

// Display renders p in the bracketed form used by editors, e.g. $["a"][0].
// Keys are JSON string literals, so distinct paths render distinct strings.
func Display(p Path) string {
	if len(p) == 0 {
		return "$"
	}
	parts := make([]string, len(p))
	for i, seg := range p {
		if seg.isIdx {
			parts[i] = strconv.Itoa(seg.index)
		} else {
			parts[i] = jsonvalue.Quote(seg.key)
		}
	}
	return "$[" + strings.Join(parts, "][") + "]"
}
