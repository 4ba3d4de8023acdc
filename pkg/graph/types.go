package graph

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/jsongraph/pkg/accessor"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
)

// RowType is the JSON type of a row's value.
type RowType string

const (
	TypeString  RowType = "string"
	TypeNumber  RowType = "number"
	TypeBoolean RowType = "boolean"
	TypeNull    RowType = "null"
	TypeObject  RowType = "object"
	TypeArray   RowType = "array"
)

// IsContainer reports whether the row stands for an object or array child.
func (t RowType) IsContainer() bool { return t == TypeObject || t == TypeArray }

// Graph is the derived view of a document.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one box in the graph.
type Node struct {
	ID    string        `json:"id"`
	Path  accessor.Path `json:"path"`
	Depth int           `json:"depth"`
	Text  []Row         `json:"text"`
}

// Accessor returns the encoded accessor of the node's path.
func (n *Node) Accessor() string { return accessor.Encode(n.Path) }

// DisplayPath returns the bracketed display form, e.g. $["user"][0].
func (n *Node) DisplayPath() string { return accessor.Display(n.Path) }

// Row is one line inside a node. Container rows carry no Value, only the
// number of children. A keyless row is a node's only row when the node stands
// for a primitive.
type Row struct {
	Key           string          `json:"key,omitempty"`
	Value         jsonvalue.Value `json:"value"`
	Type          RowType         `json:"type"`
	ChildrenCount int             `json:"childrenCount,omitempty"`
}

// Keyless reports whether the row has no key.
func (r Row) Keyless() bool { return r.Key == "" }

// String renders the row the way a node box shows it: "name: Bob",
// "tags [2 items]", "user {1 keys}", or just the value for a keyless row.
func (r Row) String() string {
	var value string
	switch r.Type {
	case TypeObject:
		value = fmt.Sprintf("{%d keys}", r.ChildrenCount)
	case TypeArray:
		value = fmt.Sprintf("[%d items]", r.ChildrenCount)
	default:
		value = FormatValue(r.Value)
	}
	switch {
	case r.Keyless():
		return value
	case r.Type.IsContainer():
		return r.Key + " " + value
	}
	return r.Key + ": " + value
}

// FormatValue renders a primitive without JSON quoting. Containers are
// rendered as compact JSON.
func FormatValue(v jsonvalue.Value) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	}
	if jsonvalue.KindOf(v) == jsonvalue.KindNumber {
		if f, ok := jsonvalue.Float(v); ok {
			return jsonvalue.FormatNumber(f)
		}
	}
	b, err := jsonvalue.MarshalCompact(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Edge links a node to one of its children. Label is the field name the child
// hangs off, empty for root array elements.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// NodeAt returns the node whose path equals p.
func (g *Graph) NodeAt(p accessor.Path) (*Node, bool) {
	return g.Node(accessor.Display(p))
}

// Children returns the IDs of the direct children of id, in edge order.
func (g *Graph) Children(id string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.From == id {
			out = append(out, e.To)
		}
	}
	return out
}

func rowType(v jsonvalue.Value) RowType {
	switch jsonvalue.KindOf(v) {
	case jsonvalue.KindBool:
		return TypeBoolean
	case jsonvalue.KindNumber:
		return TypeNumber
	case jsonvalue.KindString:
		return TypeString
	case jsonvalue.KindArray:
		return TypeArray
	case jsonvalue.KindObject:
		return TypeObject
	}
	return TypeNull
}
