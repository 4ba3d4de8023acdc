package graph

import (
	"github.com/matzehuels/jsongraph/pkg/accessor"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
)

// Derive parses text and builds its graph.
func Derive(text string) (*Graph, error) {
	root, err := jsonvalue.Parse(text)
	if err != nil {
		return nil, err
	}
	return FromValue(root), nil
}

// FromValue builds the graph of an already parsed value.
func FromValue(root jsonvalue.Value) *Graph {
	b := &builder{g: &Graph{Nodes: []Node{}, Edges: []Edge{}}}
	b.walk(root, accessor.Path{}, 0, "", "")
	return b.g
}

type builder struct {
	g *Graph
}

// walk adds the nodes for v. parent is the ID of the node v hangs off ("" for
// none) and label the field name on that edge.
func (b *builder) walk(v jsonvalue.Value, path accessor.Path, depth int, parent, label string) {
	switch t := v.(type) {
	case []any:
		for i, el := range t {
			b.walk(el, path.Append(accessor.Index(i)), depth, parent, label)
		}
		return
	case *jsonvalue.Object:
		id := b.addNode(path, depth, objectRows(t), parent, label)
		for _, k := range t.Keys() {
			child, _ := t.Get(k)
			if jsonvalue.IsContainer(child) {
				b.walk(child, path.Append(accessor.Key(k)), depth+1, id, k)
			}
		}
		return
	}
	b.addNode(path, depth, []Row{{Value: v, Type: rowType(v)}}, parent, label)
}

func (b *builder) addNode(path accessor.Path, depth int, rows []Row, parent, label string) string {
	id := accessor.Display(path)
	b.g.Nodes = append(b.g.Nodes, Node{
		ID:    id,
		Path:  path,
		Depth: depth,
		Text:  rows,
	})
	if parent != "" {
		b.g.Edges = append(b.g.Edges, Edge{From: parent, To: id, Label: label})
	}
	return id
}

func objectRows(o *jsonvalue.Object) []Row {
	rows := make([]Row, 0, o.Len())
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		row := Row{Key: k, Type: rowType(v)}
		switch c := v.(type) {
		case *jsonvalue.Object:
			row.ChildrenCount = c.Len()
		case []any:
			row.ChildrenCount = len(c)
		default:
			row.Value = v
		}
		rows = append(rows, row)
	}
	return rows
}
