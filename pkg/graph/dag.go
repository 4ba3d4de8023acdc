package graph

import (
	"fmt"

	"github.com/matzehuels/jsongraph/pkg/dag"
)

// Metadata keys set by ToDAG.
const (
	MetaAccessor = "accessor"
	MetaRows     = "rows"
	MetaText     = "text"
	MetaKeyless  = "keyless"
)

// ToDAG converts g into a layered DAG with one row per depth. Node labels are
// the first row of each node, or the node ID for empty objects.
func ToDAG(g *Graph) (*dag.DAG, error) {
	d := dag.New(dag.Metadata{"nodes": g.NodeCount(), "edges": g.EdgeCount()})

	for _, n := range g.Nodes {
		lines := make([]string, len(n.Text))
		for i, r := range n.Text {
			lines[i] = r.String()
		}
		label := n.ID
		if len(lines) > 0 {
			label = lines[0]
		}
		err := d.AddNode(dag.Node{
			ID:    n.ID,
			Label: label,
			Row:   n.Depth,
			Meta: dag.Metadata{
				MetaAccessor: n.Accessor(),
				MetaRows:     len(n.Text),
				MetaText:     lines,
				MetaKeyless:  len(n.Text) == 1 && n.Text[0].Keyless(),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}

	for _, e := range g.Edges {
		if err := d.AddEdge(dag.Edge{From: e.From, To: e.To, Label: e.Label}); err != nil {
			return nil, fmt.Errorf("edge %s -> %s: %w", e.From, e.To, err)
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
