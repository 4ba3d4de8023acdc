package graph

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsongraph/pkg/document"
)

// View holds the graph of the latest committed document and the node an
// editor has selected. It implements document.Observer.
type View struct {
	deriver Deriver
	logger  *log.Logger

	mu       sync.RWMutex
	graph    *Graph
	revision uint64
	selected string
}

// NewView creates an empty view. If d is nil an uncached deriver is used.
func NewView(d Deriver, logger *log.Logger) *View {
	if d == nil {
		d = NewDeriver(nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &View{
		deriver: d,
		logger:  logger,
		graph:   &Graph{Nodes: []Node{}, Edges: []Edge{}},
	}
}

// DocumentChanged re-derives the graph from the committed text. Changes
// flagged SkipDerivedUpdate are ignored and a cleared document empties the
// view. The selection survives if its node still exists.
func (v *View) DocumentChanged(ctx context.Context, c *document.Change) error {
	if c.SkipDerivedUpdate {
		return nil
	}

	g := &Graph{Nodes: []Node{}, Edges: []Edge{}}
	if c.Kind != document.KindClear {
		derived, err := v.deriver.Derive(ctx, c.Text)
		if err != nil {
			return err
		}
		g = derived
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.graph = g
	v.revision = c.Revision
	if _, ok := g.Node(v.selected); !ok {
		v.selected = ""
	}
	v.logger.Debug("graph view updated", "revision", c.Revision, "nodes", g.NodeCount())
	return nil
}

// Refresh derives the graph from text directly, outside any store change.
func (v *View) Refresh(ctx context.Context, text string) error {
	return v.DocumentChanged(ctx, &document.Change{Kind: document.KindReplace, Text: text, Revision: v.Revision()})
}

// Graph returns the current graph. It must not be modified.
func (v *View) Graph() *Graph {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.graph
}

// Revision returns the store revision the graph was derived from.
func (v *View) Revision() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.revision
}

// Nodes returns the current nodes.
func (v *View) Nodes() []Node { return v.Graph().Nodes }

// Edges returns the current edges.
func (v *View) Edges() []Edge { return v.Graph().Edges }

// Node returns a copy of the node with the given ID.
func (v *View) Node(id string) (Node, bool) {
	n, ok := v.Graph().Node(id)
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Select marks a node as selected. Unknown IDs clear the selection and
// return false.
func (v *View) Select(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.graph.Node(id); !ok {
		v.selected = ""
		return false
	}
	v.selected = id
	return true
}

// Selected returns the selected node, if any, as of the latest graph.
func (v *View) Selected() (Node, bool) {
	v.mu.RLock()
	id := v.selected
	v.mu.RUnlock()
	if id == "" {
		return Node{}, false
	}
	return v.Node(id)
}

var _ document.Observer = (*View)(nil)
