package edit

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsongraph/pkg/accessor"
	"github.com/matzehuels/jsongraph/pkg/document"
	"github.com/matzehuels/jsongraph/pkg/errors"
	"github.com/matzehuels/jsongraph/pkg/graph"
)

// NodeSource looks nodes up by ID. *graph.View implements it.
type NodeSource interface {
	Node(id string) (graph.Node, bool)
}

var _ NodeSource = (*graph.View)(nil)

// SubtreeOption configures a SubtreeEditor.
type SubtreeOption func(*SubtreeEditor)

// WithReplace makes Save overwrite the node's value instead of merging into it.
func WithReplace() SubtreeOption {
	return func(e *SubtreeEditor) { e.replace = true }
}

// WithSubtreeLogger sets the logger.
func WithSubtreeLogger(l *log.Logger) SubtreeOption {
	return func(e *SubtreeEditor) {
		if l != nil {
			e.logger = l
		}
	}
}

// SubtreeEditor edits one graph node as text. It shows the node as of the
// latest graph and is not safe for concurrent use.
type SubtreeEditor struct {
	store   Mutator
	nodes   NodeSource
	logger  *log.Logger
	replace bool

	node    graph.Node
	exists  bool
	editing bool
	text    string
}

// NewSubtreeEditor opens the node with the given ID.
//
// Errors:
//   - NODE_NOT_FOUND: no node has that ID
func NewSubtreeEditor(store Mutator, nodes NodeSource, id string, opts ...SubtreeOption) (*SubtreeEditor, error) {
	n, ok := nodes.Node(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "node %s not found", id)
	}
	e := &SubtreeEditor{
		store:  store,
		nodes:  nodes,
		logger: log.Default(),
		node:   n,
		exists: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.text = e.Content()
	return e, nil
}

// Node returns the node as last displayed.
func (e *SubtreeEditor) Node() graph.Node { return e.node }

// Exists reports whether the node was still in the graph at the last refresh.
func (e *SubtreeEditor) Exists() bool { return e.exists }

// Content is the node's current text.
func (e *SubtreeEditor) Content() string { return NodeText(e.node.Text) }

// DisplayPath is the node path in $["key"][0] form.
func (e *SubtreeEditor) DisplayPath() string { return accessor.Display(e.node.Path) }

// Accessor is the encoded accessor saves write to.
func (e *SubtreeEditor) Accessor() string { return accessor.Encode(e.node.Path) }

// Editing reports whether the editor is in edit mode.
func (e *SubtreeEditor) Editing() bool { return e.editing }

// Edit enters edit mode with the node's current text.
func (e *SubtreeEditor) Edit() {
	e.editing = true
	e.text = e.Content()
}

// Text returns the text being edited.
func (e *SubtreeEditor) Text() string { return e.text }

// SetText replaces the text being edited.
func (e *SubtreeEditor) SetText(s string) { e.text = s }

// Cancel leaves edit mode and discards the text.
func (e *SubtreeEditor) Cancel() {
	e.editing = false
	e.text = e.Content()
}

// Save coerces the text in raw mode and writes it at the node's accessor.
// A parse error keeps the editor in edit mode. The root node has an empty
// accessor and cannot be saved.
//
// Errors:
//   - INVALID_INPUT: the text starts with '{' or '[' but is not JSON
//   - UNRESOLVABLE_ACCESSOR: the node is the document root
func (e *SubtreeEditor) Save(ctx context.Context) (*document.Change, error) {
	value, err := Coerce(e.text, ModeRaw)
	if err != nil {
		return nil, err
	}

	acc := e.Accessor()
	if acc == "" {
		e.editing = false
		return nil, errors.New(errors.ErrCodeUnresolvableAccessor, "node %s has no accessor", e.node.ID)
	}

	save := e.store.Mutate
	if e.replace {
		save = e.store.Set
	}
	change, err := save(ctx, acc, value)
	if change != nil {
		e.editing = false
		e.Refresh()
	}
	if err != nil {
		e.logger.Debug("subtree save failed", "accessor", acc, "error", err)
	}
	return change, err
}

// Refresh reloads the node from the source. If the node no longer exists
// the last displayed rows are kept and Exists reports false.
func (e *SubtreeEditor) Refresh() {
	n, ok := e.nodes.Node(e.node.ID)
	e.exists = ok
	if ok {
		e.node = n
	}
	if !e.editing {
		e.text = e.Content()
	}
}
