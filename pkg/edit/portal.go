package edit

import (
	"strings"

	"github.com/matzehuels/jsongraph/pkg/graph"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
)

// Target is what a click on a rendered node carries.
type Target struct {
	// Path is the node's encoded accessor.
	Path string
	// RawValue is the node's value as JSON text, when the node exposes one.
	RawValue *string
	// Text is the node's visible text.
	Text string
}

// TargetFor builds the click target of a graph node.
func TargetFor(n graph.Node) Target {
	t := Target{Path: n.Accessor()}
	if raw, err := jsonvalue.MarshalCompact(NodeValue(n.Text)); err == nil {
		s := string(raw)
		t.RawValue = &s
	}
	lines := make([]string, len(n.Text))
	for i, r := range n.Text {
		lines[i] = r.String()
	}
	t.Text = strings.Join(lines, "\n")
	return t
}

// Portal opens a ScalarEditor from node clicks and open requests.
type Portal struct {
	editor *ScalarEditor
}

// NewPortal creates a portal driving editor.
func NewPortal(editor *ScalarEditor) *Portal {
	return &Portal{editor: editor}
}

// Editor returns the editor the portal opens.
func (p *Portal) Editor() *ScalarEditor { return p.editor }

// Click opens the editor for a clicked node. The current value comes from
// RawValue when present (kept as a string if it is not JSON), else from the
// trimmed text. Targets without a path are ignored.
func (p *Portal) Click(t Target) bool {
	if t.Path == "" {
		return false
	}

	var value jsonvalue.Value
	if t.RawValue != nil {
		v, err := jsonvalue.Parse(*t.RawValue)
		if err != nil {
			v = *t.RawValue
		}
		value = v
	} else {
		value = coerceLiteral(strings.TrimSpace(t.Text))
	}

	p.editor.Open(t.Path, value)
	return true
}

// OpenNode opens the editor for path with an explicit current value. An
// empty path is ignored.
func (p *Portal) OpenNode(path string, value jsonvalue.Value) bool {
	if path == "" {
		return false
	}
	p.editor.Open(path, value)
	return true
}
