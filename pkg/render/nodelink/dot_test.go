package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/jsongraph/pkg/dag"
	"github.com/matzehuels/jsongraph/pkg/graph"
)

func buildDAG(t *testing.T, text string) *dag.DAG {
	t.Helper()
	g, err := graph.Derive(text)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	d, err := graph.ToDAG(g)
	if err != nil {
		t.Fatalf("ToDAG: %v", err)
	}
	return d
}

func TestToDOT(t *testing.T) {
	d := buildDAG(t, `{"user":{"name":"Bob"},"tags":["a"]}`)
	dot := ToDOT(d, Options{})

	for _, want := range []string{
		"digraph G {",
		`"$" [label="user {1 keys}\ntags [1 items]"];`,
		`"$[\"user\"]" [label="name: Bob"];`,
		`"$[\"tags\"][0]" [label="a", fillcolor="#eeeeee"];`,
		`"$" -> "$[\"user\"]" [label="user"];`,
		`"$" -> "$[\"tags\"][0]" [label="tags"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	d := buildDAG(t, `{"a":1}`)
	dot := ToDOT(d, Options{Detailed: true})
	if !strings.Contains(dot, `label="$ (depth 0)\na: 1"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTUnlabeledEdge(t *testing.T) {
	d := dag.New(nil)
	_ = d.AddNode(dag.Node{ID: "a", Row: 0})
	_ = d.AddNode(dag.Node{ID: "b", Row: 1})
	_ = d.AddEdge(dag.Edge{From: "a", To: "b"})

	dot := ToDOT(d, Options{})
	if !strings.Contains(dot, `"a" -> "b";`) {
		t.Errorf("expected plain edge:\n%s", dot)
	}
	if !strings.Contains(dot, `"a" [label="a"];`) {
		t.Errorf("node without rows should fall back to its ID:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 62.00 44.00" width="62" height="44"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg></svg>")); string(got) != "<svg></svg>" {
		t.Errorf("SVG without viewBox should pass through, got %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping graphviz render in short mode")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(buildDAG(t, `{"a":{"b":1}}`), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("output is not SVG: %.200s", svg)
	}
}
