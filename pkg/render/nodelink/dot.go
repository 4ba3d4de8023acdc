package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/jsongraph/pkg/dag"
	"github.com/matzehuels/jsongraph/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node path and depth above the rows.
	Detailed bool
}

// ToDOT converts a DAG built by graph.ToDAG to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Nodes standing for a single primitive value are drawn with a grey fill to
// set them apart from object nodes.
func ToDOT(g *dag.DAG, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontname=\"monospace\", fontsize=11, color=\"#555555\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(*n, opts.Detailed)
		attrs := fmtAttrs(*n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node, detailed bool) string {
	lines, _ := n.Meta[graph.MetaText].([]string)
	if len(lines) == 0 {
		lines = []string{n.DisplayLabel()}
	}
	if !detailed {
		return strings.Join(lines, "\n")
	}
	header := fmt.Sprintf("%s (depth %d)", n.ID, n.Row)
	return header + "\n" + strings.Join(lines, "\n")
}

func fmtAttrs(n dag.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if isPrimitive(n) {
		attrs = append(attrs, "fillcolor=\"#eeeeee\"")
	}
	return attrs
}

// isPrimitive reports whether n stands for a single primitive value, i.e. a
// node with one row whose label does not start with a key.
func isPrimitive(n dag.Node) bool {
	rows, _ := n.Meta[graph.MetaRows].(int)
	keyless, _ := n.Meta[graph.MetaKeyless].(bool)
	return rows == 1 && keyless
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's fixed pt sizing with a viewBox-based
// root element so the SVG scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
