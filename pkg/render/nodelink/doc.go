// Package nodelink renders document graphs as node-link diagrams.
//
// # Overview
//
// Each graph node becomes a rounded box listing its rows, and each edge an
// arrow labeled with the field name the child hangs off. Layout is top to
// bottom (rankdir=TB), so nesting depth reads downward.
//
// # Usage
//
// Convert a graph to a DAG, then to DOT, then render to SVG:
//
//	d, err := graph.ToDAG(g)
//	dot := nodelink.ToDOT(d, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: When true, each box starts with the node's path and depth.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
