// Package render turns derived document graphs into visual output.
//
// # Overview
//
// Rendering starts from a [graph.Graph], converts it to a layered DAG with
// [graph.ToDAG] and hands it to a renderer. The [nodelink] subpackage draws
// the classic box-and-arrow diagram through Graphviz:
//
//	d, err := graph.ToDAG(g)
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Formats
//
// [Format] names the outputs the CLI and HTTP API can produce. [ParseFormat]
// accepts the names users type on the command line.
//
// [graph.Graph]: github.com/matzehuels/jsongraph/pkg/graph
// [graph.ToDAG]: github.com/matzehuels/jsongraph/pkg/graph
// [nodelink]: github.com/matzehuels/jsongraph/pkg/render/nodelink
package render
