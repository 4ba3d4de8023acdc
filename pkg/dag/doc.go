// Package dag provides a layered directed acyclic graph used to lay out and
// render derived JSON graphs.
//
// # Overview
//
// Nodes are organized into horizontal rows (layers) and edges connect a node
// to nodes exactly one row below. A derived JSON graph fits this shape
// naturally: a node's row is its nesting depth and every edge goes from a
// container to one of its direct children.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]. Nodes must have unique IDs, and edges can only connect
// existing nodes:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "$", Row: 0})
//	g.AddNode(dag.Node{ID: `$["user"]`, Row: 1})
//	g.AddEdge(dag.Edge{From: "$", To: `$["user"]`, Label: "user"})
//
// Query the structure with [DAG.Children], [DAG.Parents] and
// [DAG.NodesInRow]. [DAG.Validate] checks that edges connect consecutive
// rows and that there are no cycles.
//
// # Ordering
//
// [DAG.Nodes] and [DAG.NodesInRow] return nodes in insertion order, so a
// graph built from a document in document order renders deterministically.
//
// # Metadata
//
// Nodes, edges and the graph itself carry a [Metadata] map. Renderers read
// display hints from it (row count, value preview). Metadata maps are never
// nil after insertion.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package dag
