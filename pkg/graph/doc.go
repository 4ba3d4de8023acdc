// Package graph derives a node/edge graph from a JSON document.
//
// The graph is what an editor shows: each object becomes a node whose rows
// are its fields, nested containers become child nodes, and edges connect a
// node to the nodes of its container fields.
//
// # Derivation
//
// Given
//
//	{"user": {"name": "Bob", "tags": ["a", "b"]}, "ok": true}
//
// [Derive] produces four nodes:
//
//	$               rows: user {1 keys}, ok: true
//	$["user"]       rows: name: Bob, tags [2 items]
//	$["user"]["tags"][0]   row: a
//	$["user"]["tags"][1]   row: b
//
// and three edges ($ -> $["user"], $["user"] -> each tag). Array elements are
// nodes of their own; an array itself has no node. Primitive array elements
// and a primitive root become nodes with a single keyless row.
//
// Node IDs are the display form of the node's path ([accessor.Display]), so
// they stay stable when an edit changes values but not structure. Each node
// keeps its [accessor.Path], which editors encode back into an accessor.
//
// # Deriver and View
//
// [Deriver] is the collaborator contract used by the rest of the module.
// [NewDeriver] returns an implementation that caches graphs by document hash.
//
// [View] is a document.Observer that re-derives on every committed change and
// tracks the selected node for editors.
//
// # Serialization
//
// Graphs serialize to a node/edge JSON format:
//
//	{
//	  "nodes": [{"id": "$", "path": [], "depth": 0, "text": [...]}],
//	  "edges": [{"from": "$", "to": "$[\"user\"]", "label": "user"}]
//	}
//
// [ToDAG] converts a graph into a layered [dag.DAG] (rows = depth) for rendering.
package graph
