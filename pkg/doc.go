// Package pkg holds the jsongraph libraries.
//
// # Overview
//
// jsongraph edits JSON documents addressed by path and keeps a node/edge
// graph of the document in step with every edit. The packages form a
// pipeline:
//
//	text -> [document] (parse, resolve, write, commit) -> observers
//	                                 |                       |
//	                           [graph] View            [contents] sink
//	                                 |
//	                  [render/nodelink] (DOT, SVG)
//
// # Core
//
//   - [accessor]: encode and decode accessors such as user.tags[0]
//   - [jsonvalue]: ordered JSON values and a canonical encoder
//   - [tree]: deep merge and path writes on parsed values
//   - [document]: the Store that owns the canonical text
//
// # Collaborators
//
//   - [graph]: derive nodes and edges; the View observer
//   - [edit]: scalar and subtree editors, click portal
//   - [contents]: file, Redis and MongoDB persistence
//   - [pipeline]: load, derive and render with caching
//
// # Infrastructure
//
//   - [cache]: file, Redis and null caches
//   - [config]: TOML configuration
//   - [errors]: coded errors
//   - [observability]: instrumentation hooks
//   - [dag]: layered graph used by renderers
//
// # Quick Start
//
//	view := graph.NewView(nil, logger)
//	store := document.New(document.WithObservers(view))
//	_ = store.Replace(ctx, `{"user":{"name":"Alice"}}`)
//
//	change, err := store.Mutate(ctx, "user", obj) // obj: {"age": 30}
//	// change.Text now holds {"user": {"name": "Alice", "age": 30}}
//	// view.Nodes() reflects the new document
package pkg
