// Package document owns the canonical JSON text being edited.
//
// # Overview
//
// A [Store] holds one document as text. At rest the text always parses as
// JSON; the initial and cleared value is "{}". Every edit goes through
// [Store.Mutate]:
//
//  1. parse the current text into a working tree
//  2. decode the accessor (an empty path is rejected)
//  3. look up the value currently at the path
//  4. resolve replace versus deep merge ([tree.Resolve])
//  5. write the resolved value ([tree.SetAtPath])
//  6. re-serialize with two-space indentation and commit
//  7. notify observers in registration order
//
// A failure in steps 1 to 5 leaves the text untouched and notifies no one.
//
// # Observers
//
// Observers receive a [Change] describing each commit. The usual pair is a
// graph view (re-derives nodes and edges) and a persistence sink:
//
//	view := graph.NewView(graph.NewDeriver(nil, logger), logger)
//	store := document.New(
//	    document.WithLogger(logger),
//	    document.WithObservers(view, contents.Observer(sink)),
//	)
//
//	change, err := store.Mutate(ctx, "user", userObj)
//
// Observers run synchronously while the store lock is held, so calls never
// overlap and no observer sees a document older than the one it was told
// about. An observer error does not roll the commit back; it is reported to
// the caller as OBSERVER_FAILED alongside the committed [Change].
package document
