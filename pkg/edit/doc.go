// Package edit implements the interactive ways of changing a document.
//
// # Overview
//
// Every surface turns user text into a JSON value with [Coerce] and commits
// it through a [Mutator] (normally a *document.Store):
//
//   - [ScalarEditor]: a single input line bound to an accessor. Typed
//     literals (true, false, null, numbers) are recognized; anything else is
//     stored as a string.
//   - [SubtreeEditor]: edits the primitive fields of one graph node as a
//     JSON object. Objects are deep-merged into the document, so nested
//     containers the node does not show are preserved.
//   - [Portal]: opens a ScalarEditor from a click on a rendered node, or
//     from an explicit open request.
//
// # Coercion
//
// [ModeScalar] never fails: text that is not a literal or number is a
// string. [ModeRaw] parses text starting with '{' or '[' as JSON and reports
// the parser's message on failure. [ModeStrict] requires JSON.
//
//	v, err := edit.Coerce(" 42 ", edit.ModeScalar) // json.Number("42")
//	v, err := edit.Coerce(`{"a":1}`, edit.ModeRaw) // *jsonvalue.Object
package edit
