// Package jsonvalue is the in-memory model of a parsed JSON document.
//
// A [Value] is one of:
//
//   - nil (JSON null)
//   - bool
//   - json.Number
//   - string
//   - []any (JSON array, elements are Values)
//   - *[Object] (JSON object with insertion-ordered keys)
//
// [Parse] produces this model from text and [Marshal] writes it back. Key
// order survives the round trip, so editing one value never reorders the
// rest of a document. Numbers are printed in their shortest round-trip form
// (1.0 becomes 1, 1e2 becomes 100), matching what a browser's JSON
// serializer emits for the same document.
//
// Marshal additionally accepts float64, int, int64 and map[string]any so
// callers can build small values by hand; maps are written with sorted keys.
package jsonvalue
