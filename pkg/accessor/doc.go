// Package accessor converts between a path inside a JSON value and its
// compact string form.
//
// # Overview
//
// A [Path] is an ordered list of [Segment]s. Each segment is either an object
// key (string) or an array index (non-negative int). The empty path denotes
// the document root.
//
// The string form ("accessor") uses dots between keys and brackets around
// indices:
//
//	accessor.Encode(accessor.Path{accessor.Key("user"), accessor.Key("tags"), accessor.Index(0)})
//	// "user.tags[0]"
//
//	accessor.Encode(accessor.Path{accessor.Index(0), accessor.Key("a")})
//	// "[0].a"
//
// [Decode] reverses the encoding. It never fails: every "]" is removed, the
// remainder is split on "." and "[", empty tokens are dropped and all-digit
// tokens become index segments.
//
// # Numeric Keys
//
// An object key made only of digits ("2024") encodes as ".2024" and decodes
// back as index 2024. The tree mutator treats an index applied to an object
// as the decimal key, so the round trip still addresses the same value.
// Keys containing "." "[" or "]" cannot be represented and are split.
//
// # Display Form
//
// [Display] renders the form shown next to a node in editors:
//
//	accessor.Display(path) // $["user"]["tags"][0]
//
// The root renders as "$".
package accessor
