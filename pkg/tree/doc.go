// Package tree writes values into a parsed JSON document.
//
// Two operations make up an edit:
//
//   - [Resolve] decides what to store: it deep-merges a candidate object into
//     an existing object, and replaces in every other case.
//   - [SetAtPath] stores the resolved value at a [accessor.Path], creating
//     missing containers along the way.
//
// Both work on a freshly parsed working tree owned by the caller. Resolve
// never modifies its inputs; SetAtPath modifies the tree it is given and
// returns its (possibly new) root.
//
// # Merge Rules
//
//	existing         candidate       result
//	{"a":1,"b":2}    {"b":3,"c":4}   {"a":1,"b":3,"c":4}
//	{"o":{"x":1}}    {"o":{"y":2}}   {"o":{"x":1,"y":2}}
//	[1,2,3]          [9]             [9]
//	"old"            {"k":1}         {"k":1}
//	{"k":1}          "new"           "new"
//
// Arrays are never merged element-wise.
//
// # Container Creation
//
// When a step of the path is missing (or holds null), SetAtPath creates an
// array if the following segment is an index and an object otherwise:
//
//	SetAtPath({}, a.b[0].c, 5)  =>  {"a":{"b":[{"c":5}]}}
package tree
