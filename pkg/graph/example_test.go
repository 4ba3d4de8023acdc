package graph_test

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/jsongraph/pkg/graph"
)

func ExampleDerive() {
	g, err := graph.Derive(`{"user": {"name": "Bob", "tags": ["a", "b"]}, "ok": true}`)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, n := range g.Nodes {
		fmt.Printf("%s (depth %d)\n", n.ID, n.Depth)
		for _, r := range n.Text {
			fmt.Println("  " + r.String())
		}
	}
	for _, e := range g.Edges {
		fmt.Printf("%s -> %s [%s]\n", e.From, e.To, e.Label)
	}
	// Output:
	// $ (depth 0)
	//   user {1 keys}
	//   ok: true
	// $["user"] (depth 1)
	//   name: Bob
	//   tags [2 items]
	// $["user"]["tags"][0] (depth 2)
	//   a
	// $["user"]["tags"][1] (depth 2)
	//   b
	// $ -> $["user"] [user]
	// $["user"] -> $["user"]["tags"][0] [tags]
	// $["user"] -> $["user"]["tags"][1] [tags]
}

func ExampleWrite() {
	g, _ := graph.Derive(`{"n": 1}`)

	var buf bytes.Buffer
	if err := graph.Write(g, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "$",
	//       "path": [],
	//       "depth": 0,
	//       "text": [
	//         {
	//           "key": "n",
	//           "value": 1,
	//           "type": "number"
	//         }
	//       ]
	//     }
	//   ],
	//   "edges": []
	// }
}

func ExampleToDAG() {
	g, _ := graph.Derive(`{"a": {"b": {"c": 1}}}`)
	d, err := graph.ToDAG(g)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, row := range d.RowIDs() {
		for _, n := range d.NodesInRow(row) {
			fmt.Printf("row %d: %s\n", row, n.Label)
		}
	}
	// Output:
	// row 0: a {1 keys}
	// row 1: b {1 keys}
	// row 2: c: 1
}
