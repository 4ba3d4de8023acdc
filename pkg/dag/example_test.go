package dag_test

import (
	"fmt"

	"github.com/matzehuels/jsongraph/pkg/dag"
)

func ExampleDAG_basic() {
	// {"user": {"tags": ["a"]}}
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "$", Row: 0})
	_ = g.AddNode(dag.Node{ID: `$["user"]`, Row: 1})
	_ = g.AddNode(dag.Node{ID: `$["user"]["tags"][0]`, Row: 2})
	_ = g.AddEdge(dag.Edge{From: "$", To: `$["user"]`, Label: "user"})
	_ = g.AddEdge(dag.Edge{From: `$["user"]`, To: `$["user"]["tags"][0]`, Label: "tags"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Rows:", g.RowCount())
	fmt.Println("Valid:", g.Validate() == nil)
	// Output:
	// Nodes: 3
	// Edges: 2
	// Rows: 3
	// Valid: true
}

func ExampleDAG_traversal() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "root", Row: 0})
	_ = g.AddNode(dag.Node{ID: "left", Row: 1})
	_ = g.AddNode(dag.Node{ID: "right", Row: 1})
	_ = g.AddEdge(dag.Edge{From: "root", To: "left"})
	_ = g.AddEdge(dag.Edge{From: "root", To: "right"})

	fmt.Println("Children of root:", g.Children("root"))
	fmt.Println("Parents of left:", g.Parents("left"))
	fmt.Println("Out-degree of root:", g.OutDegree("root"))
	// Output:
	// Children of root: [left right]
	// Parents of left: [root]
	// Out-degree of root: 2
}

func ExampleDAG_Sources() {
	// A root array yields several top-level nodes.
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "$[0]", Row: 0})
	_ = g.AddNode(dag.Node{ID: "$[1]", Row: 0})
	_ = g.AddNode(dag.Node{ID: `$[1]["x"]`, Row: 1})
	_ = g.AddEdge(dag.Edge{From: "$[1]", To: `$[1]["x"]`})

	for _, n := range g.Sources() {
		fmt.Println(n.ID)
	}
	// Output:
	// $[0]
	// $[1]
}
