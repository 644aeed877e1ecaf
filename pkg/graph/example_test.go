package graph_test

import (
	"fmt"

	"github.com/matzehuels/transitcat/pkg/graph"
)

func ExampleBuilder() {
	b := graph.NewBuilder(3)
	_, _ = b.AddEdge(graph.Edge{From: 0, To: 1, Weight: 2.5})
	id, _ := b.AddEdge(graph.Edge{From: 1, To: 2, Weight: 1})
	g := b.Build()

	fmt.Println("Vertices:", g.VertexCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Last edge:", g.Edge(id).From, "->", g.Edge(id).To)
	// Output:
	// Vertices: 3
	// Edges: 2
	// Last edge: 1 -> 2
}
