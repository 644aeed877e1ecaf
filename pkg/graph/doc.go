// Package graph provides a static directed graph with non-negative float64
// edge weights.
//
// # Overview
//
// Vertices are dense integers 0..VertexCount-1 and edges are numbered in
// insertion order, so an [EdgeID] can index a side table kept by the caller
// (the routing layer stores one rider action per edge this way).
//
// A graph has two states, each with its own type:
//
//   - [Builder] is a graph under construction. Edges are added with
//     [Builder.AddEdge].
//   - [Graph] is a finished graph returned by [Builder.Build]. It has no
//     mutating methods.
//
// After Build, the builder rejects further edges with [ErrSealed], so an
// edge can never appear in a graph that queries are already running on.
//
//	b := graph.NewBuilder(3)
//	_, _ = b.AddEdge(graph.Edge{From: 0, To: 1, Weight: 2.5})
//	_, _ = b.AddEdge(graph.Edge{From: 1, To: 2, Weight: 1})
//	g := b.Build()
//
// Shortest paths over a Graph are computed by the [shortest] subpackage.
//
// # Concurrency
//
// A Builder is not safe for concurrent use. A Graph is immutable and safe
// for concurrent readers.
package graph
