package graph

import (
	"errors"
	"math"
	"slices"
)

var (
	// ErrUnknownSourceVertex is returned by [Builder.AddEdge] when From is
	// not a vertex of the graph.
	ErrUnknownSourceVertex = errors.New("unknown source vertex")

	// ErrUnknownTargetVertex is returned by [Builder.AddEdge] when To is
	// not a vertex of the graph.
	ErrUnknownTargetVertex = errors.New("unknown target vertex")

	// ErrNegativeWeight is returned by [Builder.AddEdge] for weights below
	// zero, and for NaN weights.
	ErrNegativeWeight = errors.New("edge weight must be non-negative")

	// ErrSealed is returned by [Builder.AddEdge] after [Builder.Build].
	ErrSealed = errors.New("graph is already built")
)

// VertexID identifies a vertex.
type VertexID int

// EdgeID identifies an edge. Ids are assigned in insertion order from 0.
type EdgeID int

// Edge is a directed weighted connection between two vertices.
type Edge struct {
	From   VertexID
	To     VertexID
	Weight float64
}

// Builder is a graph under construction with a fixed vertex count.
//
// The zero value has no vertices; use NewBuilder.
type Builder struct {
	vertexCount int
	edges       []Edge
	outgoing    [][]EdgeID
	built       *Graph
}

// NewBuilder creates a builder for a graph with vertexCount vertices and
// no edges. A negative count is treated as zero.
func NewBuilder(vertexCount int) *Builder {
	vertexCount = max(vertexCount, 0)
	return &Builder{
		vertexCount: vertexCount,
		outgoing:    make([][]EdgeID, vertexCount),
	}
}

// AddEdge appends an edge and returns its id. Parallel edges and self
// loops are allowed.
func (b *Builder) AddEdge(e Edge) (EdgeID, error) {
	if b.built != nil {
		return 0, ErrSealed
	}
	if !b.valid(e.From) {
		return 0, ErrUnknownSourceVertex
	}
	if !b.valid(e.To) {
		return 0, ErrUnknownTargetVertex
	}
	if e.Weight < 0 || math.IsNaN(e.Weight) {
		return 0, ErrNegativeWeight
	}
	id := EdgeID(len(b.edges))
	b.edges = append(b.edges, e)
	b.outgoing[e.From] = append(b.outgoing[e.From], id)
	return id, nil
}

// EdgeCount returns the number of edges added so far.
func (b *Builder) EdgeCount() int { return len(b.edges) }

func (b *Builder) valid(v VertexID) bool {
	return v >= 0 && int(v) < b.vertexCount
}

// Build finishes construction. Subsequent calls return the same Graph.
func (b *Builder) Build() *Graph {
	if b.built == nil {
		b.built = &Graph{
			vertexCount: b.vertexCount,
			edges:       b.edges,
			outgoing:    b.outgoing,
		}
	}
	return b.built
}

// Graph is an immutable directed weighted graph.
type Graph struct {
	vertexCount int
	edges       []Edge
	outgoing    [][]EdgeID
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return g.vertexCount }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// HasVertex reports whether v is a vertex of the graph.
func (g *Graph) HasVertex(v VertexID) bool {
	return v >= 0 && int(v) < g.vertexCount
}

// Edge returns the edge with the given id. It panics if id is out of range.
func (g *Graph) Edge(id EdgeID) Edge { return g.edges[id] }

// Edges returns a copy of all edges in id order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// OutgoingEdges returns the ids of edges leaving v in insertion order, or
// nil if v has none or is not a vertex. The returned slice is a read-only
// view and must not be modified.
func (g *Graph) OutgoingEdges(v VertexID) []EdgeID {
	if !g.HasVertex(v) {
		return nil
	}
	return g.outgoing[v]
}

// OutDegree returns the number of edges leaving v.
func (g *Graph) OutDegree(v VertexID) int { return len(g.OutgoingEdges(v)) }
