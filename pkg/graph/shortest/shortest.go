// Package shortest computes single-pair shortest paths over a [graph.Graph]
// using Dijkstra's algorithm.
//
// An [Engine] holds only the immutable graph. Every call to
// [Engine.FindPath] allocates its own scratch state, so one engine can serve
// concurrent queries without locking.
//
// Ties between equal tentative distances are broken by the smaller vertex
// id, and a vertex's predecessor only changes on a strictly shorter
// distance. Together these make the returned path deterministic for a given
// graph.
package shortest

import (
	"container/heap"
	"math"

	"github.com/matzehuels/transitcat/pkg/graph"
)

// Path is a shortest path as an ordered list of edge ids from the source to
// the target, along with the sum of their weights.
type Path struct {
	Weight float64
	Edges  []graph.EdgeID
}

// Engine answers shortest-path queries over a fixed graph.
type Engine struct {
	g *graph.Graph
}

// New returns an engine over g. The graph must not be nil.
func New(g *graph.Graph) *Engine {
	return &Engine{g: g}
}

// Graph returns the graph the engine runs on.
func (e *Engine) Graph() *graph.Graph { return e.g }

// FindPath returns the minimum-weight path from one vertex to another.
//
// It reports false if either vertex is out of range or if to cannot be
// reached from from. A query with from == to yields an empty path of
// weight zero.
func (e *Engine) FindPath(from, to graph.VertexID) (Path, bool) {
	if !e.g.HasVertex(from) || !e.g.HasVertex(to) {
		return Path{}, false
	}
	if from == to {
		return Path{}, true
	}

	n := e.g.VertexCount()
	dist := make([]float64, n)
	prev := make([]graph.EdgeID, n)
	done := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[from] = 0

	q := &queue{{vertex: from}}
	for q.Len() > 0 {
		it := heap.Pop(q).(item)
		u := it.vertex
		if done[u] {
			continue
		}
		done[u] = true
		if u == to {
			break
		}
		for _, id := range e.g.OutgoingEdges(u) {
			edge := e.g.Edge(id)
			if done[edge.To] {
				continue
			}
			if d := dist[u] + edge.Weight; d < dist[edge.To] {
				dist[edge.To] = d
				prev[edge.To] = id
				heap.Push(q, item{dist: d, vertex: edge.To})
			}
		}
	}

	if !done[to] {
		return Path{}, false
	}
	return Path{Weight: dist[to], Edges: unwind(e.g, prev, from, to)}, true
}

// unwind follows predecessor edges back from to and returns them in
// source-to-target order.
func unwind(g *graph.Graph, prev []graph.EdgeID, from, to graph.VertexID) []graph.EdgeID {
	var edges []graph.EdgeID
	for v := to; v != from; {
		id := prev[v]
		edges = append(edges, id)
		v = g.Edge(id).From
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return edges
}

type item struct {
	dist   float64
	vertex graph.VertexID
}

// queue is a min-heap of items ordered by (dist, vertex).
type queue []item

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].vertex < q[j].vertex
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(item)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
