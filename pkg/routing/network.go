package routing

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/transitcat/pkg/catalogue"
	"github.com/matzehuels/transitcat/pkg/errors"
	"github.com/matzehuels/transitcat/pkg/graph"
	"github.com/matzehuels/transitcat/pkg/graph/shortest"
	"github.com/matzehuels/transitcat/pkg/observability"
)

// Network is a routing graph built from a catalogue together with the
// action behind every edge.
type Network struct {
	cat      *catalogue.Catalogue
	settings Settings
	graph    *graph.Graph
	actions  []Action
	engine   *shortest.Engine

	// stops[k] is the name of the stop owning vertices 2k and 2k+1.
	stops    []string
	position map[string]int
}

// Build constructs the routing network for cat.
func Build(cat *catalogue.Catalogue, s Settings) (*Network, error) {
	return BuildContext(context.Background(), cat, s)
}

// BuildContext is like [Build] and passes ctx to the observability hooks.
func BuildContext(ctx context.Context, cat *catalogue.Catalogue, s Settings) (*Network, error) {
	if cat == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "catalogue is nil")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	sorted := cat.Stops()
	n := &Network{
		cat:      cat,
		settings: s,
		stops:    make([]string, len(sorted)),
		position: make(map[string]int, len(sorted)),
	}
	byID := make(map[catalogue.StopID]int, len(sorted))
	for k, stop := range sorted {
		n.stops[k] = stop.Name
		n.position[stop.Name] = k
		byID[stop.ID] = k
	}

	b := graph.NewBuilder(2 * len(sorted))
	add := func(from, to graph.VertexID, a Action) error {
		if _, err := b.AddEdge(graph.Edge{From: from, To: to, Weight: a.Time}); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "add edge %d->%d", from, to)
		}
		n.actions = append(n.actions, a)
		return nil
	}

	for k, name := range n.stops {
		if err := add(arrival(k), departure(k), Action{Kind: Wait, StopName: name, Time: s.WaitTime}); err != nil {
			return nil, err
		}
	}

	speed := MetersPerMinute(s.Velocity)
	for _, bus := range cat.Buses() {
		if err := n.addBus(bus, byID, speed, add); err != nil {
			return nil, err
		}
	}

	n.graph = b.Build()
	n.engine = shortest.New(n.graph)
	observability.Routing().OnGraphBuilt(ctx, n.graph.VertexCount(), n.graph.EdgeCount(), time.Since(start))
	return n, nil
}

func (n *Network) addBus(bus catalogue.Bus, byID map[catalogue.StopID]int, speed float64,
	add func(from, to graph.VertexID, a Action) error) error {
	stops := bus.Stops
	pos := make([]int, len(stops))
	for i, id := range stops {
		k, ok := byID[id]
		if !ok {
			return errors.New(errors.ErrCodeInternal, "bus %q references unknown stop id %d", bus.Name, id)
		}
		pos[i] = k
	}

	for i := 0; i < len(stops); i++ {
		var forward, backward float64
		for j := i + 1; j < len(stops) && j-i <= n.settings.SpanCap; j++ {
			forward += n.cat.Distance(stops[j-1], stops[j])
			ride := Action{Kind: Bus, BusName: bus.Name, SpanCount: j - i, Time: forward / speed}
			if err := add(departure(pos[i]), arrival(pos[j]), ride); err != nil {
				return err
			}
			if bus.Roundtrip {
				continue
			}
			backward += n.cat.Distance(stops[j], stops[j-1])
			back := Action{Kind: Bus, BusName: bus.Name, SpanCount: j - i, Time: backward / speed}
			if err := add(departure(pos[j]), arrival(pos[i]), back); err != nil {
				return err
			}
		}
	}
	return nil
}

func arrival(k int) graph.VertexID   { return graph.VertexID(2 * k) }
func departure(k int) graph.VertexID { return graph.VertexID(2*k + 1) }

// Path returns the shortest path between the arrival vertices of two
// stops. It reports false if either stop is unknown or the destination
// cannot be reached.
func (n *Network) Path(from, to string) (shortest.Path, bool) {
	fk, ok := n.position[from]
	if !ok {
		return shortest.Path{}, false
	}
	tk, ok := n.position[to]
	if !ok {
		return shortest.Path{}, false
	}
	return n.engine.FindPath(arrival(fk), arrival(tk))
}

// BuildRoute returns the fastest route between two stops. It reports false
// if either stop is unknown or the destination cannot be reached.
func (n *Network) BuildRoute(from, to string) (Route, bool) {
	path, ok := n.Path(from, to)
	if !ok {
		return Route{}, false
	}

	route := Route{Actions: make([]Action, 0, len(path.Edges))}
	for _, id := range path.Edges {
		a := n.actions[id]
		route.Actions = append(route.Actions, a)
		route.TotalTime += a.Time
	}
	return route, true
}

// FindRoute is like BuildRoute but explains a failure with a coded error:
// STOP_NOT_FOUND for an unknown stop and UNREACHABLE when no route exists.
// The query is reported to the routing observability hooks.
func (n *Network) FindRoute(ctx context.Context, from, to string) (route Route, err error) {
	start := time.Now()
	defer func() {
		observability.Routing().OnRouteQuery(ctx, from, to, time.Since(start), err)
	}()

	for _, name := range []string{from, to} {
		if _, ok := n.position[name]; !ok {
			return Route{}, errors.New(errors.ErrCodeStopNotFound, "stop %q not found", name)
		}
	}
	route, ok := n.BuildRoute(from, to)
	if !ok {
		return Route{}, errors.New(errors.ErrCodeUnreachable, "no route from %q to %q", from, to)
	}
	return route, nil
}

// Settings returns the settings the network was built with.
func (n *Network) Settings() Settings { return n.settings }

// Catalogue returns the catalogue the network was built from.
func (n *Network) Catalogue() *catalogue.Catalogue { return n.cat }

// Graph returns the underlying routing graph.
func (n *Network) Graph() *graph.Graph { return n.graph }

// Action returns the action behind an edge.
func (n *Network) Action(id graph.EdgeID) Action { return n.actions[id] }

// HasStop reports whether the network has vertices for the named stop.
func (n *Network) HasStop(name string) bool {
	_, ok := n.position[name]
	return ok
}

// StopNames returns the stop names in vertex order.
func (n *Network) StopNames() []string {
	return append([]string(nil), n.stops...)
}

// Vertex describes the stop and role of a graph vertex.
type Vertex struct {
	ID        graph.VertexID
	StopName  string
	Departure bool
}

// String returns the stop name followed by "(arrive)" or "(depart)".
func (v Vertex) String() string {
	if v.Departure {
		return fmt.Sprintf("%s (depart)", v.StopName)
	}
	return fmt.Sprintf("%s (arrive)", v.StopName)
}

// Vertex returns the description of v. It reports false if v is not a
// vertex of the network.
func (n *Network) Vertex(v graph.VertexID) (Vertex, bool) {
	if v < 0 || int(v) >= 2*len(n.stops) {
		return Vertex{}, false
	}
	return Vertex{ID: v, StopName: n.stops[v/2], Departure: v%2 == 1}, true
}
