package catalogue

import (
	"errors"
	"slices"

	"github.com/matzehuels/transitcat/pkg/geo"
)

var (
	// ErrEmptyName is returned when a stop or bus name is empty.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrDuplicateStop is returned by [StopBuilder.AddStop] when a stop with
	// the same name was already added. Stops are never merged.
	ErrDuplicateStop = errors.New("duplicate stop")

	// ErrDuplicateBus is returned by [NetworkBuilder.AddRoute] when a bus
	// with the same name was already added.
	ErrDuplicateBus = errors.New("duplicate bus")

	// ErrUnknownStop is returned when a distance or route references a stop
	// that was not added before the stop phase was sealed.
	ErrUnknownStop = errors.New("unknown stop")

	// ErrEmptyRoute is returned by [NetworkBuilder.AddRoute] for a route
	// without stops.
	ErrEmptyRoute = errors.New("route has no stops")

	// ErrInvalidDistance is returned by [NetworkBuilder.AddDistance] for a
	// negative distance.
	ErrInvalidDistance = errors.New("distance must not be negative")

	// ErrSealed is returned when a builder is used after its phase ended.
	ErrSealed = errors.New("builder is sealed")
)

// StopID identifies a stop within one catalogue.
type StopID int

// BusID identifies a bus within one catalogue.
type BusID int

// Stop is a named point of the network.
type Stop struct {
	ID       StopID
	Name     string
	Position geo.Coordinates
}

// Bus is a named route. Stops is the stored sequence (see package docs).
type Bus struct {
	ID        BusID
	Name      string
	Stops     []StopID
	Roundtrip bool
}

// RouteStats summarizes one bus route.
type RouteStats struct {
	StopCount       int     // stops in the stored sequence, repeats included
	UniqueStopCount int     // distinct stops
	RouteLength     float64 // road length in meters
	Curvature       float64 // road length / great-circle length
}

// distanceKey is a directed stop pair.
type distanceKey struct {
	from, to StopID
}

type store struct {
	stops     []Stop
	stopIndex map[string]StopID
	buses     []Bus
	busIndex  map[string]BusID
	distances map[distanceKey]float64
	stopBuses [][]string // StopID -> bus names, sorted at Build
	byName    []StopID   // stops in lexicographic order, set at Build
	busOrder  []BusID    // buses in lexicographic order, set at Build
}

// Catalogue is the immutable result of [NetworkBuilder.Build].
//
// The zero value is an empty catalogue.
type Catalogue struct {
	s *store
}

// StopCount returns the number of stops.
func (c *Catalogue) StopCount() int {
	if c.s == nil {
		return 0
	}
	return len(c.s.stops)
}

// BusCount returns the number of buses.
func (c *Catalogue) BusCount() int {
	if c.s == nil {
		return 0
	}
	return len(c.s.buses)
}

// HasStop reports whether id refers to a stop of this catalogue.
func (c *Catalogue) HasStop(id StopID) bool {
	return id >= 0 && int(id) < c.StopCount()
}

// Stop returns the stop with the given id. It panics if id is out of range.
func (c *Catalogue) Stop(id StopID) Stop {
	return c.s.stops[id]
}

// Bus returns the bus with the given id. It panics if id is out of range.
// The returned Stops slice is a copy.
func (c *Catalogue) Bus(id BusID) Bus {
	b := c.s.buses[id]
	b.Stops = slices.Clone(b.Stops)
	return b
}

// FindStop looks up a stop by exact name.
func (c *Catalogue) FindStop(name string) (Stop, bool) {
	if c.s == nil {
		return Stop{}, false
	}
	id, ok := c.s.stopIndex[name]
	if !ok {
		return Stop{}, false
	}
	return c.s.stops[id], true
}

// FindBus looks up a bus by exact name.
func (c *Catalogue) FindBus(name string) (Bus, bool) {
	if c.s == nil {
		return Bus{}, false
	}
	id, ok := c.s.busIndex[name]
	if !ok {
		return Bus{}, false
	}
	return c.Bus(id), true
}

// Stops returns all stops sorted by name.
func (c *Catalogue) Stops() []Stop {
	if c.s == nil {
		return nil
	}
	out := make([]Stop, len(c.s.byName))
	for i, id := range c.s.byName {
		out[i] = c.s.stops[id]
	}
	return out
}

// Buses returns all buses sorted by name.
func (c *Catalogue) Buses() []Bus {
	if c.s == nil {
		return nil
	}
	out := make([]Bus, len(c.s.busOrder))
	for i, id := range c.s.busOrder {
		out[i] = c.Bus(id)
	}
	return out
}

// Distance returns the road distance in meters from one stop to another.
// Missing directions fall back to the reverse direction and then to the
// great-circle distance. It panics if either id is out of range.
func (c *Catalogue) Distance(from, to StopID) float64 {
	if d, ok := c.s.distances[distanceKey{from, to}]; ok {
		return d
	}
	if d, ok := c.s.distances[distanceKey{to, from}]; ok {
		return d
	}
	return geo.Distance(c.s.stops[from].Position, c.s.stops[to].Position)
}

// StopDistance is [Catalogue.Distance] by stop name. It reports false if
// either stop is unknown.
func (c *Catalogue) StopDistance(from, to string) (float64, bool) {
	a, ok := c.FindStop(from)
	if !ok {
		return 0, false
	}
	b, ok := c.FindStop(to)
	if !ok {
		return 0, false
	}
	return c.Distance(a.ID, b.ID), true
}

// RouteStatistics computes stop counts, road length and curvature of the
// named bus. It reports false if the bus is unknown.
func (c *Catalogue) RouteStatistics(name string) (RouteStats, bool) {
	if c.s == nil {
		return RouteStats{}, false
	}
	id, ok := c.s.busIndex[name]
	if !ok {
		return RouteStats{}, false
	}
	stops := c.s.buses[id].Stops

	unique := make(map[StopID]struct{}, len(stops))
	for _, s := range stops {
		unique[s] = struct{}{}
	}

	var road, direct float64
	for i := 1; i < len(stops); i++ {
		road += c.Distance(stops[i-1], stops[i])
		direct += geo.Distance(c.s.stops[stops[i-1]].Position, c.s.stops[stops[i]].Position)
	}

	stats := RouteStats{
		StopCount:       len(stops),
		UniqueStopCount: len(unique),
		RouteLength:     road,
	}
	if direct > 0 {
		stats.Curvature = road / direct
	}
	return stats, true
}

// BusesThroughStop returns the names of buses whose stored sequence visits
// the named stop, sorted lexicographically. A known stop without buses
// yields an empty, non-nil slice. It reports false if the stop is unknown.
func (c *Catalogue) BusesThroughStop(name string) ([]string, bool) {
	if c.s == nil {
		return nil, false
	}
	id, ok := c.s.stopIndex[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(c.s.stopBuses[id]), true
}
