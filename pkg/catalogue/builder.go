package catalogue

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/transitcat/pkg/geo"
)

// StopBuilder collects the stops of a network. It is the first ingestion
// phase; call [StopBuilder.Seal] once every stop has been added.
//
// The zero value is not usable - use NewStopBuilder.
type StopBuilder struct {
	s    *store
	next *NetworkBuilder
}

// NewStopBuilder creates an empty stop phase.
func NewStopBuilder() *StopBuilder {
	return &StopBuilder{
		s: &store{
			stopIndex: make(map[string]StopID),
			busIndex:  make(map[string]BusID),
			distances: make(map[distanceKey]float64),
		},
	}
}

// AddStop registers a stop. Names must be unique: a second stop with the
// same name returns ErrDuplicateStop and leaves the first one untouched.
// Returns ErrSealed after [StopBuilder.Seal].
func (b *StopBuilder) AddStop(name string, pos geo.Coordinates) error {
	if b.next != nil {
		return ErrSealed
	}
	if name == "" {
		return ErrEmptyName
	}
	if _, exists := b.s.stopIndex[name]; exists {
		return fmt.Errorf("stop %q: %w", name, ErrDuplicateStop)
	}
	id := StopID(len(b.s.stops))
	b.s.stops = append(b.s.stops, Stop{ID: id, Name: name, Position: pos})
	b.s.stopIndex[name] = id
	b.s.stopBuses = append(b.s.stopBuses, []string{})
	return nil
}

// Seal ends the stop phase and returns the builder for distances and
// routes. Calling Seal again returns the same NetworkBuilder.
func (b *StopBuilder) Seal() *NetworkBuilder {
	if b.next == nil {
		b.next = &NetworkBuilder{s: b.s}
	}
	return b.next
}

// NetworkBuilder collects road distances and bus routes over a sealed set
// of stops. It is the second ingestion phase.
type NetworkBuilder struct {
	s     *store
	built *Catalogue
}

// AddDistance records the road distance in meters from one stop to another.
// The reverse direction is not implied. Recording the same directed pair
// twice keeps the last value.
func (b *NetworkBuilder) AddDistance(from, to string, meters float64) error {
	if b.built != nil {
		return ErrSealed
	}
	if meters < 0 {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrInvalidDistance)
	}
	fromID, ok := b.s.stopIndex[from]
	if !ok {
		return fmt.Errorf("distance from %q: %w", from, ErrUnknownStop)
	}
	toID, ok := b.s.stopIndex[to]
	if !ok {
		return fmt.Errorf("distance to %q: %w", to, ErrUnknownStop)
	}
	b.s.distances[distanceKey{fromID, toID}] = meters
	return nil
}

// AddRoute registers a bus. stops is the outward leg for a non-roundtrip
// route and the loop for a roundtrip route; see the package docs for the
// stored sequence. Every stop must be known: the first unknown name rejects
// the whole route with ErrUnknownStop and nothing is stored.
func (b *NetworkBuilder) AddRoute(name string, stops []string, roundtrip bool) error {
	if b.built != nil {
		return ErrSealed
	}
	if name == "" {
		return ErrEmptyName
	}
	if _, exists := b.s.busIndex[name]; exists {
		return fmt.Errorf("bus %q: %w", name, ErrDuplicateBus)
	}
	if len(stops) == 0 {
		return fmt.Errorf("bus %q: %w", name, ErrEmptyRoute)
	}

	outward := make([]StopID, len(stops))
	for i, stopName := range stops {
		id, ok := b.s.stopIndex[stopName]
		if !ok {
			return fmt.Errorf("bus %q stop %q: %w", name, stopName, ErrUnknownStop)
		}
		outward[i] = id
	}

	id := BusID(len(b.s.buses))
	b.s.buses = append(b.s.buses, Bus{
		ID:        id,
		Name:      name,
		Stops:     storedSequence(outward, roundtrip),
		Roundtrip: roundtrip,
	})
	b.s.busIndex[name] = id
	for _, s := range outward {
		b.s.stopBuses[s] = append(b.s.stopBuses[s], name)
	}
	return nil
}

// storedSequence closes a roundtrip loop or mirrors an outward leg.
func storedSequence(outward []StopID, roundtrip bool) []StopID {
	if roundtrip {
		if outward[0] != outward[len(outward)-1] {
			return append(outward, outward[0])
		}
		return outward
	}
	seq := make([]StopID, 0, 2*len(outward)-1)
	seq = append(seq, outward...)
	for i := len(outward) - 2; i >= 0; i-- {
		seq = append(seq, outward[i])
	}
	return seq
}

// Build finalizes the catalogue. The builder rejects further writes with
// ErrSealed; calling Build again returns the same catalogue.
func (b *NetworkBuilder) Build() *Catalogue {
	if b.built != nil {
		return b.built
	}
	s := b.s
	for i := range s.stopBuses {
		slices.Sort(s.stopBuses[i])
		s.stopBuses[i] = slices.Compact(s.stopBuses[i])
	}

	s.byName = make([]StopID, len(s.stops))
	for i := range s.stops {
		s.byName[i] = StopID(i)
	}
	slices.SortFunc(s.byName, func(a, b StopID) int {
		return strings.Compare(s.stops[a].Name, s.stops[b].Name)
	})

	s.busOrder = make([]BusID, len(s.buses))
	for i := range s.buses {
		s.busOrder[i] = BusID(i)
	}
	slices.SortFunc(s.busOrder, func(a, b BusID) int {
		return strings.Compare(s.buses[a].Name, s.buses[b].Name)
	})

	b.built = &Catalogue{s: s}
	return b.built
}
