// Package catalogue holds the stops, buses and road distances of a transit
// network.
//
// # Overview
//
// A catalogue is populated once and is read-only afterwards. Population is
// split into two phases, each with its own builder type, so that distances
// and routes can only ever reference stops that already exist:
//
//  1. [StopBuilder] accepts stops via [StopBuilder.AddStop].
//  2. [StopBuilder.Seal] ends the stop phase and returns a [NetworkBuilder],
//     which accepts directed road distances ([NetworkBuilder.AddDistance])
//     and bus routes ([NetworkBuilder.AddRoute]).
//  3. [NetworkBuilder.Build] returns the immutable [Catalogue].
//
//	sb := catalogue.NewStopBuilder()
//	_ = sb.AddStop("Tolstopaltsevo", geo.Coordinates{Lat: 55.611087, Lng: 37.20829})
//	_ = sb.AddStop("Marushkino", geo.Coordinates{Lat: 55.595884, Lng: 37.209755})
//	nb := sb.Seal()
//	_ = nb.AddDistance("Tolstopaltsevo", "Marushkino", 3900)
//	_ = nb.AddRoute("750", []string{"Tolstopaltsevo", "Marushkino"}, false)
//	cat := nb.Build()
//
// # Identity
//
// Stops and buses are stored in append-only arenas and referenced by
// [StopID] and [BusID], which are indexes into those arenas. Nothing in the
// catalogue holds pointers to other entities, and ids stay valid for the
// lifetime of the catalogue.
//
// # Stored Route Sequences
//
// [NetworkBuilder.AddRoute] expands the given stops into the sequence a
// vehicle actually drives:
//
//   - a non-roundtrip route A,B,C is stored as A,B,C,B,A
//   - a roundtrip route A,B,C is stored as A,B,C,A (left alone if already closed)
//
// # Distances
//
// Road distances are directed. [Catalogue.Distance] looks up the exact
// direction first, then the reverse direction, and finally falls back to the
// great-circle distance between the two stops. Route lengths and routing
// graph weights both go through this one lookup.
//
// # Errors
//
// Ingestion mistakes (unknown stops, duplicate names, writes after sealing)
// are caller bugs and are returned as sentinel errors from the builders.
// Queries on a built catalogue never return errors: absent stops and buses
// are reported with a boolean.
//
// # Concurrency
//
// Builders are not safe for concurrent use. A built [Catalogue] is immutable
// and may be shared freely between goroutines.
package catalogue
