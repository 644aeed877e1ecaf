// Package routing turns a [catalogue.Catalogue] into a weighted graph of
// rider actions and answers fastest-route queries over it.
//
// # Graph Layout
//
// Every stop contributes two vertices. With stops sorted by name and k the
// stop's position in that order, the arrival vertex is 2k and the departure
// vertex is 2k+1.
//
//   - A wait edge leads from a stop's arrival vertex to its departure
//     vertex and costs the configured wait time.
//   - A bus edge leads from the departure vertex of stops[i] to the arrival
//     vertex of stops[j] for every pair on one bus with 1 <= j-i <= SpanCap.
//     It costs the road distance over the span divided by the bus speed.
//     Non-roundtrip buses also get the mirrored edge, priced with the
//     distances in the opposite direction.
//
// Each edge carries one [Action]; the action index equals the edge id, so a
// shortest path maps directly back to a list of waits and rides.
//
// # Queries
//
// A query runs from the arrival vertex of the origin to the arrival vertex
// of the destination, so every non-empty route starts with a wait. A query
// from a stop to itself returns an empty route with zero total time.
//
//	net, err := routing.Build(cat, routing.Settings{WaitTime: 6, Velocity: 40, SpanCap: routing.DefaultSpanCap})
//	if err != nil {
//	    return err
//	}
//	route, ok := net.BuildRoute("Biryulyovo Zapadnoye", "Universam")
//
// # Span Cap
//
// SpanCap bounds the number of bus edges per bus to O(n*SpanCap) instead of
// O(n^2). Rides longer than the cap are still found as several bus legs
// joined by waits, so a lower cap can only make some routes slower, never
// faster.
//
// A built [Network] is immutable and safe for concurrent queries.
package routing
