// Package requests reads transit request documents in JSON and answers
// their stat requests.
//
// # Document Format
//
// A document has base requests describing the network, optional routing
// settings, and stat requests to answer:
//
//	{
//	  "base_requests": [
//	    {"type": "Stop", "name": "A", "latitude": 55.6, "longitude": 37.2,
//	     "road_distances": {"B": 3900}},
//	    {"type": "Stop", "name": "B", "latitude": 55.5, "longitude": 37.2},
//	    {"type": "Bus", "name": "14", "stops": ["A", "B"], "is_roundtrip": false}
//	  ],
//	  "routing_settings": {"bus_wait_time": 6, "bus_velocity": 40},
//	  "stat_requests": [
//	    {"id": 1, "type": "Bus", "name": "14"},
//	    {"id": 2, "type": "Stop", "name": "A"},
//	    {"id": 3, "type": "Route", "from": "A", "to": "B"}
//	  ]
//	}
//
// Base requests may appear in any order. [Document.Catalogue] adds all
// stops first, then all road distances, then all buses. A bus without
// "is_roundtrip" is treated as a roundtrip. "render_settings" is accepted
// and ignored.
//
// # Responses
//
// [Process] answers each stat request with one [Response], in request
// order. Bus requests report route statistics, Stop requests the buses
// serving the stop, and Route requests the fastest itinerary. A request
// naming an unknown bus or stop, or an unreachable destination, gets
// {"request_id": N, "error_message": "not found"}.
//
// The routing network is only built when at least one Route request is
// present.
package requests
