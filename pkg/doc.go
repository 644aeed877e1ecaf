// Package pkg provides the core libraries for transitcat, a bus network
// catalogue and route finder.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Domain: [catalogue] (stops, buses, distances), [routing] (the
//     time-weighted routing graph), and [graph] with its [shortest] search
//  2. Input and output: [requests] (JSON documents), [textio] (the
//     line-oriented format), and [render/dot] (Graphviz export)
//  3. Support: [config], [errors], [observability], [cache], [geo], and
//     [buildinfo]
//
// # Data Flow
//
//	JSON document / text input
//	         ↓
//	    [requests] or [textio] (parse base requests)
//	         ↓
//	    [catalogue] (StopBuilder → NetworkBuilder → Catalogue)
//	         ↓
//	    [routing] (arrival and departure vertices, wait and ride edges)
//	         ↓
//	    [shortest] (Dijkstra)
//	         ↓
//	    JSON responses / text answers / DOT and SVG
//
// # Quick Start
//
//	doc, _ := requests.LoadFile("requests.json")
//	res, _ := requests.Process(ctx, doc, requests.Options{})
//	requests.WriteResponses(os.Stdout, res.Responses)
//
// Or build the pieces directly:
//
//	b := catalogue.NewStopBuilder()
//	b.AddStop("A", geo.Coordinates{Lat: 55.61, Lng: 37.20})
//	b.AddStop("B", geo.Coordinates{Lat: 55.59, Lng: 37.21})
//	nb := b.Seal()
//	nb.AddDistance("A", "B", 3900)
//	nb.AddRoute("750", []string{"A", "B"}, false)
//	net, _ := routing.Build(nb.Build(), routing.DefaultSettings())
//	route, ok := net.BuildRoute("A", "B")
//
// [catalogue]: https://pkg.go.dev/github.com/matzehuels/transitcat/pkg/catalogue
// [routing]: https://pkg.go.dev/github.com/matzehuels/transitcat/pkg/routing
// [graph]: https://pkg.go.dev/github.com/matzehuels/transitcat/pkg/graph
// [shortest]: https://pkg.go.dev/github.com/matzehuels/transitcat/pkg/graph/shortest
// [requests]: https://pkg.go.dev/github.com/matzehuels/transitcat/pkg/requests
// [textio]: https://pkg.go.dev/github.com/matzehuels/transitcat/pkg/textio
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/transitcat/pkg/render/dot
// [config]: https://pkg.go.dev/github.com/matzehuels/transitcat/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/transitcat/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/transitcat/pkg/observability
// [cache]: https://pkg.go.dev/github.com/matzehuels/transitcat/pkg/cache
// [geo]: https://pkg.go.dev/github.com/matzehuels/transitcat/pkg/geo
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/transitcat/pkg/buildinfo
package pkg
