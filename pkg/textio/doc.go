// Package textio reads the line-oriented transit format and prints
// statistics for it.
//
// A base section starts with a count followed by that many commands:
//
//	3
//	Stop Tolstopaltsevo: 55.611087, 37.20829, 3900m to Marushkino
//	Stop Marushkino: 55.595884, 37.209755
//	Bus 750: Tolstopaltsevo - Marushkino
//
// A stop lists its latitude and longitude and, optionally, road distances
// to other stops as "Dm to NAME". A bus lists its stops separated by " - "
// for an out-and-back route or " > " for a roundtrip.
//
// A stat section has the same shape with "Bus NAME" and "Stop NAME" lines.
// [WriteStats] answers each one on its own line:
//
//	Bus 750: 3 stops on route, 2 unique stops, 7800 route length, 2.3036 curvature
//	Stop Marushkino: buses 750
package textio
