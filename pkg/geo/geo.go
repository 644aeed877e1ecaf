// Package geo provides geographic coordinates and great-circle distances.
package geo

import "math"

const (
	// EarthRadius is the mean Earth radius in meters.
	EarthRadius = 6371000.0

	degToRad = 3.1415926535 / 180.0
)

// Coordinates is a point on the Earth's surface in degrees.
type Coordinates struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// Distance returns the great-circle distance in meters between from and to,
// using the spherical law of cosines. Identical points are exactly 0 apart.
func Distance(from, to Coordinates) float64 {
	if from == to {
		return 0
	}
	cos := math.Sin(from.Lat*degToRad)*math.Sin(to.Lat*degToRad) +
		math.Cos(from.Lat*degToRad)*math.Cos(to.Lat*degToRad)*math.Cos(math.Abs(from.Lng-to.Lng)*degToRad)
	// rounding can push nearly identical points just past 1
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * EarthRadius
}
