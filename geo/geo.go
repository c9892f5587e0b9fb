// Package geo holds the great-circle math used for parking-zone checks.
package geo

import "math"

// earthRadiusMeters is the mean radius of the Earth.
const earthRadiusMeters = 6371000

// Point represents a geographic coordinate (WGS 84).
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceMeters returns the great-circle (haversine) distance between two
// points. It is symmetric and zero for identical points.
func DistanceMeters(a, b Point) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// InRadius reports whether p lies within radiusMeters of center. A point
// exactly on the boundary counts as inside.
func InRadius(p, center Point, radiusMeters float64) bool {
	return DistanceMeters(p, center) <= radiusMeters
}

// ValidLat reports whether lat is a usable latitude.
func ValidLat(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// ValidLng reports whether lng is a usable longitude.
func ValidLng(lng float64) bool {
	return lng >= -180 && lng <= 180
}
