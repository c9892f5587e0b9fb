// Package zone holds the parking zones a rental must end inside.
package zone

import (
	"strings"

	"github.com/google/uuid"

	"github.com/velobg/rental-backend/geo"
)

// ParkingZone is a circular geofenced area where bikes may be returned.
type ParkingZone struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	// RadiusMeters is the zone radius, 1-1000 m.
	RadiusMeters float64 `json:"radiusMeters"`
	// Capacity is advisory; occupancy is never enforced as a hard limit.
	Capacity int `json:"capacity"`
}

// Center returns the zone's center point.
func (z ParkingZone) Center() geo.Point {
	return geo.Point{Lat: z.Lat, Lng: z.Lng}
}

// Contains reports whether p lies inside the zone, boundary inclusive.
func (z ParkingZone) Contains(p geo.Point) bool {
	return geo.InRadius(p, z.Center(), z.RadiusMeters)
}

// Find returns the zone with the given id.
func Find(zones []ParkingZone, id string) (ParkingZone, bool) {
	for _, z := range zones {
		if z.ID == id {
			return z, true
		}
	}
	return ParkingZone{}, false
}

// FindContaining returns the first zone containing p and the distance to its
// center. ok is false when p is outside every zone.
func FindContaining(p geo.Point, zones []ParkingZone) (z ParkingZone, distanceM float64, ok bool) {
	for _, z := range zones {
		d := geo.DistanceMeters(p, z.Center())
		if d <= z.RadiusMeters {
			return z, d, true
		}
	}
	return ParkingZone{}, 0, false
}

// Nearest returns the zone whose center is closest to p. Exact ties keep the
// first zone encountered. ok is false for an empty zone list.
func Nearest(p geo.Point, zones []ParkingZone) (z ParkingZone, distanceM float64, ok bool) {
	for i, cand := range zones {
		d := geo.DistanceMeters(p, cand.Center())
		if i == 0 || d < distanceM {
			z = cand
			distanceM = d
			ok = true
		}
	}
	return z, distanceM, ok
}

// NameTaken reports whether name collides case-insensitively with an existing
// zone, ignoring the zone with id exceptID.
func NameTaken(zones []ParkingZone, name, exceptID string) bool {
	for _, z := range zones {
		if z.ID != exceptID && strings.EqualFold(z.Name, name) {
			return true
		}
	}
	return false
}

// NewID returns a fresh parking-zone identifier.
func NewID() string {
	return "pz_" + uuid.NewString()
}
