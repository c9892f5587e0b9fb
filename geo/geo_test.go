package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_ZeroForIdenticalPoints(t *testing.T) {
	p := Point{Lat: 44.8166, Lng: 20.4602}
	assert.Equal(t, 0.0, DistanceMeters(p, p))
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	a := Point{Lat: 44.8166, Lng: 20.4602}
	b := Point{Lat: 44.8231, Lng: 20.4502}
	assert.InDelta(t, DistanceMeters(a, b), DistanceMeters(b, a), 1e-9)
}

func TestDistanceMeters_KnownSeparation(t *testing.T) {
	// Trg Republike to Kalemegdan is roughly a kilometre.
	a := Point{Lat: 44.8166, Lng: 20.4602}
	b := Point{Lat: 44.8231, Lng: 20.4502}
	d := DistanceMeters(a, b)
	assert.Greater(t, d, 900.0)
	assert.Less(t, d, 1200.0)
}

func TestDistanceMeters_MonotonicWithSeparation(t *testing.T) {
	origin := Point{Lat: 44.8166, Lng: 20.4602}
	near := Point{Lat: 44.8170, Lng: 20.4602}
	far := Point{Lat: 44.8200, Lng: 20.4602}
	assert.Less(t, DistanceMeters(origin, near), DistanceMeters(origin, far))
}

func TestInRadius_BoundaryInclusive(t *testing.T) {
	center := Point{Lat: 44.8166, Lng: 20.4602}

	assert.True(t, InRadius(center, center, 0), "point at center is inside")

	// One degree of latitude is ~111.19 km; pick a point and use its exact
	// distance as the radius to probe the boundary.
	p := Point{Lat: 44.8180, Lng: 20.4602}
	d := DistanceMeters(p, center)
	assert.True(t, InRadius(p, center, d), "point at distance == radius is inside")
	assert.False(t, InRadius(p, center, d-1), "point one metre beyond radius is outside")
}

func TestValidLatLng(t *testing.T) {
	assert.True(t, ValidLat(90))
	assert.True(t, ValidLat(-90))
	assert.False(t, ValidLat(90.0001))
	assert.True(t, ValidLng(-180))
	assert.True(t, ValidLng(180))
	assert.False(t, ValidLng(180.0001))
}
