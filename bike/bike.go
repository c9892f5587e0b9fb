// Package bike
package bike

import (
	"time"

	"github.com/google/uuid"

	"github.com/velobg/rental-backend/geo"
)

type Type string

const (
	TypeCity  Type = "CITY"
	TypeEBike Type = "E-BIKE"
	TypeMTB   Type = "MTB"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusRented      Status = "rented"
	StatusMaintenance Status = "maintenance"
	StatusDisabled    Status = "disabled"
)

// ValidType reports whether t is one of the known bike categories.
func ValidType(t Type) bool {
	switch t {
	case TypeCity, TypeEBike, TypeMTB:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known bike statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusRented, StatusMaintenance, StatusDisabled:
		return true
	}
	return false
}

// Bike represents a rentable bike in the fleet.
type Bike struct {
	// ID is an internal identifier for a bike.
	ID string `json:"id"`
	// Label is a physical label which is on the bike. It should be scannable
	// (e.g. "BG-001") in QR Code format.
	Label string `json:"label"`
	Type  Type   `json:"type"`
	// PricePerHour is the hourly rate in RSD.
	PricePerHour float64 `json:"pricePerHour"`

	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`

	Status Status `json:"status"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Position returns the bike's last known resting location.
func (b Bike) Position() geo.Point {
	return geo.Point{Lat: b.Lat, Lng: b.Lng}
}

// NewID returns a fresh bike identifier.
func NewID() string {
	return "bike_" + uuid.NewString()
}
