package bike

import (
	"errors"
	"time"

	"github.com/velobg/rental-backend/geo"
)

var (
	ErrNotFound     = errors.New("bike not found")
	ErrNotAvailable = errors.New("bike not available")
)

// Find returns the bike with the given id.
func Find(bikes []Bike, id string) (Bike, bool) {
	for _, b := range bikes {
		if b.ID == id {
			return b, true
		}
	}
	return Bike{}, false
}

// FindByLabel returns the bike carrying the given physical label.
func FindByLabel(bikes []Bike, label string) (Bike, bool) {
	for _, b := range bikes {
		if b.Label == label {
			return b, true
		}
	}
	return Bike{}, false
}

// MarkRented transitions a bike to the rented status. It returns a new slice;
// the input is never mutated. Fails with ErrNotFound if the bike does not
// exist and ErrNotAvailable if it is not currently available.
func MarkRented(bikes []Bike, id string, now time.Time) ([]Bike, Bike, error) {
	b, ok := Find(bikes, id)
	if !ok {
		return nil, Bike{}, ErrNotFound
	}
	if b.Status != StatusAvailable {
		return nil, Bike{}, ErrNotAvailable
	}

	b.Status = StatusRented
	b.UpdatedAt = now
	return replace(bikes, b), b, nil
}

// MarkAvailable transitions a bike back to the available status. When pos is
// non-nil the bike's resting location is moved there (the return location
// after a rental). There is no precondition on the prior status so admin
// overrides can recover a stuck bike.
func MarkAvailable(bikes []Bike, id string, pos *geo.Point, now time.Time) ([]Bike, Bike, error) {
	b, ok := Find(bikes, id)
	if !ok {
		return nil, Bike{}, ErrNotFound
	}

	b.Status = StatusAvailable
	if pos != nil {
		b.Lat = pos.Lat
		b.Lng = pos.Lng
	}
	b.UpdatedAt = now
	return replace(bikes, b), b, nil
}

// MoveTo overwrites a bike's location, leaving its status alone.
func MoveTo(bikes []Bike, id string, pos geo.Point, now time.Time) ([]Bike, Bike, error) {
	b, ok := Find(bikes, id)
	if !ok {
		return nil, Bike{}, ErrNotFound
	}

	b.Lat = pos.Lat
	b.Lng = pos.Lng
	b.UpdatedAt = now
	return replace(bikes, b), b, nil
}

func replace(bikes []Bike, updated Bike) []Bike {
	next := make([]Bike, len(bikes))
	for i, b := range bikes {
		if b.ID == updated.ID {
			next[i] = updated
		} else {
			next[i] = b
		}
	}
	return next
}
