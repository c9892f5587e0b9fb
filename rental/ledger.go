package rental

import (
	"errors"
	"time"

	"github.com/velobg/rental-backend/geo"
)

var (
	ErrNotFound     = errors.New("rental not found")
	ErrActiveRental = errors.New("user already has an active rental")
	ErrNotActive    = errors.New("rental is not active")
)

// Find returns the rental with the given id.
func Find(rentals []Rental, id string) (Rental, bool) {
	for _, r := range rentals {
		if r.ID == id {
			return r, true
		}
	}
	return Rental{}, false
}

// ActiveFor returns the user's active rental, if any.
func ActiveFor(rentals []Rental, userID string) (Rental, bool) {
	for _, r := range rentals {
		if r.UserID == userID && r.Status == StatusActive {
			return r, true
		}
	}
	return Rental{}, false
}

// HasActive reports whether the user holds an active rental.
func HasActive(rentals []Rental, userID string) bool {
	_, ok := ActiveFor(rentals, userID)
	return ok
}

// ActiveForBike returns the active rental referencing a bike, if any.
func ActiveForBike(rentals []Rental, bikeID string) (Rental, bool) {
	for _, r := range rentals {
		if r.BikeID == bikeID && r.Status == StatusActive {
			return r, true
		}
	}
	return Rental{}, false
}

// Open appends a new active rental for the user. Fails with ErrActiveRental
// if the user already holds one. The input slice is never mutated.
func Open(rentals []Rental, userID, bikeID string, start *geo.Point, now time.Time) ([]Rental, Rental, error) {
	if HasActive(rentals, userID) {
		return nil, Rental{}, ErrActiveRental
	}

	r := Rental{
		ID:       NewID(),
		UserID:   userID,
		BikeID:   bikeID,
		Status:   StatusActive,
		StartAt:  now,
		StartPos: start,
	}

	next := make([]Rental, len(rentals), len(rentals)+1)
	copy(next, rentals)
	return append(next, r), r, nil
}

// Close finishes an active rental, recording the end position, total price
// and return photo. The active to finished transition is one-way; closing a
// rental that is not active fails with ErrNotActive.
func Close(rentals []Rental, id string, end geo.Point, totalPrice float64, photoRef string, now time.Time) ([]Rental, Rental, error) {
	r, ok := Find(rentals, id)
	if !ok {
		return nil, Rental{}, ErrNotFound
	}
	if r.Status != StatusActive {
		return nil, Rental{}, ErrNotActive
	}

	endAt := now
	r.Status = StatusFinished
	r.EndAt = &endAt
	r.EndPos = &end
	r.TotalPrice = &totalPrice
	r.ReturnPhoto = photoRef

	next := make([]Rental, len(rentals))
	for i, cand := range rentals {
		if cand.ID == id {
			next[i] = r
		} else {
			next[i] = cand
		}
	}
	return next, r, nil
}
