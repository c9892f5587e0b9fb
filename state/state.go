// Package state holds the whole application state as a single value and the
// file-backed store that owns it. Every mutation funnels through one commit
// path which replaces the snapshot under a lock, which is what makes
// multi-collection operations like "mark bike rented + open rental" atomic
// from a caller's perspective.
package state

import (
	"github.com/velobg/rental-backend/bike"
	"github.com/velobg/rental-backend/issue"
	"github.com/velobg/rental-backend/notify"
	"github.com/velobg/rental-backend/rental"
	"github.com/velobg/rental-backend/user"
	"github.com/velobg/rental-backend/zone"
)

// AppState is the full application state. Transforms over its collections
// are copy-on-write: a snapshot handed out by the store is never mutated in
// place, so readers can hold one safely while the store moves on.
type AppState struct {
	Users         []user.User           `json:"users"`
	Bikes         []bike.Bike           `json:"bikes"`
	ParkingZones  []zone.ParkingZone    `json:"parkingZones"`
	Rentals       []rental.Rental       `json:"rentals"`
	Notifications []notify.Notification `json:"notifications"`
	Issues        []issue.Issue         `json:"issues"`
}
