// Package rental owns the rental ledger and its state machine. A rental is
// opened when a user unlocks a bike and transitions exactly once from active
// to finished; the ledger is append-only history after that.
package rental

import (
	"time"

	"github.com/google/uuid"

	"github.com/velobg/rental-backend/geo"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

type Rental struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	BikeID string `json:"bikeId"`
	Status Status `json:"status"`

	StartAt time.Time  `json:"startAt"`
	EndAt   *time.Time `json:"endAt,omitempty"`

	StartPos *geo.Point `json:"startPos,omitempty"`
	EndPos   *geo.Point `json:"endPos,omitempty"`

	// TotalPrice is set exactly once, when the rental finishes.
	TotalPrice *float64 `json:"totalPrice,omitempty"`
	// ReturnPhoto references the mandatory return photo; never empty on a
	// finished rental.
	ReturnPhoto string `json:"returnPhoto,omitempty"`
}

// NewID returns a fresh rental identifier.
func NewID() string {
	return "ren_" + uuid.NewString()
}
