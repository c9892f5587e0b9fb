// Package notify records user-facing notifications. Emission is best-effort
// from the rental state machine's point of view; a notification can never
// fail a rental operation.
package notify

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	RelatedRentalID string    `json:"relatedRentalId,omitempty"`
	Read            bool      `json:"read"`
	CreatedAt       time.Time `json:"createdAt"`
}

// New builds a notification record for a user.
func New(userID, title, message, relatedRentalID string, now time.Time) Notification {
	return Notification{
		ID:              "not_" + uuid.NewString(),
		UserID:          userID,
		Title:           title,
		Message:         message,
		RelatedRentalID: relatedRentalID,
		CreatedAt:       now,
	}
}

// ForUser returns the user's notifications, newest first.
func ForUser(notifications []Notification, userID string) []Notification {
	var out []Notification
	for _, n := range notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
