// Package issue
package issue

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("issue not found")

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

// ValidStatus reports whether s is one of the known issue statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Issue is a user-reported problem with a bike or rental.
type Issue struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	BikeID      string `json:"bikeId,omitempty"`
	RentalID    string `json:"rentalId,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl,omitempty"`

	Status    Status `json:"status"`
	AdminNote string `json:"adminNote,omitempty"`

	CreatedAt  time.Time  `json:"createdAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy string     `json:"resolvedBy,omitempty"`
}

// Find returns the issue with the given id.
func Find(issues []Issue, id string) (Issue, bool) {
	for _, i := range issues {
		if i.ID == id {
			return i, true
		}
	}
	return Issue{}, false
}

// SetStatus updates an issue's status and admin note, recording who resolved
// it when the status is terminal. The input slice is never mutated.
func SetStatus(issues []Issue, id string, status Status, adminNote, adminID string, now time.Time) ([]Issue, Issue, error) {
	i, ok := Find(issues, id)
	if !ok {
		return nil, Issue{}, ErrNotFound
	}

	i.Status = status
	i.AdminNote = adminNote
	if status == StatusResolved || status == StatusRejected {
		i.ResolvedAt = &now
		i.ResolvedBy = adminID
	} else {
		i.ResolvedAt = nil
		i.ResolvedBy = ""
	}

	next := make([]Issue, len(issues))
	for idx, cand := range issues {
		if cand.ID == id {
			next[idx] = i
		} else {
			next[idx] = cand
		}
	}
	return next, i, nil
}

// NewID returns a fresh issue identifier.
func NewID() string {
	return "iss_" + uuid.NewString()
}
