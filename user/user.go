// Package user
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrNotFound = errors.New("user not found")

// User is a registered mobile-app user.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	// PasswordHash is a bcrypt hash; never serialized to API responses.
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public strips credential material for API responses.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Admin is a console operator. Admins live outside the synced app state.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Find returns the user with the given id.
func Find(users []User, id string) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// UsernameTaken reports whether username collides case-insensitively.
func UsernameTaken(users []User, username string) bool {
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return true
		}
	}
	return false
}

// EmailTaken reports whether email collides case-insensitively.
func EmailTaken(users []User, email string) bool {
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// HashPassword returns a bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewID returns a fresh user identifier.
func NewID() string {
	return "usr_" + uuid.NewString()
}
