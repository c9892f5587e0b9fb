package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("lozinka123")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "lozinka123"))
	assert.False(t, CheckPassword(hash, "pogresna"))
}

func TestUsernameAndEmailTaken(t *testing.T) {
	users := []User{
		{ID: "usr_1", Username: "Marko", Email: "marko@example.com"},
	}
	assert.True(t, UsernameTaken(users, "marko"))
	assert.False(t, UsernameTaken(users, "jovana"))
	assert.True(t, EmailTaken(users, "MARKO@example.com"))
	assert.False(t, EmailTaken(users, "jovana@example.com"))
}

func TestPublicStripsHash(t *testing.T) {
	u := User{ID: "usr_1", Username: "marko", PasswordHash: "secret"}
	assert.Empty(t, u.Public().PasswordHash)
	assert.Equal(t, "secret", u.PasswordHash, "original value untouched")
}
