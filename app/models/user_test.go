package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	user, err := CreateUser("ivan", "ivan@example.com", "secret-pass")
	require.NoError(t, err)

	assert.Equal(t, "ivan", user.Name)
	assert.Equal(t, STATUS_ACTIVE, user.Status)
	assert.Equal(t, PLAN_FREE, user.Plan)
	assert.True(t, user.IsActive())

	// the stored password is a hash, never the plaintext
	assert.NotEqual(t, "secret-pass", user.Password)
	assert.True(t, user.CheckPassword("secret-pass"))
	assert.False(t, user.CheckPassword("wrong-pass"))
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "short username", username: "iv", email: "ivan@example.com", password: "secret-pass"},
		{name: "bad email", username: "ivan", email: "not-an-email", password: "secret-pass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateUser(tt.username, tt.email, tt.password)
			assert.Error(t, err)
		})
	}
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret-pass")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("secret-pass", hash))
	assert.False(t, CheckPasswordHash("other", hash))
	assert.False(t, CheckPasswordHash("secret-pass", "not-a-bcrypt-hash"))
}

func TestUserIsActive(t *testing.T) {
	for status, want := range map[string]bool{
		STATUS_ACTIVE:   true,
		STATUS_INACTIVE: false,
		STATUS_DISABLED: false,
	} {
		u := User{Status: status}
		assert.Equal(t, want, u.IsActive(), status)
	}
}
