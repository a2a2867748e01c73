package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	a := NewAdminAuth("admin", string(hash))

	assert.Equal(t, "admin", a.Username())
	assert.True(t, a.Authenticate("admin", "admin123"))
	assert.False(t, a.Authenticate("admin", "admin124"))
	assert.False(t, a.Authenticate("Admin", "admin123"))
	assert.False(t, a.Authenticate("", ""))
}

func TestAdminAuth_BadHash(t *testing.T) {
	a := NewAdminAuth("admin", "not-a-bcrypt-hash")
	assert.False(t, a.Authenticate("admin", "admin123"))
}
