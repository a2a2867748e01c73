package services

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// AdminAuth checks the built-in admin credentials. The password is kept only
// as a bcrypt hash.
type AdminAuth struct {
	username string
	hash     []byte
}

func NewAdminAuth(username, bcryptHash string) *AdminAuth {
	return &AdminAuth{username: username, hash: []byte(bcryptHash)}
}

// Username is the configured admin login name.
func (a *AdminAuth) Username() string { return a.username }

// Authenticate reports whether username and password are the admin's.
// The password hash is checked even when the username is wrong.
func (a *AdminAuth) Authenticate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	err := bcrypt.CompareHashAndPassword(a.hash, []byte(password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false
	}
	return userOK && err == nil
}
