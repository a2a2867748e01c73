// Package common defines sentinel errors and small helpers shared by the
// storage, service and presentation layers of the toolkit. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Registration and login.
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotApproved = errors.New("account not approved")

	// Lifecycle errors.
	ErrInvalidTransition = errors.New("invalid status transition")

	// Crypto errors.
	ErrDecryption    = errors.New("decryption failed")
	ErrInvalidLength = errors.New("invalid password length")
)
