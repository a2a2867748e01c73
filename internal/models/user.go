// Package models defines the toolkit's persisted records and the read models
// returned to the presentation layer.
package models

// UserStatus is the account state. Only the lifecycle service changes it.
type UserStatus string

const (
	StatusPending   UserStatus = "Pending"
	StatusApproved  UserStatus = "Approved"
	StatusRejected  UserStatus = "Rejected"
	StatusSuspended UserStatus = "Suspended"
	StatusLocked    UserStatus = "Locked"
)

// AllStatuses lists every account state in display order.
var AllStatuses = []UserStatus{StatusPending, StatusApproved, StatusRejected, StatusSuspended, StatusLocked}

// User is an account row. PasswordHash is the one-way login digest.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Status       UserStatus
}

// Profile carries the optional registration details, 1:1 with User.
// A nil field is stored as NULL.
type Profile struct {
	UserID       int64
	Name         *string
	Email        *string
	Purpose      *string
	Organization *string
}

// UserWithProfile is a row of the admin user listing.
type UserWithProfile struct {
	User
	Profile Profile
}

// Deref returns the string behind p or "" for nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Optional returns nil for empty s and &s otherwise.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
