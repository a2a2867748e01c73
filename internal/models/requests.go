package models

import "time"

// TimestampLayout is how request timestamps are stored and shown.
const TimestampLayout = "2006-01-02 15:04:05"

type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "Pending"
	FeedbackResolved FeedbackStatus = "Resolved"
)

// Feedback is free text a user sends to the admin.
type Feedback struct {
	ID        int64
	UserID    int64
	Username  string
	Text      string
	CreatedAt time.Time
	Status    FeedbackStatus
}

type LockStatus string

const (
	LockLocked          LockStatus = "Locked"
	LockUnlockRequested LockStatus = "Unlock Requested"
	LockUnlocked        LockStatus = "Unlocked"
)

// LockRecord tracks one lock episode of an account, from self-lock through
// the unlock request to the admin unlock. At most one record per user is not
// Unlocked.
type LockRecord struct {
	ID        int64
	UserID    int64
	Username  string
	Reason    string
	CreatedAt time.Time
	Status    LockStatus
}

type AuditStatus string

const (
	AuditPending   AuditStatus = "Pending"
	AuditCompleted AuditStatus = "Completed"
)

// AuditRequest asks the admin to review a user's activity.
type AuditRequest struct {
	ID        int64
	UserID    int64
	Username  string
	CreatedAt time.Time
	Status    AuditStatus
}
