package models

// Stats is the admin dashboard summary.
type Stats struct {
	TotalUsers      int
	UsersByStatus   StatusCounts
	PasswordRecords int
	PendingFeedback int
	PendingUnlocks  int
	PendingAudits   int
}

// StatusCounts holds the number of accounts per status.
type StatusCounts struct {
	Pending   int
	Approved  int
	Rejected  int
	Suspended int
	Locked    int
}

// Add counts n accounts in status s. Unknown statuses are ignored.
func (c *StatusCounts) Add(s UserStatus, n int) {
	switch s {
	case StatusPending:
		c.Pending += n
	case StatusApproved:
		c.Approved += n
	case StatusRejected:
		c.Rejected += n
	case StatusSuspended:
		c.Suspended += n
	case StatusLocked:
		c.Locked += n
	}
}
