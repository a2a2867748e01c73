package requests

import (
	"context"
	"time"

	"github.com/dmitrijs2005/pstoolkit/internal/models"
)

type FeedbackRepository interface {
	Insert(ctx context.Context, f *models.Feedback) (int64, error)
	ListByStatus(ctx context.Context, status models.FeedbackStatus) ([]models.Feedback, error)
	Resolve(ctx context.Context, id int64) (int64, error)
	CountByStatus(ctx context.Context, status models.FeedbackStatus) (int, error)
}

type LockRepository interface {
	Insert(ctx context.Context, rec *models.LockRecord) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.LockRecord, error)
	// FindOpenByUser returns the user's newest record that is not Unlocked.
	FindOpenByUser(ctx context.Context, userID int64) (*models.LockRecord, error)
	// Reopen rewrites reason, timestamp and status of an existing record.
	Reopen(ctx context.Context, id int64, reason string, status models.LockStatus, at time.Time) error
	Transition(ctx context.Context, id int64, from, to models.LockStatus) (bool, error)
	ListByStatus(ctx context.Context, status models.LockStatus) ([]models.LockRecord, error)
	CountByStatus(ctx context.Context, status models.LockStatus) (int, error)
}

type AuditRepository interface {
	Insert(ctx context.Context, a *models.AuditRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.AuditRequest, error)
	ListByStatus(ctx context.Context, status models.AuditStatus) ([]models.AuditRequest, error)
	Complete(ctx context.Context, id int64) (int64, error)
	CountByStatus(ctx context.Context, status models.AuditStatus) (int, error)
}
