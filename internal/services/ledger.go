package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/pstoolkit/internal/models"
	"github.com/dmitrijs2005/pstoolkit/internal/repositories/repomanager"
)

// LedgerService runs the feedback and audit queues and lists pending unlock
// requests. Resolving an entry that is missing or already closed does
// nothing and is not an error.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager) *LedgerService {
	return &LedgerService{db: db, repomanager: m, now: time.Now}
}

func (s *LedgerService) SubmitFeedback(ctx context.Context, u *models.User, text string) (int64, error) {
	return s.repomanager.Feedback(s.db).Insert(ctx, &models.Feedback{
		UserID:    u.ID,
		Username:  u.Username,
		Text:      text,
		CreatedAt: s.now(),
		Status:    models.FeedbackPending,
	})
}

// PendingFeedback lists open feedback, newest first.
func (s *LedgerService) PendingFeedback(ctx context.Context) ([]models.Feedback, error) {
	return s.repomanager.Feedback(s.db).ListByStatus(ctx, models.FeedbackPending)
}

// ResolveFeedback reports whether an open entry was closed.
func (s *LedgerService) ResolveFeedback(ctx context.Context, id int64) (bool, error) {
	n, err := s.repomanager.Feedback(s.db).Resolve(ctx, id)
	return n > 0, err
}

func (s *LedgerService) SubmitAudit(ctx context.Context, u *models.User) (int64, error) {
	return s.repomanager.Audits(s.db).Insert(ctx, &models.AuditRequest{
		UserID:    u.ID,
		Username:  u.Username,
		CreatedAt: s.now(),
		Status:    models.AuditPending,
	})
}

func (s *LedgerService) PendingAudits(ctx context.Context) ([]models.AuditRequest, error) {
	return s.repomanager.Audits(s.db).ListByStatus(ctx, models.AuditPending)
}

// GetAudit returns the audit request id or common.ErrorNotFound.
func (s *LedgerService) GetAudit(ctx context.Context, id int64) (*models.AuditRequest, error) {
	return s.repomanager.Audits(s.db).GetByID(ctx, id)
}

// CompleteAudit reports whether a pending request was closed.
func (s *LedgerService) CompleteAudit(ctx context.Context, id int64) (bool, error) {
	n, err := s.repomanager.Audits(s.db).Complete(ctx, id)
	return n > 0, err
}

// PendingUnlocks lists lock records waiting for the admin, newest first.
func (s *LedgerService) PendingUnlocks(ctx context.Context) ([]models.LockRecord, error) {
	return s.repomanager.Locks(s.db).ListByStatus(ctx, models.LockUnlockRequested)
}
