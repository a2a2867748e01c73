package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pstoolkit/internal/models"
	"github.com/dmitrijs2005/pstoolkit/internal/repositories/repomanager"
)

// StatsService builds the admin dashboard summary.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager) *StatsService {
	return &StatsService{db: db, repomanager: m}
}

func (s *StatsService) Collect(ctx context.Context) (*models.Stats, error) {
	var (
		st  models.Stats
		err error
	)
	if st.UsersByStatus, st.TotalUsers, err = s.repomanager.Users(s.db).CountByStatus(ctx); err != nil {
		return nil, err
	}
	if st.PasswordRecords, err = s.repomanager.Passwords(s.db).Count(ctx); err != nil {
		return nil, err
	}
	if st.PendingFeedback, err = s.repomanager.Feedback(s.db).CountByStatus(ctx, models.FeedbackPending); err != nil {
		return nil, err
	}
	if st.PendingUnlocks, err = s.repomanager.Locks(s.db).CountByStatus(ctx, models.LockUnlockRequested); err != nil {
		return nil, err
	}
	if st.PendingAudits, err = s.repomanager.Audits(s.db).CountByStatus(ctx, models.AuditPending); err != nil {
		return nil, err
	}
	return &st, nil
}
