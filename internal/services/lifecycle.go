package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pstoolkit/internal/common"
	"github.com/dmitrijs2005/pstoolkit/internal/dbx"
	"github.com/dmitrijs2005/pstoolkit/internal/models"
	"github.com/dmitrijs2005/pstoolkit/internal/repositories/repomanager"
)

// LifecycleService is the only writer of an account's status. The legal moves
// are:
//
//	Pending   --approve-->   Approved
//	Pending   --reject-->    Rejected
//	Approved  --suspend-->   Suspended --unsuspend--> Approved
//	Approved  --lock-->      Locked    --unlock-->    Approved
//
// Every move is a single conditional UPDATE, so a user that changed state
// underneath the caller is never moved twice. Anything else fails with
// common.ErrInvalidTransition; an unknown user id with common.ErrorNotFound.
type LifecycleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewLifecycleService(db *sql.DB, m repomanager.RepositoryManager) *LifecycleService {
	return &LifecycleService{db: db, repomanager: m, now: time.Now}
}

func (s *LifecycleService) Approve(ctx context.Context, userID int64) error {
	return s.transition(ctx, s.db, userID, "approve", models.StatusPending, models.StatusApproved)
}

func (s *LifecycleService) Reject(ctx context.Context, userID int64) error {
	return s.transition(ctx, s.db, userID, "reject", models.StatusPending, models.StatusRejected)
}

func (s *LifecycleService) Suspend(ctx context.Context, userID int64) error {
	return s.transition(ctx, s.db, userID, "suspend", models.StatusApproved, models.StatusSuspended)
}

func (s *LifecycleService) Unsuspend(ctx context.Context, userID int64) error {
	return s.transition(ctx, s.db, userID, "unsuspend", models.StatusSuspended, models.StatusApproved)
}

// ToggleSuspension suspends an Approved user and reinstates a Suspended one.
// It returns the status the user ends up in.
func (s *LifecycleService) ToggleSuspension(ctx context.Context, userID int64) (models.UserStatus, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	switch u.Status {
	case models.StatusApproved:
		return models.StatusSuspended, s.Suspend(ctx, userID)
	case models.StatusSuspended:
		return models.StatusApproved, s.Unsuspend(ctx, userID)
	default:
		return u.Status, fmt.Errorf("%w: cannot suspend or unsuspend user in status %s", common.ErrInvalidTransition, u.Status)
	}
}

// LockSelf locks the caller's own Approved account and opens a lock record.
// Only an admin can undo it. The caller must end the session on success.
func (s *LifecycleService) LockSelf(ctx context.Context, userID int64, reason string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.transition(ctx, tx, userID, "lock", models.StatusApproved, models.StatusLocked); err != nil {
			return err
		}
		u, err := s.repomanager.Users(tx).GetByID(ctx, userID)
		if err != nil {
			return err
		}
		_, err = s.repomanager.Locks(tx).Insert(ctx, &models.LockRecord{
			UserID:    userID,
			Username:  u.Username,
			Reason:    reason,
			CreatedAt: s.now(),
			Status:    models.LockLocked,
		})
		return err
	})
}

// RequestUnlock asks the admin to unlock a Locked account. The user's open
// lock record is moved to "Unlock Requested" with the new reason, or one is
// created if none exists, so repeating the call never adds a second record.
// It returns the id of the lock record.
func (s *LifecycleService) RequestUnlock(ctx context.Context, userID int64, reason string) (int64, error) {
	var id int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if u.Status != models.StatusLocked {
			return fmt.Errorf("%w: cannot request unlock for user in status %s", common.ErrInvalidTransition, u.Status)
		}

		locks := s.repomanager.Locks(tx)
		open, err := locks.FindOpenByUser(ctx, userID)
		switch {
		case err == nil:
			id = open.ID
			return locks.Reopen(ctx, open.ID, reason, models.LockUnlockRequested, s.now())
		case errors.Is(err, common.ErrorNotFound):
			id, err = locks.Insert(ctx, &models.LockRecord{
				UserID:    userID,
				Username:  u.Username,
				Reason:    reason,
				CreatedAt: s.now(),
				Status:    models.LockUnlockRequested,
			})
			return err
		default:
			return err
		}
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// AdminUnlock closes the unlock request lockID and returns its user to
// Approved. A lock record that does not exist or is not in "Unlock Requested"
// yields common.ErrorNotFound.
func (s *LifecycleService) AdminUnlock(ctx context.Context, lockID int64) (*models.LockRecord, error) {
	var rec *models.LockRecord
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		locks := s.repomanager.Locks(tx)
		ok, err := locks.Transition(ctx, lockID, models.LockUnlockRequested, models.LockUnlocked)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: no pending unlock request %d", common.ErrorNotFound, lockID)
		}
		if rec, err = locks.GetByID(ctx, lockID); err != nil {
			return err
		}
		return s.transition(ctx, tx, rec.UserID, "unlock", models.StatusLocked, models.StatusApproved)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *LifecycleService) transition(ctx context.Context, db dbx.DBTX, userID int64, verb string, from, to models.UserStatus) error {
	users := s.repomanager.Users(db)
	ok, err := users.CompareAndSetStatus(ctx, userID, from, to)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	u, err := users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: cannot %s user in status %s", common.ErrInvalidTransition, verb, u.Status)
}
