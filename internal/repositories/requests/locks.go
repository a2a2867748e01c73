package requests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pstoolkit/internal/common"
	"github.com/dmitrijs2005/pstoolkit/internal/dbx"
	"github.com/dmitrijs2005/pstoolkit/internal/models"
)

type SQLiteLockRepository struct {
	db dbx.DBTX
}

func NewSQLiteLockRepository(db dbx.DBTX) *SQLiteLockRepository {
	return &SQLiteLockRepository{db: db}
}

const lockColumns = `id, user_id, username, reason, timestamp, status`

func (r *SQLiteLockRepository) Insert(ctx context.Context, rec *models.LockRecord) (int64, error) {
	query := `INSERT INTO account_locks (user_id, username, reason, timestamp, status) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, rec.UserID, rec.Username, rec.Reason, formatTime(rec.CreatedAt), string(rec.Status))
	if err != nil {
		return 0, fmt.Errorf("failed to insert lock record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	rec.ID = id
	return id, nil
}

func (r *SQLiteLockRepository) GetByID(ctx context.Context, id int64) (*models.LockRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+lockColumns+` FROM account_locks WHERE id = ?`, id)
	return scanLock(row)
}

func (r *SQLiteLockRepository) FindOpenByUser(ctx context.Context, userID int64) (*models.LockRecord, error) {
	query := `SELECT ` + lockColumns + ` FROM account_locks
			WHERE user_id = ? AND status <> ? ORDER BY id DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, userID, string(models.LockUnlocked))
	return scanLock(row)
}

func scanLock(row *sql.Row) (*models.LockRecord, error) {
	var (
		rec models.LockRecord
		ts  string
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Username, &rec.Reason, &ts, &rec.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if rec.CreatedAt, err = parseTime(ts); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *SQLiteLockRepository) Reopen(ctx context.Context, id int64, reason string, status models.LockStatus, at time.Time) error {
	query := `UPDATE account_locks SET reason = ?, timestamp = ?, status = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, reason, formatTime(at), string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update lock record: %w", err)
	}
	return nil
}

func (r *SQLiteLockRepository) Transition(ctx context.Context, id int64, from, to models.LockStatus) (bool, error) {
	n, err := dbx.RowsAffected(ctx, r.db, `UPDATE account_locks SET status = ? WHERE id = ? AND status = ?`,
		string(to), id, string(from))
	if err != nil {
		return false, fmt.Errorf("failed to update lock record: %w", err)
	}
	return n == 1, nil
}

func (r *SQLiteLockRepository) ListByStatus(ctx context.Context, status models.LockStatus) ([]models.LockRecord, error) {
	query := `SELECT ` + lockColumns + ` FROM account_locks WHERE status = ? ORDER BY timestamp DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to select lock records: %w", err)
	}
	defer rows.Close()

	var result []models.LockRecord
	for rows.Next() {
		var (
			item models.LockRecord
			ts   string
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.Username, &item.Reason, &ts, &item.Status); err != nil {
			return nil, err
		}
		if item.CreatedAt, err = parseTime(ts); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteLockRepository) CountByStatus(ctx context.Context, status models.LockStatus) (int, error) {
	return countByStatus(ctx, r.db, "account_locks", string(status))
}
