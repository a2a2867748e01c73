package requests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pstoolkit/internal/common"
	"github.com/dmitrijs2005/pstoolkit/internal/dbx"
	"github.com/dmitrijs2005/pstoolkit/internal/models"
)

type SQLiteAuditRepository struct {
	db dbx.DBTX
}

func NewSQLiteAuditRepository(db dbx.DBTX) *SQLiteAuditRepository {
	return &SQLiteAuditRepository{db: db}
}

func (r *SQLiteAuditRepository) Insert(ctx context.Context, a *models.AuditRequest) (int64, error) {
	query := `INSERT INTO audit_requests (user_id, username, timestamp, status) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, a.UserID, a.Username, formatTime(a.CreatedAt), string(a.Status))
	if err != nil {
		return 0, fmt.Errorf("failed to insert audit request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	a.ID = id
	return id, nil
}

func (r *SQLiteAuditRepository) GetByID(ctx context.Context, id int64) (*models.AuditRequest, error) {
	query := `SELECT id, user_id, username, timestamp, status FROM audit_requests WHERE id = ?`

	var (
		a  models.AuditRequest
		ts string
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.UserID, &a.Username, &ts, &a.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if a.CreatedAt, err = parseTime(ts); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SQLiteAuditRepository) ListByStatus(ctx context.Context, status models.AuditStatus) ([]models.AuditRequest, error) {
	query := `SELECT id, user_id, username, timestamp, status
			FROM audit_requests WHERE status = ? ORDER BY timestamp DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to select audit requests: %w", err)
	}
	defer rows.Close()

	var result []models.AuditRequest
	for rows.Next() {
		var (
			item models.AuditRequest
			ts   string
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.Username, &ts, &item.Status); err != nil {
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

func (r *SQLiteAuditRepository) Complete(ctx context.Context, id int64) (int64, error) {
	n, err := dbx.RowsAffected(ctx, r.db, `UPDATE audit_requests SET status = ? WHERE id = ? AND status = ?`,
		string(models.AuditCompleted), id, string(models.AuditPending))
	if err != nil {
		return 0, fmt.Errorf("failed to complete audit request: %w", err)
	}
	return n, nil
}

func (r *SQLiteAuditRepository) CountByStatus(ctx context.Context, status models.AuditStatus) (int, error) {
	return countByStatus(ctx, r.db, "audit_requests", string(status))
}
