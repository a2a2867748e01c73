package requests

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pstoolkit/internal/dbx"
	"github.com/dmitrijs2005/pstoolkit/internal/models"
)

type SQLiteFeedbackRepository struct {
	db dbx.DBTX
}

func NewSQLiteFeedbackRepository(db dbx.DBTX) *SQLiteFeedbackRepository {
	return &SQLiteFeedbackRepository{db: db}
}

func (r *SQLiteFeedbackRepository) Insert(ctx context.Context, f *models.Feedback) (int64, error) {
	query := `INSERT INTO feedback (user_id, username, feedback_text, timestamp, status) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, f.UserID, f.Username, f.Text, formatTime(f.CreatedAt), string(f.Status))
	if err != nil {
		return 0, fmt.Errorf("failed to insert feedback: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	f.ID = id
	return id, nil
}

func (r *SQLiteFeedbackRepository) ListByStatus(ctx context.Context, status models.FeedbackStatus) ([]models.Feedback, error) {
	query := `SELECT id, user_id, username, feedback_text, timestamp, status
			FROM feedback WHERE status = ? ORDER BY timestamp DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to select feedback: %w", err)
	}
	defer rows.Close()

	var result []models.Feedback
	for rows.Next() {
		var (
			item models.Feedback
			ts   string
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.Username, &item.Text, &ts, &item.Status); err != nil {
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

func (r *SQLiteFeedbackRepository) Resolve(ctx context.Context, id int64) (int64, error) {
	n, err := dbx.RowsAffected(ctx, r.db, `UPDATE feedback SET status = ? WHERE id = ? AND status = ?`,
		string(models.FeedbackResolved), id, string(models.FeedbackPending))
	if err != nil {
		return 0, fmt.Errorf("failed to resolve feedback: %w", err)
	}
	return n, nil
}

func (r *SQLiteFeedbackRepository) CountByStatus(ctx context.Context, status models.FeedbackStatus) (int, error) {
	return countByStatus(ctx, r.db, "feedback", string(status))
}

// countByStatus counts rows of one of the ledger tables. table is always a
// constant from this package.
func countByStatus(ctx context.Context, db dbx.DBTX, table, status string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE status = ?`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
