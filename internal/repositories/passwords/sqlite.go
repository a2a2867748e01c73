package passwords

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pstoolkit/internal/dbx"
	"github.com/dmitrijs2005/pstoolkit/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, rec *models.PasswordRecord) (int64, error) {
	query := `INSERT INTO passwords (user_id, label, password) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, rec.UserID, rec.Label, rec.EncryptedSecret)
	if err != nil {
		return 0, fmt.Errorf("failed to insert password: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	rec.ID = id
	return id, nil
}

// ListByUser returns the rows owned by userID in insertion order.
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID int64) ([]models.PasswordRecord, error) {
	query := `SELECT id, user_id, label, password FROM passwords WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select passwords: %w", err)
	}
	defer rows.Close()

	var result []models.PasswordRecord
	for rows.Next() {
		var item models.PasswordRecord
		if err := rows.Scan(&item.ID, &item.UserID, &item.Label, &item.EncryptedSecret); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) UpdateSecret(ctx context.Context, id int64, encrypted string) (int64, error) {
	n, err := dbx.RowsAffected(ctx, r.db, `UPDATE passwords SET password = ? WHERE id = ?`, encrypted, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update password: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := dbx.RowsAffected(ctx, r.db, `DELETE FROM passwords WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete password: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM passwords`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count passwords: %w", err)
	}
	return n, nil
}
