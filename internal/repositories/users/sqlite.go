package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pstoolkit/internal/common"
	"github.com/dmitrijs2005/pstoolkit/internal/dbx"
	"github.com/dmitrijs2005/pstoolkit/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	query := `INSERT INTO users (username, password, status) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, username, passwordHash, string(models.StatusPending))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, common.ErrDuplicateUsername
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// isUniqueViolation matches only UNIQUE failures. The driver reports extended
// result codes, so NOT NULL, CHECK and foreign-key failures stay distinct.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, username, password, status FROM users WHERE id = ?`
	return r.getOne(ctx, query, id)
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password, status FROM users WHERE username = ?`
	return r.getOne(ctx, query, username)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// List returns every user with its profile, oldest first.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.UserWithProfile, error) {
	query := `
		SELECT u.id, u.username, u.password, u.status,
		       p.name, p.email, p.purpose, p.organization
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		ORDER BY u.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	var result []models.UserWithProfile
	for rows.Next() {
		var (
			item                 models.UserWithProfile
			name, email, purpose sql.NullString
			organization         sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.Username, &item.PasswordHash, &item.Status,
			&name, &email, &purpose, &organization); err != nil {
			return nil, err
		}
		item.Profile = models.Profile{
			UserID:       item.ID,
			Name:         fromNull(name),
			Email:        fromNull(email),
			Purpose:      fromNull(purpose),
			Organization: fromNull(organization),
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) SetStatus(ctx context.Context, id int64, status models.UserStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}
	return nil
}

// CompareAndSetStatus moves user id from status from to status to. It reports
// false when the user does not exist or is in another state.
func (r *SQLiteRepository) CompareAndSetStatus(ctx context.Context, id int64, from, to models.UserStatus) (bool, error) {
	n, err := dbx.RowsAffected(ctx, r.db, `UPDATE users SET status = ? WHERE id = ? AND status = ?`, string(to), id, string(from))
	if err != nil {
		return false, fmt.Errorf("failed to update status: %w", err)
	}
	return n == 1, nil
}

// CountByStatus returns the per-status counts and the total number of users.
func (r *SQLiteRepository) CountByStatus(ctx context.Context) (models.StatusCounts, int, error) {
	var counts models.StatusCounts

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM users GROUP BY status`)
	if err != nil {
		return counts, 0, fmt.Errorf("failed to count users: %w", err)
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var (
			status models.UserStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return counts, 0, err
		}
		counts.Add(status, n)
		total += n
	}
	if err := rows.Err(); err != nil {
		return counts, 0, err
	}
	return counts, total, nil
}

// GetProfile returns the profile of userID. A user without a profile row gets
// an empty profile, not an error.
func (r *SQLiteRepository) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `SELECT name, email, purpose, organization FROM user_profiles WHERE user_id = ?`

	var name, email, purpose, organization sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&name, &email, &purpose, &organization)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.Profile{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &models.Profile{
		UserID:       userID,
		Name:         fromNull(name),
		Email:        fromNull(email),
		Purpose:      fromNull(purpose),
		Organization: fromNull(organization),
	}, nil
}

func (r *SQLiteRepository) UpsertProfile(ctx context.Context, p models.Profile) error {
	query := `INSERT INTO user_profiles (user_id, name, email, purpose, organization)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET name = excluded.name,
				email = excluded.email,
				purpose = excluded.purpose,
				organization = excluded.organization
	`
	_, err := r.db.ExecContext(ctx, query, p.UserID, toNull(p.Name), toNull(p.Email), toNull(p.Purpose), toNull(p.Organization))
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// toNull turns an optional string into a NULL-able query argument.
func toNull(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
