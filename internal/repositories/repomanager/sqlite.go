// Package repomanager provides a concrete RepositoryManager for SQLite,
// wiring together repository constructors and the schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pstoolkit/internal/dbx"
	"github.com/dmitrijs2005/pstoolkit/internal/repositories/passwords"
	"github.com/dmitrijs2005/pstoolkit/internal/repositories/requests"
	"github.com/dmitrijs2005/pstoolkit/internal/repositories/users"
	"github.com/dmitrijs2005/pstoolkit/internal/storage"
)

// SQLiteRepositoryManager vends SQLite-backed repository implementations.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Passwords(db dbx.DBTX) passwords.Repository {
	return passwords.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Feedback(db dbx.DBTX) requests.FeedbackRepository {
	return requests.NewSQLiteFeedbackRepository(db)
}

func (m *SQLiteRepositoryManager) Locks(db dbx.DBTX) requests.LockRepository {
	return requests.NewSQLiteLockRepository(db)
}

func (m *SQLiteRepositoryManager) Audits(db dbx.DBTX) requests.AuditRepository {
	return requests.NewSQLiteAuditRepository(db)
}

// runMigrations is a seam for tests.
var runMigrations = storage.RunMigrations

// RunMigrations brings the schema behind db up to date.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db)
}

func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}
