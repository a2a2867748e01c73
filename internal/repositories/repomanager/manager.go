package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pstoolkit/internal/dbx"
	"github.com/dmitrijs2005/pstoolkit/internal/repositories/passwords"
	"github.com/dmitrijs2005/pstoolkit/internal/repositories/requests"
	"github.com/dmitrijs2005/pstoolkit/internal/repositories/users"
)

// RepositoryManager hands out repositories bound to a DB handle or to the
// transaction currently in flight.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Passwords(db dbx.DBTX) passwords.Repository
	Feedback(db dbx.DBTX) requests.FeedbackRepository
	Locks(db dbx.DBTX) requests.LockRepository
	Audits(db dbx.DBTX) requests.AuditRepository
}
