package users

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pstoolkit/internal/models"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db), mock
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).
		WithArgs("alice", "h", "Pending").
		WillReturnError(errors.New("disk I/O"))

	_, err := repo.Create(context.Background(), "alice", "h")
	if err == nil || !regexp.MustCompile(`db error: .*disk I/O`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsername_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*username,\s*password,\s*status\s+FROM\s+users\s+WHERE\s+username\s*=\s*\?$`).
		WithArgs("alice").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetByUsername(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestCompareAndSetStatus_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^UPDATE\s+users\s+SET\s+status`).
		WithArgs("Approved", int64(7), "Pending").
		WillReturnError(errors.New("locked"))

	_, err := repo.CompareAndSetStatus(context.Background(), 7, models.StatusPending, models.StatusApproved)
	require.ErrorContains(t, err, "failed to update status")
}

func TestCountByStatus_ScanError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"status", "count"}).AddRow("Pending", "not-a-number")
	mock.ExpectQuery(`(?s)^SELECT\s+status,\s*COUNT`).WillReturnRows(rows)

	_, _, err := repo.CountByStatus(context.Background())
	require.Error(t, err)
}
