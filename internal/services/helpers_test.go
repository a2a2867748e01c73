package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/pstoolkit/internal/common"
	"github.com/dmitrijs2005/pstoolkit/internal/cryptox"
	"github.com/dmitrijs2005/pstoolkit/internal/models"
	"github.com/dmitrijs2005/pstoolkit/internal/repositories/repomanager"
	"github.com/dmitrijs2005/pstoolkit/internal/storage"
	"github.com/stretchr/testify/require"
)

type env struct {
	db        *sql.DB
	rm        repomanager.RepositoryManager
	identity  *IdentityService
	lifecycle *LifecycleService
	vault     *VaultService
	ledger    *LedgerService
	stats     *StatsService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := storage.Open(context.Background(), storage.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	c, err := cryptox.NewService(common.GenerateRandByteArray(cryptox.KeySize))
	require.NoError(t, err)

	rm := repomanager.NewSQLiteRepositoryManager()
	clock := testClock()

	e := &env{
		db:        db,
		rm:        rm,
		identity:  NewIdentityService(db, rm),
		lifecycle: NewLifecycleService(db, rm),
		vault:     NewVaultService(db, rm, c),
		ledger:    NewLedgerService(db, rm),
		stats:     NewStatsService(db, rm),
	}
	e.lifecycle.now = clock
	e.ledger.now = clock
	return e
}

// testClock ticks one minute per call so ordering by timestamp is stable.
func testClock() func() time.Time {
	t := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func (e *env) register(t *testing.T, name string) int64 {
	t.Helper()
	id, err := e.identity.Register(context.Background(), name, "pw-"+name, models.Profile{})
	require.NoError(t, err)
	return id
}

func (e *env) approved(t *testing.T, name string) int64 {
	t.Helper()
	id := e.register(t, name)
	require.NoError(t, e.lifecycle.Approve(context.Background(), id))
	return id
}

func (e *env) status(t *testing.T, id int64) models.UserStatus {
	t.Helper()
	u, err := e.identity.Get(context.Background(), id)
	require.NoError(t, err)
	return u.Status
}
