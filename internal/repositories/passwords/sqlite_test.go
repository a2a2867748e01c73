package passwords

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/pstoolkit/internal/models"
	"github.com/dmitrijs2005/pstoolkit/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), storage.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`INSERT INTO users (id, username, password, status) VALUES
	  (1, 'alice', 'h', 'Approved'),
	  (2, 'bob', 'h', 'Approved')`)
	require.NoError(t, err)
	return db
}

func TestInsertAndListByUser(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	rec := &models.PasswordRecord{UserID: 1, Label: "email", EncryptedSecret: "ct1"}
	id, err := r.Insert(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)

	_, err = r.Insert(ctx, &models.PasswordRecord{UserID: 1, Label: "bank", EncryptedSecret: "ct2"})
	require.NoError(t, err)
	_, err = r.Insert(ctx, &models.PasswordRecord{UserID: 2, Label: "other", EncryptedSecret: "ct3"})
	require.NoError(t, err)

	got, err := r.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "email", got[0].Label)
	assert.Equal(t, "ct1", got[0].EncryptedSecret)
	assert.Equal(t, "bank", got[1].Label)

	none, err := r.ListByUser(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateAndDelete_MissingIdsAreZeroRows(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	id, err := r.Insert(ctx, &models.PasswordRecord{UserID: 1, Label: "email", EncryptedSecret: "ct1"})
	require.NoError(t, err)

	n, err := r.UpdateSecret(ctx, id, "ct9")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = r.UpdateSecret(ctx, 999, "ct9")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = r.Delete(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	count, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	n, err = r.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err = r.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInsert_UnknownOwnerRejected(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Insert(context.Background(), &models.PasswordRecord{UserID: 77, Label: "x", EncryptedSecret: "y"})
	require.Error(t, err)
}
