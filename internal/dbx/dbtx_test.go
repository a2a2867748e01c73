package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openLabels(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE labels (id INTEGER PRIMARY KEY, v TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func labelCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM labels`).Scan(&n))
	return n
}

func TestWithTx(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name     string
		fn       func(ctx context.Context, tx DBTX) error
		wantErr  error
		wantRows int
	}{
		{
			name: "commit",
			fn: func(ctx context.Context, tx DBTX) error {
				_, err := tx.ExecContext(ctx, `INSERT INTO labels(v) VALUES ('a'), ('b')`)
				return err
			},
			wantRows: 2,
		},
		{
			name: "rollback on error",
			fn: func(ctx context.Context, tx DBTX) error {
				if _, err := tx.ExecContext(ctx, `INSERT INTO labels(v) VALUES ('a')`); err != nil {
					return err
				}
				return errBoom
			},
			wantErr: errBoom,
		},
		{
			name: "statement error",
			fn: func(ctx context.Context, tx DBTX) error {
				_, err := tx.ExecContext(ctx, `INSERT INTO labels(v) VALUES (NULL)`)
				return err
			},
			wantErr: errors.New("any"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openLabels(t)

			err := WithTx(context.Background(), db, nil, tt.fn)
			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
			case errors.Is(tt.wantErr, errBoom):
				require.ErrorIs(t, err, errBoom)
			default:
				require.Error(t, err)
			}
			assert.Equal(t, tt.wantRows, labelCount(t, db))
		})
	}
}

func TestWithTx_PanicRollsBackAndPropagates(t *testing.T) {
	db := openLabels(t)

	assert.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO labels(v) VALUES ('a')`)
			require.NoError(t, err)
			panic("kaput")
		})
	})
	assert.Equal(t, 0, labelCount(t, db))
}

func TestWithTx_BeginFailsOnClosedDB(t *testing.T) {
	db := openLabels(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "begin tx")
	assert.False(t, called)
}

func TestRowsAffected(t *testing.T) {
	db := openLabels(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO labels(v) VALUES ('a'), ('b')`)
	require.NoError(t, err)

	n, err := RowsAffected(ctx, db, `UPDATE labels SET v = 'c'`)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = RowsAffected(ctx, db, `DELETE FROM labels WHERE id = ?`, 999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = RowsAffected(ctx, db, `DELETE FROM missing`)
	assert.Error(t, err)
}
