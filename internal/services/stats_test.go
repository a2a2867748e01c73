package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/pstoolkit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_Collect(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.register(t, "pending")
	rejected := e.register(t, "rejected")
	require.NoError(t, e.lifecycle.Reject(ctx, rejected))
	alice := e.approved(t, "alice")
	locked := e.approved(t, "locked")
	require.NoError(t, e.lifecycle.LockSelf(ctx, locked, ""))
	_, err := e.lifecycle.RequestUnlock(ctx, locked, "please")
	require.NoError(t, err)

	_, err = e.vault.Add(ctx, alice, "a", "1")
	require.NoError(t, err)
	_, err = e.vault.Add(ctx, alice, "b", "2")
	require.NoError(t, err)

	u := &models.User{ID: alice, Username: "alice"}
	_, err = e.ledger.SubmitFeedback(ctx, u, "hi")
	require.NoError(t, err)
	_, err = e.ledger.SubmitAudit(ctx, u)
	require.NoError(t, err)

	st, err := e.stats.Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{
		TotalUsers: 4,
		UsersByStatus: models.StatusCounts{
			Pending:  1,
			Approved: 1,
			Rejected: 1,
			Locked:   1,
		},
		PasswordRecords: 2,
		PendingFeedback: 1,
		PendingUnlocks:  1,
		PendingAudits:   1,
	}, *st)
}
