package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/pstoolkit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterApproveLoginAndStore(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id, err := e.identity.Register(ctx, "alice", "Secret123!", models.Profile{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, e.status(t, id))

	require.NoError(t, e.lifecycle.Approve(ctx, id))

	u, err := e.identity.Login(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	_, err = e.vault.Add(ctx, u.ID, "email", "mail-pass")
	require.NoError(t, err)

	list, err := e.vault.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "email", list[0].Label)
	assert.Equal(t, "mail-pass", list[0].Secret)
}
