package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/pstoolkit/internal/common"
	"github.com/dmitrijs2005/pstoolkit/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVault_CRUD(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.approved(t, "alice")
	bob := e.approved(t, "bob")

	id, err := e.vault.Add(ctx, alice, "email", "hunter2")
	require.NoError(t, err)
	_, err = e.vault.Add(ctx, bob, "bank", "1234")
	require.NoError(t, err)

	raw, err := e.rm.Passwords(e.db).ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.NotEqual(t, "hunter2", raw[0].EncryptedSecret)

	list, err := e.vault.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "email", list[0].Label)
	assert.Equal(t, "hunter2", list[0].Secret)

	require.NoError(t, e.vault.Update(ctx, id, "correct horse"))
	list, err = e.vault.List(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "correct horse", list[0].Secret)

	require.NoError(t, e.vault.Delete(ctx, id))
	list, err = e.vault.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = e.vault.List(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestVault_MissingIDsAreNoOps(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.approved(t, "alice")
	_, err := e.vault.Add(ctx, alice, "email", "x")
	require.NoError(t, err)

	before, err := e.rm.Passwords(e.db).Count(ctx)
	require.NoError(t, err)

	assert.NoError(t, e.vault.Delete(ctx, 9999))
	assert.NoError(t, e.vault.Update(ctx, 9999, "y"))

	after, err := e.rm.Passwords(e.db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestVault_EmptySecretRoundTrips(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.approved(t, "alice")

	_, err := e.vault.Add(ctx, alice, "blank", "")
	require.NoError(t, err)
	list, err := e.vault.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "", list[0].Secret)
}

func TestVault_ListWithWrongKeyFails(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.approved(t, "alice")
	_, err := e.vault.Add(ctx, alice, "email", "x")
	require.NoError(t, err)

	other, err := cryptox.NewService(common.GenerateRandByteArray(cryptox.KeySize))
	require.NoError(t, err)
	v := NewVaultService(e.db, e.rm, other)

	_, err = v.List(ctx, alice)
	assert.ErrorIs(t, err, common.ErrDecryption)
}

type failingCipher struct{}

func (failingCipher) Encrypt(string) (string, error) { return "", errors.New("boom") }
func (failingCipher) Decrypt(string) (string, error) { return "", errors.New("boom") }

func TestVault_EncryptErrorStoresNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.approved(t, "alice")

	v := NewVaultService(e.db, e.rm, failingCipher{})
	_, err := v.Add(ctx, alice, "email", "x")
	require.Error(t, err)

	n, err := e.rm.Passwords(e.db).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
