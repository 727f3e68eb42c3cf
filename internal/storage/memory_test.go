package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"link_librarian/internal/model"
)

func TestMemoryCredentialStoreFindMissing(t *testing.T) {
	store := NewMemoryCredentialStore()

	_, err := store.Find(context.Background(), "T404")
	assert.ErrorIs(t, err, ErrCredentialNotFound)
}

func TestMemoryCredentialStoreSaveOverwrites(t *testing.T) {
	store := NewMemoryCredentialStore()
	ctx := context.Background()

	first := &model.TenantCredential{TeamID: "T1", BotUserID: "B1", BotAccessToken: "xoxb-first"}
	require.NoError(t, store.Save(ctx, first))

	// a reinstall replaces the record wholesale, last write wins
	second := &model.TenantCredential{TeamID: "T1", BotUserID: "B1", BotAccessToken: "xoxb-second"}
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Find(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, "xoxb-second", got.BotAccessToken)
	assert.Empty(t, got.UserAccessToken)
}

func TestMemoryCredentialStoreCopies(t *testing.T) {
	store := NewMemoryCredentialStore()
	ctx := context.Background()

	cred := &model.TenantCredential{TeamID: "T1", BotUserID: "B1"}
	require.NoError(t, store.Save(ctx, cred))
	cred.BotUserID = "mutated"

	got, err := store.Find(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, "B1", got.BotUserID)
}
