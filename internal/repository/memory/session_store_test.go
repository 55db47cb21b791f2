package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, "user-1", session.UserID)
	assert.True(t, session.ExpiresAt.After(session.CreatedAt))

	got, err := store.Get(ctx, session.SessionID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session.SessionID, got.SessionID)
	assert.Equal(t, "user-1", got.UserID)
}

func TestSessionStoreGetMiss(t *testing.T) {
	store := NewSessionStore()

	got, err := store.Get(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStoreDelete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session, err := store.Create(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, session.SessionID))

	got, err := store.Get(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting a missing session is not an error
	require.NoError(t, store.Delete(ctx, session.SessionID))
}

func TestSessionStoreDistinctIDs(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	first, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	second, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)
}
