package client

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	store, err := NewSessionStore(path)
	require.NoError(t, err)

	_, ok := store.ActiveSession()
	assert.False(t, ok, "fresh store should have no active session")

	store.Put("alice", "token-a", now)
	store.Put("bob", "token-b", now)
	require.NoError(t, store.Save())

	reloaded, err := NewSessionStore(path)
	require.NoError(t, err)

	active, ok := reloaded.ActiveSession()
	require.True(t, ok)
	assert.Equal(t, "bob", active.Username, "last login becomes active")
	assert.Equal(t, "token-b", active.Token)
	assert.Len(t, reloaded.Sessions, 2)
}

func TestSessionStoreRemoveClearsActive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	store, err := NewSessionStore(path)
	require.NoError(t, err)

	store.Put("alice", "token-a", now)
	store.Remove("alice")

	_, ok := store.ActiveSession()
	assert.False(t, ok)
	assert.Empty(t, store.Sessions)
}

func TestSessionStoreMissingFileIsEmpty(t *testing.T) {
	store, err := NewSessionStore(filepath.Join(t.TempDir(), "nope", "sessions.json"))
	require.NoError(t, err)
	assert.Empty(t, store.Sessions)
}
