package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store := NewFileStore(path)

	want := Session{
		AccessToken: "tok-abc",
		UserID:      uuid.New(),
		Role:        "PATIENT",
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_SaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(Session{AccessToken: "one", UserID: uuid.New(), Role: "PATIENT"}))
	require.NoError(t, store.Save(Session{AccessToken: "two", UserID: uuid.New(), Role: "PATIENT"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "session.json", entries[0].Name())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "two", got.AccessToken)
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	_, err := store.Load()
	assert.True(t, errors.Is(err, ErrNotLoggedIn))
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(Session{AccessToken: "tok", UserID: uuid.New(), Role: "DOCTOR"}))
	require.NoError(t, store.Clear())

	_, err := store.Load()
	assert.True(t, errors.Is(err, ErrNotLoggedIn))

	// Clearing twice is not an error.
	require.NoError(t, store.Clear())
}

func TestTokenSource_EmptyWhenLoggedOut(t *testing.T) {
	ts := TokenSource{Store: &MemStore{}}

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestTokenSource_ReturnsSavedToken(t *testing.T) {
	store := &MemStore{}
	require.NoError(t, store.Save(Session{AccessToken: "tok-xyz", UserID: uuid.New(), Role: "LAB"}))

	ts := TokenSource{Store: store}
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", tok)
}
