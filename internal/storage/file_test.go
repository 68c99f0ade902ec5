package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Write("modules", []byte(`{"a":1}`)))

	data, err := store.Read("modules")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestFileStoreMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read("absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreReplace(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Write("modules", []byte("old")))
	require.NoError(t, store.Write("modules", []byte("new")))

	data, err := store.Read("modules")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestMemoryStoreFailWrites(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Write("modules", []byte("kept")))

	store.FailWrites = assert.AnError
	assert.Error(t, store.Write("modules", []byte("dropped")))

	data, err := store.Read("modules")
	require.NoError(t, err)
	assert.Equal(t, "kept", string(data))
}
