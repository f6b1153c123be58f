package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendTypeIsValid(t *testing.T) {
	for _, bt := range []BackendType{MemoryBackend, FileBackend, SQLiteBackend} {
		assert.True(t, bt.IsValid(), bt.String())
	}
	assert.False(t, BackendType("redis").IsValid())
}

func TestOpenMemory(t *testing.T) {
	store, cleanup, err := Open(Config{Type: MemoryBackend})
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.NoError(t, cleanup())
}

func TestOpenFile(t *testing.T) {
	store, cleanup, err := Open(Config{Type: FileBackend, DataDir: t.TempDir()})
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.NoError(t, cleanup())
}

func TestOpenSQLite(t *testing.T) {
	store, cleanup, err := Open(Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "ledger.db"),
	})
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.NoError(t, cleanup())
}

func TestOpenUnknown(t *testing.T) {
	_, _, err := Open(Config{Type: "redis"})
	assert.Error(t, err)
}
