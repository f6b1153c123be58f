package storage

import (
	"fmt"

	"fintrack/internal/storage/file"
	"fintrack/internal/storage/memory"
	"fintrack/internal/storage/sqlite"
)

// BackendType selects the persistence backend.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) String() string {
	return string(bt)
}

// IsValid reports whether the backend type is one of the known kinds.
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds what each backend needs to open its store.
type Config struct {
	Type BackendType

	// file backend
	DataDir string

	// sqlite backend
	SQLiteDBPath string
}

// CleanupFunc releases backend resources; always safe to call once.
type CleanupFunc func() error

// Open creates the configured blob store. The returned cleanup closes
// whatever the backend holds open (a no-op for memory and file).
func Open(cfg Config) (BlobStore, CleanupFunc, error) {
	noop := func() error { return nil }

	switch cfg.Type {
	case MemoryBackend:
		return memory.New(), noop, nil

	case FileBackend:
		st, err := file.New(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return st, noop, nil

	case SQLiteBackend:
		st, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return st, st.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend type %q", cfg.Type)
	}
}
