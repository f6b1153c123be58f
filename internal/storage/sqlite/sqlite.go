// Package sqlite persists the ledger blob in a single-row SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fintrack/internal/ledger"

	_ "modernc.org/sqlite"
)

const blobKey = "ledger"

type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (*ledger.State, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM ledger_blobs WHERE key = ?`, blobKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select state blob: %w", err)
	}

	var st ledger.State
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, fmt.Errorf("decode state blob: %w", err)
	}
	return &st, nil
}

func (s *Store) Save(ctx context.Context, state ledger.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state blob: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ledger_blobs (key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		blobKey, payload)
	if err != nil {
		return fmt.Errorf("upsert state blob: %w", err)
	}
	return nil
}
