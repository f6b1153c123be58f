// Package storage defines the outbound persistence port for the ledger.
// Backends treat the state as an opaque blob: load the whole thing, save
// the whole thing, no incremental format.
package storage

import (
	"context"

	"fintrack/internal/ledger"
)

// BlobStore persists full ledger snapshots.
type BlobStore interface {
	// Load returns the stored state, or (nil, nil) when nothing has been
	// saved yet. A parse failure is an error; callers degrade to the
	// zero state either way.
	Load(ctx context.Context) (*ledger.State, error)

	// Save overwrites the stored state with the given snapshot.
	Save(ctx context.Context, state ledger.State) error
}
