// Package memory is an in-process blob store, the default backend and
// the one the tests use.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"fintrack/internal/ledger"
)

type Store struct {
	mu   sync.Mutex
	blob []byte
}

func New() *Store {
	return &Store{}
}

func (s *Store) Load(_ context.Context) (*ledger.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blob == nil {
		return nil, nil
	}
	var st ledger.State
	if err := json.Unmarshal(s.blob, &st); err != nil {
		return nil, fmt.Errorf("decode state blob: %w", err)
	}
	return &st, nil
}

func (s *Store) Save(_ context.Context, state ledger.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state blob: %w", err)
	}
	s.mu.Lock()
	s.blob = data
	s.mu.Unlock()
	return nil
}
