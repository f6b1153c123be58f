// Package services orchestrates the ledger against its persistence port
// and applies caller-level policy the store itself stays agnostic of.
package services

import (
	"context"
	"errors"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
	"fintrack/internal/view"
)

// ErrLedgerEmpty refuses a clear on an already-empty ledger. The store
// itself is idempotent; this is presentation policy.
var ErrLedgerEmpty = errors.New("no transactions to clear")

// TransactionInput carries already-parsed field values for add and
// update. Amount must be positive cents.
type TransactionInput struct {
	Description string
	Amount      core.Money
	Type        core.TransactionType
	Category    string
	Date        core.Date
}

// LedgerService owns a single ledger and writes every successful
// mutation through to the blob store.
type LedgerService struct {
	book  *ledger.Book
	store storage.BlobStore
}

func NewLedgerService(book *ledger.Book, store storage.BlobStore) *LedgerService {
	return &LedgerService{book: book, store: store}
}

// Load restores the persisted state, once, at startup. An absent or
// unreadable blob degrades to the zero state instead of failing.
func (s *LedgerService) Load(ctx context.Context) {
	if s.store == nil {
		return
	}
	st, err := s.store.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Stored ledger unreadable, starting empty",
			applog.FieldError, err,
			applog.FieldComponent, applog.ComponentLedger)
		return
	}
	if st == nil {
		return
	}
	s.book.Restore(*st)
	slog.InfoContext(ctx, "Ledger restored",
		"transactions", s.book.Len(),
		applog.FieldComponent, applog.ComponentLedger)
}

func (s *LedgerService) Add(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	tx, err := s.book.Add(in.Description, in.Amount, in.Type, in.Category, in.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	s.persist(ctx)
	return tx, nil
}

func (s *LedgerService) Update(ctx context.Context, id string, in TransactionInput) (core.Transaction, error) {
	tx, err := s.book.Update(id, in.Description, in.Amount, in.Type, in.Category, in.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	s.persist(ctx)
	return tx, nil
}

func (s *LedgerService) Remove(ctx context.Context, id string) error {
	if err := s.book.Remove(id); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// Clear empties the ledger. Clearing an already-empty ledger is refused
// with ErrLedgerEmpty so the caller can tell the user.
func (s *LedgerService) Clear(ctx context.Context) error {
	if s.book.Len() == 0 {
		return ErrLedgerEmpty
	}
	s.book.Clear()
	s.persist(ctx)
	return nil
}

// SortBy toggles the stored order by the criterion and returns the
// direction now in effect. The reordering is picked up by the next
// write-through save rather than forcing one of its own.
func (s *LedgerService) SortBy(c view.Criterion) (view.Direction, error) {
	return s.book.SortBy(c)
}

// List returns the display-ordered transactions passing the filter.
func (s *LedgerService) List(f view.Filter) []core.Transaction {
	return view.Apply(s.book.Transactions(), f)
}

// Summary returns totals and per-category breakdowns for display.
func (s *LedgerService) Summary() Summary {
	return buildSummary(s.book)
}

// persist writes the full snapshot through to the blob store. Failures
// are logged and swallowed: the in-memory ledger is the source of truth
// for the rest of the session.
func (s *LedgerService) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.book.Snapshot()); err != nil {
		slog.ErrorContext(ctx, "Failed to persist ledger",
			applog.FieldError, err,
			"transactions", s.book.Len(),
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, "save")
	}
}
