package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadEmpty(t *testing.T) {
	s := newStore(t)
	st, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	in := ledger.State{
		Transactions: []core.Transaction{{
			ID:          "t1",
			Description: "Groceries",
			Amount:      core.Money{Cents: 7800},
			Type:        core.Expense,
			Category:    "food",
			Date:        core.NewDate(2024, 6, 2),
		}},
		TotalExpense:     7800,
		TotalBalance:     -7800,
		CategoryExpenses: map[string]int64{"food": 7800},
		CategoryIncome:   map[string]int64{},
	}
	require.NoError(t, s.Save(ctx, in))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, "Groceries", out.Transactions[0].Description)
	assert.Equal(t, "2024-06-02", out.Transactions[0].Date.ISO())
	assert.Equal(t, int64(7800), out.CategoryExpenses["food"])
}

func TestSaveUpserts(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, ledger.State{TotalIncome: 1000}))
	require.NoError(t, s.Save(ctx, ledger.State{TotalIncome: 2500}))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, int64(2500), out.TotalIncome)
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	s, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, ledger.State{TotalBalance: 4200}))
	require.NoError(t, s.Close())

	// Migrations are a no-op on the second open.
	s2, err := New(dbPath)
	require.NoError(t, err)
	defer s2.Close()

	out, err := s2.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, int64(4200), out.TotalBalance)
}
