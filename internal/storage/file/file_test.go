package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadMissingFile(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	st, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	in := ledger.State{
		Transactions: []core.Transaction{{
			ID:          "t1",
			Description: "Rent",
			Amount:      core.Money{Cents: 90000},
			Type:        core.Expense,
			Category:    "bills",
			Date:        core.NewDate(2024, 4, 1),
		}},
		TotalExpense:     90000,
		TotalBalance:     -90000,
		CategoryExpenses: map[string]int64{"bills": 90000},
		CategoryIncome:   map[string]int64{},
	}
	require.NoError(t, s.Save(ctx, in))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, "Rent", out.Transactions[0].Description)
	assert.Equal(t, int64(90000), out.TotalExpense)

	// No temp file left behind after the rename.
	_, err = os.Stat(filepath.Join(dir, "ledger.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadCorruptBlob(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ledger.json"), []byte("{not json"), 0o644))

	_, err = s.Load(context.Background())
	assert.Error(t, err)
}

func TestSaveOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, ledger.State{TotalIncome: 100}))
	require.NoError(t, s.Save(ctx, ledger.State{TotalIncome: 250}))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, int64(250), out.TotalIncome)
}
