// Package ledger owns the ordered transaction collection and its derived
// aggregates: the three running totals and the per-category sums. Every
// mutation keeps the aggregates exactly consistent with the live
// transactions.
package ledger

import (
	"github.com/google/uuid"

	"fintrack/internal/category"
	"fintrack/internal/core"
	"fintrack/internal/view"
)

// Book is a single ledger instance. It is not safe for concurrent use;
// the composing application serializes access (one logical actor).
type Book struct {
	txs []core.Transaction

	totalIncome  int64
	totalExpense int64
	totalBalance int64

	categoryExpenses map[string]int64
	categoryIncome   map[string]int64

	// Per-criterion remembered sort direction. Both start at desc so the
	// first request for a criterion yields ascending order.
	sortDirs   map[view.Criterion]view.Direction
	activeSort view.Criterion
}

// State is the full persistable snapshot of a Book. Its JSON layout is
// the on-disk blob format.
type State struct {
	Transactions     []core.Transaction `json:"transactions"`
	TotalIncome      int64              `json:"totalIncome"`
	TotalExpense     int64              `json:"totalExpense"`
	TotalBalance     int64              `json:"totalBalance"`
	CategoryExpenses map[string]int64   `json:"categoryExpenses"`
	CategoryIncome   map[string]int64   `json:"categoryIncome"`
}

// NewBook returns an empty ledger with every registry category seeded at
// zero in both aggregate maps.
func NewBook() *Book {
	return &Book{
		categoryExpenses: zeroCategories(),
		categoryIncome:   zeroCategories(),
		sortDirs: map[view.Criterion]view.Direction{
			view.ByDate:   view.Desc,
			view.ByAmount: view.Desc,
		},
	}
}

func zeroCategories() map[string]int64 {
	m := make(map[string]int64, len(category.Keys()))
	for _, k := range category.Keys() {
		m[k] = 0
	}
	return m
}

// Add validates the fields, creates a transaction with a fresh unique ID
// and inserts it at the front of the sequence, newest first.
func (b *Book) Add(description string, amount core.Money, typ core.TransactionType, cat string, date core.Date) (core.Transaction, error) {
	tx := core.Transaction{
		ID:          uuid.NewString(),
		Description: description,
		Amount:      amount,
		Type:        typ,
		Category:    cat,
		Date:        date,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	b.txs = append([]core.Transaction{tx}, b.txs...)
	b.apply(tx)
	b.resort()
	return tx, nil
}

// Update replaces every field except the ID of the identified
// transaction. The old contribution is reversed before the new one is
// applied, so the aggregates stay consistent even when type or category
// changes. The transaction keeps its position in the sequence.
func (b *Book) Update(id, description string, amount core.Money, typ core.TransactionType, cat string, date core.Date) (core.Transaction, error) {
	i := b.index(id)
	if i < 0 {
		return core.Transaction{}, core.ErrNotFound
	}

	next := core.Transaction{
		ID:          id,
		Description: description,
		Amount:      amount,
		Type:        typ,
		Category:    cat,
		Date:        date,
	}
	// Reject before mutating anything.
	if err := next.Validate(); err != nil {
		return core.Transaction{}, err
	}

	b.reverse(b.txs[i])
	b.txs[i] = next
	b.apply(next)
	b.resort()
	return next, nil
}

// Remove reverses the transaction's contribution and drops it from the
// sequence.
func (b *Book) Remove(id string) error {
	i := b.index(id)
	if i < 0 {
		return core.ErrNotFound
	}
	b.reverse(b.txs[i])
	b.txs = append(b.txs[:i], b.txs[i+1:]...)
	return nil
}

// Clear empties the ledger and zeroes every total and aggregate. It is
// idempotent and never fails.
func (b *Book) Clear() {
	b.txs = nil
	b.totalIncome = 0
	b.totalExpense = 0
	b.totalBalance = 0
	b.categoryExpenses = zeroCategories()
	b.categoryIncome = zeroCategories()
}

// apply adds tx's contribution to the totals and to its aggregate
// bucket. Unregistered categories fold into `other` here while the
// transaction itself keeps its literal category.
func (b *Book) apply(tx core.Transaction) {
	bucket := category.Bucket(tx.Category)
	if tx.Type.IsIncome() {
		b.totalIncome += tx.Amount.Cents
		b.totalBalance += tx.Amount.Cents
		b.categoryIncome[bucket] += tx.Amount.Cents
	} else {
		b.totalExpense += tx.Amount.Cents
		b.totalBalance -= tx.Amount.Cents
		b.categoryExpenses[bucket] += tx.Amount.Cents
	}
}

// reverse is the exact inverse of apply, folding into the same bucket so
// a reversal always matches the prior addition.
func (b *Book) reverse(tx core.Transaction) {
	bucket := category.Bucket(tx.Category)
	if tx.Type.IsIncome() {
		b.totalIncome -= tx.Amount.Cents
		b.totalBalance -= tx.Amount.Cents
		b.categoryIncome[bucket] -= tx.Amount.Cents
	} else {
		b.totalExpense -= tx.Amount.Cents
		b.totalBalance += tx.Amount.Cents
		b.categoryExpenses[bucket] -= tx.Amount.Cents
	}
}

func (b *Book) index(id string) int {
	for i, tx := range b.txs {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

// SortBy toggles the remembered direction for the criterion, reorders
// the stored sequence and keeps the criterion active: later mutations
// re-apply it until another sort is requested. Each criterion keeps its
// own direction memory.
func (b *Book) SortBy(c view.Criterion) (view.Direction, error) {
	if !c.Valid() {
		return "", view.ErrUnknownCriterion
	}
	b.sortDirs[c] = b.sortDirs[c].Flip()
	b.activeSort = c
	b.resort()
	return b.sortDirs[c], nil
}

// resort re-applies the active sort, if any, to the stored order.
func (b *Book) resort() {
	if b.activeSort == "" {
		return
	}
	view.Sort(b.txs, b.activeSort, b.sortDirs[b.activeSort])
}

// Transactions returns a copy of the stored sequence in display order.
func (b *Book) Transactions() []core.Transaction {
	return append([]core.Transaction(nil), b.txs...)
}

// Len returns the number of live transactions.
func (b *Book) Len() int {
	return len(b.txs)
}

// Totals returns the running income, expense and balance in cents.
func (b *Book) Totals() (income, expense, balance int64) {
	return b.totalIncome, b.totalExpense, b.totalBalance
}

// CategoryExpenses returns a copy of the expense aggregate map.
func (b *Book) CategoryExpenses() map[string]int64 {
	return copyMap(b.categoryExpenses)
}

// CategoryIncome returns a copy of the income aggregate map.
func (b *Book) CategoryIncome() map[string]int64 {
	return copyMap(b.categoryIncome)
}

// Snapshot captures the full state as a deep copy suitable for
// persistence. Mutating the snapshot never affects the Book.
func (b *Book) Snapshot() State {
	return State{
		Transactions:     append([]core.Transaction(nil), b.txs...),
		TotalIncome:      b.totalIncome,
		TotalExpense:     b.totalExpense,
		TotalBalance:     b.totalBalance,
		CategoryExpenses: copyMap(b.categoryExpenses),
		CategoryIncome:   copyMap(b.categoryIncome),
	}
}

// Restore replaces the internal state wholesale with a previously
// captured snapshot. Missing fields default to their zero element and
// only registry categories are restored into the aggregate maps. The
// stored totals are trusted verbatim; they are not recomputed from the
// transaction list.
func (b *Book) Restore(s State) {
	b.txs = append([]core.Transaction(nil), s.Transactions...)
	b.totalIncome = s.TotalIncome
	b.totalExpense = s.TotalExpense
	b.totalBalance = s.TotalBalance

	b.categoryExpenses = zeroCategories()
	b.categoryIncome = zeroCategories()
	for k := range b.categoryExpenses {
		if v, ok := s.CategoryExpenses[k]; ok {
			b.categoryExpenses[k] = v
		}
	}
	for k := range b.categoryIncome {
		if v, ok := s.CategoryIncome[k]; ok {
			b.categoryIncome[k] = v
		}
	}
}

func copyMap(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
