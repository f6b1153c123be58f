// Package view is the pure filtering and sorting pipeline applied to a
// transaction sequence before display. It never mutates its input.
package view

import (
	"errors"
	"sort"
	"strings"

	"fintrack/internal/core"
)

// All disables the type or category predicate.
const All = "all"

// Filter is a conjunction of optional predicates. Zero values (or "all")
// disable the corresponding predicate.
type Filter struct {
	Type     string    // "all", "income" or "expense"
	Category string    // exact match, no other-folding
	From     core.Date // inclusive lower bound, zero means unset
	To       core.Date // inclusive upper bound, zero means unset
	Search   string    // case-insensitive substring on description
}

// Matches reports whether tx passes every active predicate.
func (f Filter) Matches(tx core.Transaction) bool {
	if f.Type != "" && f.Type != All && string(tx.Type) != f.Type {
		return false
	}
	if f.Category != "" && f.Category != All && tx.Category != f.Category {
		return false
	}
	if !f.From.IsZero() && !tx.Date.OnOrAfter(f.From) {
		return false
	}
	if !f.To.IsZero() && !tx.Date.OnOrBefore(f.To) {
		return false
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		if !strings.Contains(strings.ToLower(tx.Description), strings.ToLower(s)) {
			return false
		}
	}
	return true
}

// Apply returns the transactions passing the filter, in their input
// order. The result is always a fresh slice.
func Apply(txs []core.Transaction, f Filter) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Sort criteria and directions.
const (
	ByDate   Criterion = "date"
	ByAmount Criterion = "amount"

	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type (
	Criterion string
	Direction string
)

// ErrUnknownCriterion rejects sort requests for anything other than
// date or amount.
var ErrUnknownCriterion = errors.New("unknown sort criterion")

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

func (c Criterion) Valid() bool {
	return c == ByDate || c == ByAmount
}

// Sort orders txs in place by the criterion and direction. Equal keys
// keep their relative order.
func Sort(txs []core.Transaction, c Criterion, d Direction) {
	less := func(a, b core.Transaction) bool {
		if c == ByDate {
			return a.Date.Time.Before(b.Date.Time)
		}
		return a.Amount.Cents < b.Amount.Cents
	}
	sort.SliceStable(txs, func(i, j int) bool {
		if d == Asc {
			return less(txs[i], txs[j])
		}
		return less(txs[j], txs[i])
	})
}
