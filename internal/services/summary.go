package services

import (
	"fintrack/internal/category"
	"fintrack/internal/ledger"
)

// CategoryShare is one category's slice of a breakdown: its running sum
// and its share of the corresponding total.
type CategoryShare struct {
	Category string  `json:"category"`
	Cents    int64   `json:"amount"`
	Percent  float64 `json:"percent"`
}

// Summary is the aggregate view backing the summary cards and the
// per-category breakdowns.
type Summary struct {
	TotalIncome  int64 `json:"totalIncome"`
	TotalExpense int64 `json:"totalExpense"`
	TotalBalance int64 `json:"totalBalance"`

	ExpenseByCategory []CategoryShare `json:"expenseByCategory"`
	IncomeByCategory  []CategoryShare `json:"incomeByCategory"`
}

func buildSummary(book *ledger.Book) Summary {
	income, expense, balance := book.Totals()
	return Summary{
		TotalIncome:       income,
		TotalExpense:      expense,
		TotalBalance:      balance,
		ExpenseByCategory: shares(book.CategoryExpenses(), expense),
		IncomeByCategory:  shares(book.CategoryIncome(), income),
	}
}

// shares lists the non-zero buckets in registry order with their
// percentage of the total, mirroring the breakdown panels.
func shares(buckets map[string]int64, total int64) []CategoryShare {
	out := make([]CategoryShare, 0, len(buckets))
	for _, key := range category.Keys() {
		cents := buckets[key]
		if cents <= 0 {
			continue
		}
		pct := 0.0
		if total > 0 {
			pct = float64(cents) / float64(total) * 100
		}
		out = append(out, CategoryShare{Category: key, Cents: cents, Percent: pct})
	}
	return out
}
