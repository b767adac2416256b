// Package analytics computes derived statistics from a transaction
// snapshot. Everything here is a pure function of its inputs: callers
// fetch a fresh snapshot from the ledger after mutations and recompute.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pulseledger/pulse/internal/model"
)

// MonthlyStat is one year-month bucket of the income/expense series.
type MonthlyStat struct {
	Month    string
	Income   float64
	Expenses float64
	Balance  float64
}

// CategoryStat aggregates expense transactions for one category.
type CategoryStat struct {
	Category   string
	Amount     float64
	Count      int
	Percentage float64
}

// MonthlyStats groups transactions by the YYYY-MM of their date and
// sums income and expenses per bucket. Transfers move money between
// accounts without changing the ledger total, so they are excluded.
// Buckets come back in ascending month order; the zero-padded key
// makes the lexicographic sort chronological.
func MonthlyStats(txns []model.Transaction) []MonthlyStat {
	buckets := make(map[string]*MonthlyStat)

	for i := range txns {
		txn := &txns[i]
		key := txn.Date.Format("2006-01")
		stat, ok := buckets[key]
		if !ok {
			stat = &MonthlyStat{Month: key}
			buckets[key] = stat
		}
		switch txn.Type {
		case model.TypeIncome:
			stat.Income += txn.Amount
		case model.TypeExpense:
			stat.Expenses += txn.Amount
		}
	}

	stats := make([]MonthlyStat, 0, len(buckets))
	for _, stat := range buckets {
		stat.Balance = stat.Income - stat.Expenses
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Month < stats[j].Month })
	return stats
}

// CategoryStats groups expense transactions by category and derives
// each category's share of total expenses. Percentage is 0 for every
// category when total expenses are 0. Results are sorted descending by
// amount.
func CategoryStats(txns []model.Transaction) []CategoryStat {
	buckets := make(map[string]*CategoryStat)
	var totalExpenses float64

	for i := range txns {
		txn := &txns[i]
		if txn.Type != model.TypeExpense {
			continue
		}
		stat, ok := buckets[txn.Category]
		if !ok {
			stat = &CategoryStat{Category: txn.Category}
			buckets[txn.Category] = stat
		}
		stat.Amount += txn.Amount
		stat.Count++
		totalExpenses += txn.Amount
	}

	stats := make([]CategoryStat, 0, len(buckets))
	for _, stat := range buckets {
		if totalExpenses > 0 {
			stat.Percentage = round2(stat.Amount / totalExpenses * 100)
		}
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Amount != stats[j].Amount {
			return stats[i].Amount > stats[j].Amount
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
