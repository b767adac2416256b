package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseledger/pulse/internal/model"
)

func tx(year int, month time.Month, day int, txnType model.TransactionType, category string, amount float64) model.Transaction {
	return model.Transaction{
		ID:          "t",
		Date:        time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Type:        txnType,
		Category:    category,
		Amount:      amount,
		Description: "x",
	}
}

func TestMonthlyStats(t *testing.T) {
	txns := []model.Transaction{
		tx(2026, 2, 1, model.TypeIncome, "Salaire", 2400),
		tx(2026, 2, 10, model.TypeExpense, "Alimentation", 350),
		tx(2026, 3, 1, model.TypeIncome, "Salaire", 2500),
		tx(2026, 3, 12, model.TypeExpense, "Alimentation", 400),
		tx(2026, 3, 15, model.TypeExpense, "Transport", 100),
		// December of the previous year sorts first despite being
		// added last.
		tx(2025, 12, 20, model.TypeExpense, "Loisirs", 80),
	}

	stats := MonthlyStats(txns)
	require.Len(t, stats, 3)

	assert.Equal(t, "2025-12", stats[0].Month)
	assert.Equal(t, "2026-02", stats[1].Month)
	assert.Equal(t, "2026-03", stats[2].Month)

	assert.InDelta(t, 2500.0, stats[2].Income, 1e-9)
	assert.InDelta(t, 500.0, stats[2].Expenses, 1e-9)
	assert.InDelta(t, 2000.0, stats[2].Balance, 1e-9)
}

func TestMonthlyStats_ExcludesTransfers(t *testing.T) {
	txns := []model.Transaction{
		tx(2026, 3, 1, model.TypeIncome, "Salaire", 2000),
		{
			ID: "tr", Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			Type: model.TypeTransfer, Amount: 1000,
			FromAccount: "Courant", ToAccount: "Épargne", Description: "Virement",
		},
	}

	stats := MonthlyStats(txns)
	require.Len(t, stats, 1)
	assert.InDelta(t, 2000.0, stats[0].Income, 1e-9)
	assert.Zero(t, stats[0].Expenses, "transfers are not expenses")
}

func TestMonthlyStats_Empty(t *testing.T) {
	assert.Empty(t, MonthlyStats(nil))
}

func TestCategoryStats(t *testing.T) {
	txns := []model.Transaction{
		tx(2026, 3, 1, model.TypeExpense, "Alimentation", 300),
		tx(2026, 3, 2, model.TypeExpense, "Alimentation", 100),
		tx(2026, 3, 3, model.TypeExpense, "Transport", 100),
		// Income never enters the expense breakdown.
		tx(2026, 3, 4, model.TypeIncome, "Salaire", 2500),
	}

	stats := CategoryStats(txns)
	require.Len(t, stats, 2)

	assert.Equal(t, "Alimentation", stats[0].Category)
	assert.InDelta(t, 400.0, stats[0].Amount, 1e-9)
	assert.Equal(t, 2, stats[0].Count)
	assert.InDelta(t, 80.0, stats[0].Percentage, 1e-9)

	assert.Equal(t, "Transport", stats[1].Category)
	assert.InDelta(t, 20.0, stats[1].Percentage, 1e-9)

	var totalShare float64
	for _, stat := range stats {
		totalShare += stat.Percentage
	}
	assert.InDelta(t, 100.0, totalShare, 0.01)
}

func TestCategoryStats_ZeroTotal(t *testing.T) {
	txns := []model.Transaction{
		tx(2026, 3, 1, model.TypeIncome, "Salaire", 2500),
	}
	assert.Empty(t, CategoryStats(txns))
}

func TestCategoryStats_TiesSortByName(t *testing.T) {
	txns := []model.Transaction{
		tx(2026, 3, 1, model.TypeExpense, "Transport", 50),
		tx(2026, 3, 2, model.TypeExpense, "Loisirs", 50),
	}

	stats := CategoryStats(txns)
	require.Len(t, stats, 2)
	assert.Equal(t, "Loisirs", stats[0].Category)
	assert.Equal(t, "Transport", stats[1].Category)
}

func TestTrendStats(t *testing.T) {
	monthly := []MonthlyStat{
		{Month: "2026-01", Income: 2000, Expenses: 1000},
		{Month: "2026-02", Income: 2200, Expenses: 900},
		{Month: "2026-03", Income: 2200, Expenses: 1080},
	}

	trends := TrendStats(monthly)
	require.Len(t, trends, 3)

	assert.False(t, trends[0].HasTrend, "first month has nothing to compare against")

	assert.True(t, trends[1].HasTrend)
	assert.InDelta(t, 10.0, trends[1].IncomeTrend, 1e-9)
	assert.InDelta(t, -10.0, trends[1].ExpenseTrend, 1e-9)

	assert.InDelta(t, 0.0, trends[2].IncomeTrend, 1e-9)
	assert.InDelta(t, 20.0, trends[2].ExpenseTrend, 1e-9)
}

func TestTrendStats_ZeroPrevious(t *testing.T) {
	monthly := []MonthlyStat{
		{Month: "2026-01", Income: 0, Expenses: 0},
		{Month: "2026-02", Income: 2000, Expenses: 500},
	}

	trends := TrendStats(monthly)
	require.Len(t, trends, 2)
	assert.True(t, trends[1].HasTrend)
	assert.Zero(t, trends[1].IncomeTrend, "a zero previous month yields no meaningful delta")
	assert.Zero(t, trends[1].ExpenseTrend)
}
