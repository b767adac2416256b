package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pulseledger/pulse/internal/model"
)

func TestComputePulse_Healthy(t *testing.T) {
	txns := []model.Transaction{
		tx(2026, 3, 1, model.TypeIncome, "Salaire", 3000),
		tx(2026, 3, 10, model.TypeExpense, "Alimentation", 1500),
	}
	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	pulse := ComputePulse(txns, nil, now)

	// 50% savings rate saturates the savings component; a single month
	// scores the neutral half of the trend component.
	assert.InDelta(t, 85.0, pulse.Score, 1e-9)
	assert.Equal(t, StatusHealthy, pulse.Status)
	assert.InDelta(t, 3000.0, pulse.MonthlyIncome, 1e-9)
	assert.InDelta(t, 1500.0, pulse.MonthlyExpenses, 1e-9)
	assert.InDelta(t, 1500.0, pulse.RemainingBudget, 1e-9)
}

func TestComputePulse_NoTransactions(t *testing.T) {
	pulse := ComputePulse(nil, nil, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	// Only the neutral trend half remains.
	assert.InDelta(t, 15.0, pulse.Score, 1e-9)
	assert.Equal(t, StatusDanger, pulse.Status)
	assert.Zero(t, pulse.DaysUntilNextIncome)
}

func TestComputePulse_Overspending(t *testing.T) {
	txns := []model.Transaction{
		tx(2026, 3, 1, model.TypeIncome, "Salaire", 1000),
		tx(2026, 3, 10, model.TypeExpense, "Loisirs", 2500),
	}
	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	pulse := ComputePulse(txns, nil, now)

	assert.InDelta(t, 15.0, pulse.Score, 1e-9, "a negative savings rate clamps the savings component to zero")
	assert.Equal(t, StatusDanger, pulse.Status)
	assert.InDelta(t, -1500.0, pulse.RemainingBudget, 1e-9)
}

func TestComputePulse_ScoreBounds(t *testing.T) {
	// Rising income and collapsing expenses push both components to
	// their ceilings, but the score never leaves [0, 100].
	txns := []model.Transaction{
		tx(2026, 2, 1, model.TypeIncome, "Salaire", 1000),
		tx(2026, 2, 5, model.TypeExpense, "Loisirs", 900),
		tx(2026, 3, 1, model.TypeIncome, "Salaire", 5000),
		tx(2026, 3, 5, model.TypeExpense, "Loisirs", 100),
	}
	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	pulse := ComputePulse(txns, nil, now)
	assert.LessOrEqual(t, pulse.Score, 100.0)
	assert.GreaterOrEqual(t, pulse.Score, 0.0)
	assert.Equal(t, StatusHealthy, pulse.Status)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusHealthy, statusFor(70))
	assert.Equal(t, StatusWarning, statusFor(69.9))
	assert.Equal(t, StatusWarning, statusFor(40))
	assert.Equal(t, StatusDanger, statusFor(39.9))
}

func TestDaysUntilNextIncome_ConfiguredPayday(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	settings := &model.Settings{PaydayDay: 25}

	assert.Equal(t, 15, daysUntilNextIncome(nil, settings, now))
}

func TestDaysUntilNextIncome_PaydayAlreadyPassed(t *testing.T) {
	now := time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC)
	settings := &model.Settings{PaydayDay: 25}

	// Rolls into April.
	assert.Equal(t, 28, daysUntilNextIncome(nil, settings, now))
}

func TestDaysUntilNextIncome_ClipsToMonthLength(t *testing.T) {
	now := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	settings := &model.Settings{PaydayDay: 31}

	// April has 30 days; the day-31 payday lands on the 30th.
	assert.Equal(t, 25, daysUntilNextIncome(nil, settings, now))
}

func TestDaysUntilNextIncome_FromLatestIncome(t *testing.T) {
	txns := []model.Transaction{
		tx(2026, 1, 15, model.TypeIncome, "Salaire", 2000),
		tx(2026, 2, 28, model.TypeIncome, "Salaire", 2000),
		tx(2026, 2, 10, model.TypeExpense, "Loisirs", 50),
	}
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// The most recent income landed on the 28th.
	assert.Equal(t, 18, daysUntilNextIncome(txns, nil, now))
}

func TestDaysUntilNextIncome_NoSource(t *testing.T) {
	txns := []model.Transaction{
		tx(2026, 2, 10, model.TypeExpense, "Loisirs", 50),
	}
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Zero(t, daysUntilNextIncome(txns, nil, now))
}
