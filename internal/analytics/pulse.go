package analytics

import (
	"math"
	"time"

	"github.com/pulseledger/pulse/internal/model"
)

// PulseStatus is the health band a pulse score falls into.
type PulseStatus string

// Pulse status bands.
const (
	StatusHealthy PulseStatus = "healthy"
	StatusWarning PulseStatus = "warning"
	StatusDanger  PulseStatus = "danger"
)

// Pulse is the composite financial health summary for the most recent
// month of activity.
type Pulse struct {
	Status              PulseStatus
	Score               float64
	MonthlyIncome       float64
	MonthlyExpenses     float64
	RemainingBudget     float64
	DaysUntilNextIncome int
}

// Savings-rate and trend weighting of the pulse score. The savings
// component saturates at a 40% savings rate; the trend component is
// centered so a flat month scores half of its weight.
const (
	savingsWeight      = 70.0
	trendWeight        = 30.0
	fullScoreSavings   = 0.4
	trendSlope         = 0.3
	healthyThreshold   = 70.0
	dangerousThreshold = 40.0
)

// ComputePulse scores the latest month of the transaction snapshot.
// The score is monotonic in the income-to-expense ratio and in the
// spread between income trend and expense trend, and always lands in
// [0, 100]. now anchors the payday projection; settings supplies an
// optional configured payday.
func ComputePulse(txns []model.Transaction, settings *model.Settings, now time.Time) Pulse {
	monthly := MonthlyStats(txns)

	var current MonthlyStat
	if len(monthly) > 0 {
		current = monthly[len(monthly)-1]
	}

	score := savingsScore(current.Income, current.Expenses) + trendScore(monthly)
	score = math.Round(clamp(score, 0, 100))

	return Pulse{
		Score:               score,
		Status:              statusFor(score),
		MonthlyIncome:       current.Income,
		MonthlyExpenses:     current.Expenses,
		RemainingBudget:     current.Income - current.Expenses,
		DaysUntilNextIncome: daysUntilNextIncome(txns, settings, now),
	}
}

// savingsScore maps the savings rate (income minus expenses, relative
// to income) linearly onto [0, savingsWeight].
func savingsScore(income, expenses float64) float64 {
	if income <= 0 {
		return 0
	}
	rate := (income - expenses) / income
	return savingsWeight * clamp(rate/fullScoreSavings, 0, 1)
}

// trendScore rewards rising income and falling expenses. A flat month
// scores the midpoint; the spread between the two trends moves the
// score linearly until it clamps.
func trendScore(monthly []MonthlyStat) float64 {
	trends := TrendStats(monthly)
	if len(trends) == 0 || !trends[len(trends)-1].HasTrend {
		return trendWeight / 2
	}
	latest := trends[len(trends)-1]
	spread := latest.IncomeTrend - latest.ExpenseTrend
	return clamp(trendWeight/2+spread*trendSlope, 0, trendWeight)
}

func statusFor(score float64) PulseStatus {
	switch {
	case score >= healthyThreshold:
		return StatusHealthy
	case score < dangerousThreshold:
		return StatusDanger
	default:
		return StatusWarning
	}
}

// daysUntilNextIncome projects the next payday. A configured payday
// day-of-month in settings wins; otherwise the day-of-month of the
// most recent income transaction is projected forward. Returns 0 when
// neither source is available.
func daysUntilNextIncome(txns []model.Transaction, settings *model.Settings, now time.Time) int {
	day := 0
	if settings != nil && settings.PaydayDay > 0 {
		day = settings.PaydayDay
	} else {
		var latest time.Time
		for i := range txns {
			if txns[i].Type == model.TypeIncome && txns[i].Date.After(latest) {
				latest = txns[i].Date
				day = txns[i].Date.Day()
			}
		}
	}
	if day == 0 {
		return 0
	}

	next := payday(now.Year(), now.Month(), day, now.Location())
	if !next.After(now) {
		next = payday(now.Year(), now.Month()+1, day, now.Location())
	}

	return int(math.Ceil(next.Sub(now).Hours() / 24))
}

// payday clips the requested day to the month's length, so a day-31
// payday lands on the last day of shorter months.
func payday(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
