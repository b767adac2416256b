package analytics

// TrendStat is the month-over-month percent change for one month of
// the series. The first month carries no trend.
type TrendStat struct {
	Month        string
	IncomeTrend  float64
	ExpenseTrend float64
	HasTrend     bool
}

// TrendStats derives month-over-month percent deltas from an ordered
// monthly series. A delta is 0 when the previous month's value is 0;
// values are rounded to two decimals.
func TrendStats(monthly []MonthlyStat) []TrendStat {
	trends := make([]TrendStat, len(monthly))

	for i, m := range monthly {
		trends[i].Month = m.Month
		if i == 0 {
			continue
		}
		prev := monthly[i-1]
		trends[i].HasTrend = true
		trends[i].IncomeTrend = percentDelta(m.Income, prev.Income)
		trends[i].ExpenseTrend = percentDelta(m.Expenses, prev.Expenses)
	}

	return trends
}

func percentDelta(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return round2((current - previous) / previous * 100)
}
