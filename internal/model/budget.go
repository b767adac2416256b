package model

// Budget caps spending for a category in a given month. Month uses the
// zero-padded YYYY-MM form so lexicographic ordering is chronological.
type Budget struct {
	ID       string
	Category string
	Month    string
	Amount   float64
}
