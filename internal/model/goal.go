package model

import "time"

// Goal represents a savings target. CurrentAmount is stored unclamped;
// over-funded goals are legal.
type Goal struct {
	Deadline      time.Time
	ID            string
	Name          string
	Category      string
	Description   string
	Image         string
	TargetAmount  float64
	CurrentAmount float64
}

// Progress returns the funded fraction clamped to [0, 1] for display.
func (g *Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
