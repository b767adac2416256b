package model

import "fmt"

// Supported setting values.
var (
	// Currencies the ledger can be denominated in.
	Currencies = []string{"EUR", "USD", "GBP", "CHF"}
	// Themes the UI layer understands.
	Themes = []string{"light", "dark", "system"}
	// DateFormats accepted for display formatting.
	DateFormats = []string{"DD/MM/YYYY", "MM/DD/YYYY", "YYYY-MM-DD"}
)

// Settings is the singleton preferences record. Every field has an
// enumerated or bounded value set; Validate enforces them.
type Settings struct {
	Currency     string
	Language     string
	Theme        string
	DateFormat   string
	WeekStartsOn int
	PaydayDay    int
	AutoBackup   bool
}

// DefaultSettings returns the seed settings record.
func DefaultSettings() Settings {
	return Settings{
		Currency:     "EUR",
		Language:     "fr",
		Theme:        "system",
		DateFormat:   "DD/MM/YYYY",
		WeekStartsOn: 1,
		PaydayDay:    0,
		AutoBackup:   false,
	}
}

// Validate checks every field against its allowed value set.
func (s *Settings) Validate() error {
	if !contains(Currencies, s.Currency) {
		return fmt.Errorf("unsupported currency %q", s.Currency)
	}
	if !contains(Themes, s.Theme) {
		return fmt.Errorf("unsupported theme %q", s.Theme)
	}
	if !contains(DateFormats, s.DateFormat) {
		return fmt.Errorf("unsupported date format %q", s.DateFormat)
	}
	if s.WeekStartsOn < 0 || s.WeekStartsOn > 6 {
		return fmt.Errorf("week start day %d out of range 0-6", s.WeekStartsOn)
	}
	// 0 means no configured payday
	if s.PaydayDay < 0 || s.PaydayDay > 31 {
		return fmt.Errorf("payday day %d out of range 0-31", s.PaydayDay)
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
