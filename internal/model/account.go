package model

// AccountType describes the kind of account.
type AccountType string

// Account type constants.
const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountCash     AccountType = "cash"
	AccountCredit   AccountType = "credit"
)

// Valid reports whether the account type is one of the allowed set.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCash, AccountCredit:
		return true
	}
	return false
}

// Account represents a place money lives. Name is the display key used
// by transactions and balance resolution; the store enforces its
// uniqueness so name-based joins stay unambiguous.
type Account struct {
	ID   string
	Name string
	Type AccountType
}
