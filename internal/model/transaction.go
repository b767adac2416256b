// Package model defines the core domain records persisted by the ledger.
package model

import "time"

// TransactionType distinguishes the three kinds of ledger entries.
type TransactionType string

// Transaction type constants.
const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// Valid reports whether the type is one of the allowed set.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

// Transaction represents a single ledger entry. Amount is always a
// positive magnitude; direction is carried by Type. For transfers the
// Account field is display-only: balance resolution uses FromAccount
// and ToAccount exclusively.
type Transaction struct {
	Date        time.Time
	ID          string
	Type        TransactionType
	Category    string
	Account     string
	FromAccount string
	ToAccount   string
	Description string
	Notes       string
	Tags        []string
	Amount      float64
}

// IsTransfer reports whether the transaction moves money between two
// accounts rather than in or out of the ledger.
func (t *Transaction) IsTransfer() bool {
	return t.Type == TypeTransfer
}
