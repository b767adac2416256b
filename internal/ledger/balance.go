package ledger

import (
	"time"

	"github.com/pulseledger/pulse/internal/model"
)

// BalanceOptions narrows the balance fold. The zero value folds every
// transaction across all accounts.
type BalanceOptions struct {
	StartDate *time.Time
	EndDate   *time.Time
	Account   string
}

// Balance folds a transaction snapshot into a signed amount. Income
// adds and expense subtracts on the Account field; transfers subtract
// on FromAccount and add on ToAccount. The Account field of a transfer
// record is display-only and never enters the fold, so a transfer can
// never be double-counted. With no account filter the transfer legs
// cancel, which keeps the sum over all accounts equal to total income
// minus total expenses.
func Balance(txns []model.Transaction, opts BalanceOptions) float64 {
	var total float64

	for i := range txns {
		txn := &txns[i]
		if !inRange(txn.Date, opts.StartDate, opts.EndDate) {
			continue
		}

		switch txn.Type {
		case model.TypeIncome:
			if opts.Account == "" || txn.Account == opts.Account {
				total += txn.Amount
			}
		case model.TypeExpense:
			if opts.Account == "" || txn.Account == opts.Account {
				total -= txn.Amount
			}
		case model.TypeTransfer:
			if opts.Account == "" {
				// Both legs net to zero across all accounts.
				continue
			}
			if txn.FromAccount == opts.Account {
				total -= txn.Amount
			}
			if txn.ToAccount == opts.Account {
				total += txn.Amount
			}
		}
	}

	return total
}

// AccountBalances folds the snapshot into one signed balance per
// account name, including accounts that only ever appear as a transfer
// leg.
func AccountBalances(txns []model.Transaction, opts BalanceOptions) map[string]float64 {
	balances := make(map[string]float64)

	for i := range txns {
		txn := &txns[i]
		if !inRange(txn.Date, opts.StartDate, opts.EndDate) {
			continue
		}

		switch txn.Type {
		case model.TypeIncome:
			balances[txn.Account] += txn.Amount
		case model.TypeExpense:
			balances[txn.Account] -= txn.Amount
		case model.TypeTransfer:
			balances[txn.FromAccount] -= txn.Amount
			balances[txn.ToAccount] += txn.Amount
		}
	}

	return balances
}

func inRange(date time.Time, start, end *time.Time) bool {
	if start != nil && date.Before(*start) {
		return false
	}
	if end != nil && date.After(*end) {
		return false
	}
	return true
}
