package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pulseledger/pulse/internal/model"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

// A small ledger: salary in, groceries out, savings transfer between
// the two accounts.
func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		{ID: "t1", Date: day(1), Type: model.TypeIncome, Amount: 2500, Category: "Salaire", Account: "Courant", Description: "Salaire"},
		{ID: "t2", Date: day(5), Type: model.TypeExpense, Amount: 300, Category: "Alimentation", Account: "Courant", Description: "Courses"},
		{ID: "t3", Date: day(10), Type: model.TypeTransfer, Amount: 500, FromAccount: "Courant", ToAccount: "Épargne", Description: "Virement"},
		{ID: "t4", Date: day(15), Type: model.TypeExpense, Amount: 50, Category: "Loisirs", Account: "Épargne", Description: "Cinéma"},
	}
}

func TestBalance_AllAccounts(t *testing.T) {
	// Transfers cancel across accounts: 2500 - 300 - 50.
	total := Balance(sampleTransactions(), BalanceOptions{})
	assert.InDelta(t, 2150.0, total, 1e-9)
}

func TestBalance_SingleAccount(t *testing.T) {
	txns := sampleTransactions()

	courant := Balance(txns, BalanceOptions{Account: "Courant"})
	assert.InDelta(t, 1700.0, courant, 1e-9, "2500 - 300 - 500 transfer out")

	epargne := Balance(txns, BalanceOptions{Account: "Épargne"})
	assert.InDelta(t, 450.0, epargne, 1e-9, "500 transfer in - 50")
}

func TestBalance_TransferAccountFieldIgnored(t *testing.T) {
	// A transfer carrying a cosmetic Account value must not be counted
	// against that account.
	txns := []model.Transaction{
		{ID: "t1", Date: day(1), Type: model.TypeTransfer, Amount: 100,
			Account: "Courant", FromAccount: "Épargne", ToAccount: "Livret", Description: "Virement"},
	}

	assert.InDelta(t, 0.0, Balance(txns, BalanceOptions{Account: "Courant"}), 1e-9)
	assert.InDelta(t, -100.0, Balance(txns, BalanceOptions{Account: "Épargne"}), 1e-9)
	assert.InDelta(t, 100.0, Balance(txns, BalanceOptions{Account: "Livret"}), 1e-9)
}

func TestBalance_DateRange(t *testing.T) {
	txns := sampleTransactions()
	start := day(5)
	end := day(10)

	// Only the expense on day 5 survives the window for Courant plus
	// the transfer out on day 10.
	got := Balance(txns, BalanceOptions{Account: "Courant", StartDate: &start, EndDate: &end})
	assert.InDelta(t, -800.0, got, 1e-9)
}

func TestAccountBalances(t *testing.T) {
	balances := AccountBalances(sampleTransactions(), BalanceOptions{})

	assert.InDelta(t, 1700.0, balances["Courant"], 1e-9)
	assert.InDelta(t, 450.0, balances["Épargne"], 1e-9)

	// The per-account map and the global fold agree.
	var sum float64
	for _, v := range balances {
		sum += v
	}
	assert.InDelta(t, Balance(sampleTransactions(), BalanceOptions{}), sum, 1e-9)
}

func TestAccountBalances_TransferOnlyAccount(t *testing.T) {
	txns := []model.Transaction{
		{ID: "t1", Date: day(1), Type: model.TypeTransfer, Amount: 75, FromAccount: "Courant", ToAccount: "Livret", Description: "Virement"},
	}

	balances := AccountBalances(txns, BalanceOptions{})
	assert.InDelta(t, -75.0, balances["Courant"], 1e-9)
	assert.InDelta(t, 75.0, balances["Livret"], 1e-9, "accounts appearing only as a transfer leg still get a balance")
}

func TestBalance_Empty(t *testing.T) {
	assert.Zero(t, Balance(nil, BalanceOptions{}))
	assert.Empty(t, AccountBalances(nil, BalanceOptions{}))
}
