// Package ledger is the typed repository in front of the persistence
// layer. It validates field-level contracts before any write and
// surfaces storage failures as user-facing errors. Aggregates are
// pull-based: mutations here never recompute statistics, callers fetch
// a fresh snapshot when they need one.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulseledger/pulse/internal/common"
	"github.com/pulseledger/pulse/internal/model"
	"github.com/pulseledger/pulse/internal/service"
)

// minDate bounds how far back a transaction date may reach.
var minDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// ValidationError reports a single rejected field. Writes never reach
// storage when one of these is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Ledger wraps a Storage implementation with the write-time contracts
// the raw store does not enforce.
type Ledger struct {
	store service.Storage
}

// New creates a ledger repository over the given storage.
func New(store service.Storage) *Ledger {
	return &Ledger{store: store}
}

// AddTransaction validates and persists a new transaction, allocating
// an ID when the caller did not supply one.
func (l *Ledger) AddTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateTransactionFields(txn); err != nil {
		return err
	}
	if err := l.checkTransferAccounts(ctx, txn); err != nil {
		return err
	}
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if err := l.store.SaveTransaction(ctx, txn); err != nil {
		return common.NewUserError("could not save transaction", err)
	}
	return nil
}

// UpdateTransaction validates and rewrites an existing transaction.
func (l *Ledger) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if txn == nil || txn.ID == "" {
		return &ValidationError{Field: "id", Reason: "required for update"}
	}
	if err := validateTransactionFields(txn); err != nil {
		return err
	}
	if err := l.checkTransferAccounts(ctx, txn); err != nil {
		return err
	}
	if err := l.store.UpdateTransaction(ctx, txn); err != nil {
		return common.NewUserError("could not update transaction", err)
	}
	return nil
}

// DeleteTransaction removes a transaction by ID.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Field: "id", Reason: "required"}
	}
	if err := l.store.DeleteTransaction(ctx, id); err != nil {
		return common.NewUserError("could not delete transaction", err)
	}
	return nil
}

// Transactions returns a read-only snapshot of transactions matching
// the filter.
func (l *Ledger) Transactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	txns, err := l.store.GetTransactions(ctx, filter)
	if err != nil {
		return nil, common.NewUserError("could not load transactions", err)
	}
	return txns, nil
}

// AddAccount validates and persists an account. Duplicate names are
// rejected before the write so balance resolution stays unambiguous.
func (l *Ledger) AddAccount(ctx context.Context, account *model.Account) error {
	if account == nil {
		return &ValidationError{Field: "account", Reason: "required"}
	}
	if account.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !account.Type.Valid() {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown account type %q", account.Type)}
	}
	existing, err := l.store.GetAccountByName(ctx, account.Name)
	if err != nil {
		return common.NewUserError("could not check account name", err)
	}
	if existing != nil && existing.ID != account.ID {
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("account %q already exists", account.Name)}
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if err := l.store.SaveAccount(ctx, account); err != nil {
		return common.NewUserError("could not save account", err)
	}
	return nil
}

// Accounts returns all accounts.
func (l *Ledger) Accounts(ctx context.Context) ([]model.Account, error) {
	accounts, err := l.store.GetAccounts(ctx)
	if err != nil {
		return nil, common.NewUserError("could not load accounts", err)
	}
	return accounts, nil
}

// AddCategory validates and persists a category.
func (l *Ledger) AddCategory(ctx context.Context, category *model.Category) error {
	if category == nil {
		return &ValidationError{Field: "category", Reason: "required"}
	}
	if category.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !category.Type.Valid() {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown category type %q", category.Type)}
	}
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if err := l.store.SaveCategory(ctx, category); err != nil {
		return common.NewUserError("could not save category", err)
	}
	return nil
}

// Categories returns all categories.
func (l *Ledger) Categories(ctx context.Context) ([]model.Category, error) {
	categories, err := l.store.GetCategories(ctx)
	if err != nil {
		return nil, common.NewUserError("could not load categories", err)
	}
	return categories, nil
}

// DeleteCategory removes a category and reports how many transactions
// still reference it by name. Those transactions are not touched; the
// caller decides whether to warn the user before invoking this.
func (l *Ledger) DeleteCategory(ctx context.Context, category *model.Category) (orphaned int, err error) {
	if category == nil || category.ID == "" {
		return 0, &ValidationError{Field: "id", Reason: "required"}
	}
	if category.Name != "" {
		orphaned, err = l.store.CountTransactionsByCategory(ctx, category.Name)
		if err != nil {
			return 0, common.NewUserError("could not count category references", err)
		}
	}
	if err := l.store.DeleteCategory(ctx, category.ID); err != nil {
		return 0, common.NewUserError("could not delete category", err)
	}
	return orphaned, nil
}

// SaveGoal validates and persists a goal.
func (l *Ledger) SaveGoal(ctx context.Context, goal *model.Goal) error {
	if goal == nil {
		return &ValidationError{Field: "goal", Reason: "required"}
	}
	if goal.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if goal.TargetAmount <= 0 {
		return &ValidationError{Field: "targetAmount", Reason: "must be positive"}
	}
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	if err := l.store.SaveGoal(ctx, goal); err != nil {
		return common.NewUserError("could not save goal", err)
	}
	return nil
}

// Goals returns all goals.
func (l *Ledger) Goals(ctx context.Context) ([]model.Goal, error) {
	goals, err := l.store.GetGoals(ctx)
	if err != nil {
		return nil, common.NewUserError("could not load goals", err)
	}
	return goals, nil
}

// validateTransactionFields enforces the field-level write contract.
func validateTransactionFields(txn *model.Transaction) error {
	if txn == nil {
		return &ValidationError{Field: "transaction", Reason: "required"}
	}
	if txn.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if txn.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be set"}
	}
	if txn.Date.Before(minDate) {
		return &ValidationError{Field: "date", Reason: "too far in the past"}
	}
	if txn.Date.After(time.Now().AddDate(0, 0, 1)) {
		return &ValidationError{Field: "date", Reason: "must not be in the future"}
	}
	if !txn.Type.Valid() {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown type %q", txn.Type)}
	}
	if txn.Description == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}

	switch txn.Type {
	case model.TypeTransfer:
		if txn.FromAccount == "" {
			return &ValidationError{Field: "fromAccount", Reason: "required for transfers"}
		}
		if txn.ToAccount == "" {
			return &ValidationError{Field: "toAccount", Reason: "required for transfers"}
		}
		if txn.FromAccount == txn.ToAccount {
			return &ValidationError{Field: "toAccount", Reason: "must differ from fromAccount"}
		}
	case model.TypeIncome, model.TypeExpense:
		if txn.Category == "" {
			return &ValidationError{Field: "category", Reason: "required for income and expense"}
		}
	}
	return nil
}

// checkTransferAccounts verifies both transfer legs reference known
// accounts so a typo cannot silently create money from nowhere.
func (l *Ledger) checkTransferAccounts(ctx context.Context, txn *model.Transaction) error {
	if txn.Type != model.TypeTransfer {
		return nil
	}
	for field, name := range map[string]string{"fromAccount": txn.FromAccount, "toAccount": txn.ToAccount} {
		account, err := l.store.GetAccountByName(ctx, name)
		if err != nil {
			return common.NewUserError("could not resolve transfer account", err)
		}
		if account == nil {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("unknown account %q", name)}
		}
	}
	return nil
}
