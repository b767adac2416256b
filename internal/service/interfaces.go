// Package service defines the interfaces the application consumes from
// its persistence layer.
package service

import (
	"context"
	"time"

	"github.com/pulseledger/pulse/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// Nil date bounds mean unbounded; empty strings mean no filter.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Account   string
	Category  string
	Type      model.TransactionType
}

// Storage defines the contract for the persistence layer. Every method
// is independently failable; no cross-collection atomicity is promised
// except where a method documents it.
type Storage interface {
	// Transaction operations
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	SaveTransactions(ctx context.Context, txns []model.Transaction) error
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	CountTransactionsByCategory(ctx context.Context, categoryName string) (int, error)
	RenameAccountRefs(ctx context.Context, oldName, newName string) (int, error)

	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccounts(ctx context.Context) ([]model.Account, error)
	GetAccountByName(ctx context.Context, name string) (*model.Account, error)
	DeleteAccount(ctx context.Context, id string) error

	// Category operations
	SaveCategory(ctx context.Context, category *model.Category) error
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	// Goal operations
	SaveGoal(ctx context.Context, goal *model.Goal) error
	GetGoals(ctx context.Context) ([]model.Goal, error)
	DeleteGoal(ctx context.Context, id string) error

	// Budget operations
	SaveBudget(ctx context.Context, budget *model.Budget) error
	GetBudgets(ctx context.Context, month string) ([]model.Budget, error)
	DeleteBudget(ctx context.Context, id string) error

	// Settings singleton
	GetSettings(ctx context.Context) (*model.Settings, error)
	UpdateSettings(ctx context.Context, settings *model.Settings) error

	// Full-state snapshot operations
	ExportData(ctx context.Context) (*model.Snapshot, error)
	ImportData(ctx context.Context, snapshot *model.Snapshot) error
	ClearAll(ctx context.Context) error
	InitializeDefaults(ctx context.Context) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
