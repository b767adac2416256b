package main

import (
	"context"
	"fmt"
	"math"

	money "github.com/Rhymond/go-money"
	"github.com/spf13/viper"

	"github.com/pulseledger/pulse/internal/config"
	"github.com/pulseledger/pulse/internal/ledger"
	"github.com/pulseledger/pulse/internal/storage"
)

// initStorage opens the database, applies migrations, and seeds the
// default records. Seeding is idempotent, so running it on every
// startup also repairs a store cleared without reinitialization.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/pulse/pulse.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := store.InitializeDefaults(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize defaults: %w", err)
	}

	return store, nil
}

// initLedger opens storage and wraps it in the repository most
// commands talk to.
func initLedger(ctx context.Context) (*ledger.Ledger, *storage.SQLiteStorage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	return ledger.New(store), store, nil
}

// formatAmount renders a signed amount in the ledger's configured
// currency.
func formatAmount(amount float64, currency string) string {
	if currency == "" {
		currency = money.EUR
	}
	return money.New(int64(math.Round(amount*100)), currency).Display()
}
