package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pulseledger/pulse/internal/model"
	"github.com/pulseledger/pulse/internal/service"
)

// reseedMarker is the write-ahead marker set before ClearAll empties
// the collections and removed once InitializeDefaults has reseeded
// them. Migrate checks it on startup and repairs an interrupted
// sequence.
const reseedMarker = "reseed_pending"

// Default records seeded by InitializeDefaults. Name uniqueness makes
// reseeding idempotent regardless of the generated IDs.
var (
	defaultCategories = []model.Category{
		{Name: "Salaire", Type: model.CategoryIncome, Color: "#4caf50", Icon: "briefcase"},
		{Name: "Autres Revenus", Type: model.CategoryIncome, Color: "#8bc34a", Icon: "plus-circle"},
		{Name: "Alimentation", Type: model.CategoryExpense, Color: "#ff9800", Icon: "shopping-cart"},
		{Name: "Logement", Type: model.CategoryExpense, Color: "#3f51b5", Icon: "home"},
		{Name: "Transport", Type: model.CategoryExpense, Color: "#03a9f4", Icon: "car"},
		{Name: "Loisirs", Type: model.CategoryExpense, Color: "#e91e63", Icon: "film"},
		{Name: "Santé", Type: model.CategoryExpense, Color: "#f44336", Icon: "heart"},
		{Name: "Abonnements", Type: model.CategoryExpense, Color: "#9c27b0", Icon: "repeat"},
	}
	defaultAccounts = []model.Account{
		{Name: "Compte Courant", Type: model.AccountChecking},
		{Name: "Compte Épargne", Type: model.AccountSavings},
	}
)

// ExportData assembles a full-state snapshot of all six collections.
// The reads are independent, so they run under an errgroup.
func (s *SQLiteStorage) ExportData(ctx context.Context) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var snapshot model.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		txns, err := s.GetTransactions(gctx, service.TransactionFilter{})
		if err != nil {
			return fmt.Errorf("export transactions: %w", err)
		}
		snapshot.Transactions = txns
		return nil
	})
	g.Go(func() error {
		categories, err := s.GetCategories(gctx)
		if err != nil {
			return fmt.Errorf("export categories: %w", err)
		}
		snapshot.Categories = categories
		return nil
	})
	g.Go(func() error {
		goals, err := s.GetGoals(gctx)
		if err != nil {
			return fmt.Errorf("export goals: %w", err)
		}
		snapshot.Goals = goals
		return nil
	})
	g.Go(func() error {
		accounts, err := s.GetAccounts(gctx)
		if err != nil {
			return fmt.Errorf("export accounts: %w", err)
		}
		snapshot.Accounts = accounts
		return nil
	})
	g.Go(func() error {
		budgets, err := s.GetBudgets(gctx, "")
		if err != nil {
			return fmt.Errorf("export budgets: %w", err)
		}
		snapshot.Budgets = budgets
		return nil
	})
	g.Go(func() error {
		settings, err := s.GetSettings(gctx)
		if err != nil {
			return fmt.Errorf("export settings: %w", err)
		}
		snapshot.Settings = []model.Settings{*settings}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ImportData replaces every collection wholesale with the snapshot
// contents. The replacement runs in a single database transaction.
func (s *SQLiteStorage) ImportData(ctx context.Context, snapshot *model.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot", ErrNilParameter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"transactions", "categories", "goals", "accounts", "budgets", "settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if len(snapshot.Transactions) > 0 {
		if err := s.saveTransactionsTx(ctx, tx, snapshot.Transactions); err != nil {
			return err
		}
	}
	for i := range snapshot.Categories {
		cat := &snapshot.Categories[i]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, type, color, icon) VALUES (?, ?, ?, ?, ?)
		`, cat.ID, cat.Name, string(cat.Type), cat.Color, cat.Icon); err != nil {
			return fmt.Errorf("failed to import category %s: %w", cat.ID, err)
		}
	}
	for i := range snapshot.Goals {
		g := &snapshot.Goals[i]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO goals (id, name, target_amount, current_amount, deadline, category, description, image)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, g.ID, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Category, g.Description, g.Image); err != nil {
			return fmt.Errorf("failed to import goal %s: %w", g.ID, err)
		}
	}
	for i := range snapshot.Accounts {
		acc := &snapshot.Accounts[i]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO accounts (id, name, type) VALUES (?, ?, ?)
		`, acc.ID, acc.Name, string(acc.Type)); err != nil {
			return fmt.Errorf("failed to import account %s: %w", acc.ID, err)
		}
	}
	for i := range snapshot.Budgets {
		b := &snapshot.Budgets[i]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO budgets (id, category, month, amount) VALUES (?, ?, ?, ?)
		`, b.ID, b.Category, b.Month, b.Amount); err != nil {
			return fmt.Errorf("failed to import budget %s: %w", b.ID, err)
		}
	}
	if len(snapshot.Settings) > 0 {
		st := snapshot.Settings[0]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (id, currency, language, theme, date_format, week_starts_on, auto_backup, payday_day)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		`, st.Currency, st.Language, st.Theme, st.DateFormat, st.WeekStartsOn, st.AutoBackup, st.PaydayDay); err != nil {
			return fmt.Errorf("failed to import settings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	slog.Info("imported snapshot",
		"transactions", len(snapshot.Transactions),
		"categories", len(snapshot.Categories),
		"goals", len(snapshot.Goals),
		"accounts", len(snapshot.Accounts),
		"budgets", len(snapshot.Budgets))
	return nil
}

// ClearAll empties every collection. It writes the reseed marker first
// so a crash before the following InitializeDefaults can be detected
// and repaired on the next startup.
func (s *SQLiteStorage) ClearAll(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, '1')
		ON CONFLICT(key) DO UPDATE SET value = '1'
	`, reseedMarker); err != nil {
		return fmt.Errorf("failed to set reseed marker: %w", err)
	}

	for _, table := range []string{"transactions", "categories", "goals", "accounts", "budgets", "settings"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	slog.Info("cleared all collections")
	return nil
}

// InitializeDefaults seeds the default categories, accounts, and the
// settings singleton, then removes the reseed marker. Safe to re-run:
// seeds that already exist are ignored.
func (s *SQLiteStorage) InitializeDefaults(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	for _, cat := range defaultCategories {
		if _, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO categories (id, name, type, color, icon)
			VALUES (?, ?, ?, ?, ?)
		`, uuid.NewString(), cat.Name, string(cat.Type), cat.Color, cat.Icon); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
	}

	for _, acc := range defaultAccounts {
		if _, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO accounts (id, name, type)
			VALUES (?, ?, ?)
		`, uuid.NewString(), acc.Name, string(acc.Type)); err != nil {
			return fmt.Errorf("failed to seed account %q: %w", acc.Name, err)
		}
	}

	defaults := model.DefaultSettings()
	if _, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO settings (id, currency, language, theme, date_format, week_starts_on, auto_backup, payday_day)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
	`, defaults.Currency, defaults.Language, defaults.Theme, defaults.DateFormat,
		defaults.WeekStartsOn, defaults.AutoBackup, defaults.PaydayDay); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM meta WHERE key = ?`, reseedMarker); err != nil {
		return fmt.Errorf("failed to clear reseed marker: %w", err)
	}

	slog.Info("initialized default records",
		"categories", len(defaultCategories),
		"accounts", len(defaultAccounts))
	return nil
}

// repairPendingReseed reseeds the defaults when a previous clear was
// interrupted before InitializeDefaults completed.
func (s *SQLiteStorage) repairPendingReseed(ctx context.Context) error {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, reseedMarker).Scan(&value)
	if err != nil {
		// No marker row means no interrupted sequence.
		return nil
	}

	slog.Warn("detected interrupted clear/reseed sequence, reseeding defaults")
	return s.InitializeDefaults(ctx)
}
