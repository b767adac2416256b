package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pulseledger/pulse/internal/common"
	"github.com/pulseledger/pulse/internal/model"
)

// SaveAccount inserts an account, or updates it in place when the ID
// already exists. Names are unique; a clashing name surfaces as
// common.ErrDuplicateEntry.
func (s *SQLiteStorage) SaveAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, type)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, type = excluded.type
	`, account.ID, account.Name, string(account.Type))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account name %q", common.ErrDuplicateEntry, account.Name)
		}
		return fmt.Errorf("failed to save account %s: %w", account.ID, err)
	}

	slog.Debug("saved account", "id", account.ID, "name", account.Name)
	return nil
}

// GetAccounts returns all accounts ordered by name.
func (s *SQLiteStorage) GetAccounts(ctx context.Context) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type FROM accounts ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		var acc model.Account
		var accType string
		if err := rows.Scan(&acc.ID, &acc.Name, &accType); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		acc.Type = model.AccountType(accType)
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// GetAccountByName returns the account with the given display name, or
// nil when no such account exists.
func (s *SQLiteStorage) GetAccountByName(ctx context.Context, name string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var acc model.Account
	var accType string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, type FROM accounts WHERE name = ?
	`, name).Scan(&acc.ID, &acc.Name, &accType)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	acc.Type = model.AccountType(accType)
	return &acc, nil
}

// DeleteAccount removes an account by ID. Transactions referencing the
// account by name are left in place.
func (s *SQLiteStorage) DeleteAccount(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
