package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// RenameAccountRefs rewrites every account, from_account, and
// to_account field equal to oldName so it reads newName, and returns
// the number of transaction rows actually changed. The WHERE clause
// restricts the update to matching rows, which makes a second run with
// the same arguments a no-op reporting zero.
func (s *SQLiteStorage) RenameAccountRefs(ctx context.Context, oldName, newName string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(oldName, "oldName"); err != nil {
		return 0, err
	}
	if err := validateString(newName, "newName"); err != nil {
		return 0, err
	}
	if oldName == newName {
		return 0, nil
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET account      = CASE WHEN account      = ?1 THEN ?2 ELSE account      END,
		    from_account = CASE WHEN from_account = ?1 THEN ?2 ELSE from_account END,
		    to_account   = CASE WHEN to_account   = ?1 THEN ?2 ELSE to_account   END
		WHERE account = ?1 OR from_account = ?1 OR to_account = ?1
	`, oldName, newName)
	if err != nil {
		return 0, fmt.Errorf("failed to rename account references: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	slog.Info("renamed account references",
		"old", oldName,
		"new", newName,
		"updated", affected)
	return int(affected), nil
}
