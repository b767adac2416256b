package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pulseledger/pulse/internal/common"
	"github.com/pulseledger/pulse/internal/model"
)

// SaveCategory inserts a category, or updates it in place when the ID
// already exists.
func (s *SQLiteStorage) SaveCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, type, color, icon)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, type = excluded.type,
			color = excluded.color, icon = excluded.icon
	`, category.ID, category.Name, string(category.Type), category.Color, category.Icon)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category name %q", common.ErrDuplicateEntry, category.Name)
		}
		return fmt.Errorf("failed to save category %s: %w", category.ID, err)
	}

	slog.Debug("saved category", "id", category.ID, "name", category.Name)
	return nil
}

// GetCategories returns all categories ordered by name.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, color, icon FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *cat)
	}
	return categories, rows.Err()
}

// GetCategoryByName returns the category with the given name, or nil
// when no such category exists.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, type, color, icon FROM categories WHERE name = ?
	`, name)

	cat, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return cat, nil
}

// DeleteCategory removes a category by ID. Transactions referencing it
// by name are not cascaded; callers count them first via
// CountTransactionsByCategory to warn about orphans.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
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

func scanCategory(row rowScanner) (*model.Category, error) {
	var cat model.Category
	var catType string
	var color, icon sql.NullString

	err := row.Scan(&cat.ID, &cat.Name, &catType, &color, &icon)
	if err != nil {
		return nil, err
	}

	cat.Type = model.CategoryType(catType)
	cat.Color = color.String
	cat.Icon = icon.String
	return &cat, nil
}
