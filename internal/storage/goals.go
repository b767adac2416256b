package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pulseledger/pulse/internal/common"
	"github.com/pulseledger/pulse/internal/model"
)

// SaveGoal inserts a goal, or updates it in place when the ID already
// exists. CurrentAmount is stored as given; over-funded goals are legal.
func (s *SQLiteStorage) SaveGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (id, name, target_amount, current_amount, deadline, category, description, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			target_amount = excluded.target_amount,
			current_amount = excluded.current_amount,
			deadline = excluded.deadline,
			category = excluded.category,
			description = excluded.description,
			image = excluded.image
	`,
		goal.ID,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.Deadline,
		goal.Category,
		goal.Description,
		goal.Image,
	)
	if err != nil {
		return fmt.Errorf("failed to save goal %s: %w", goal.ID, err)
	}
	return nil
}

// GetGoals returns all goals ordered by deadline.
func (s *SQLiteStorage) GetGoals(ctx context.Context) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, target_amount, current_amount, deadline, category, description, image
		FROM goals
		ORDER BY deadline
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		var deadline sql.NullTime
		var category, description, image sql.NullString
		if err := rows.Scan(
			&g.ID,
			&g.Name,
			&g.TargetAmount,
			&g.CurrentAmount,
			&deadline,
			&category,
			&description,
			&image,
		); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		g.Deadline = deadline.Time
		g.Category = category.String
		g.Description = description.String
		g.Image = image.String
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// DeleteGoal removes a goal by ID.
func (s *SQLiteStorage) DeleteGoal(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", id, err)
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
