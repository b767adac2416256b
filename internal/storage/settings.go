package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pulseledger/pulse/internal/model"
)

// GetSettings returns the settings singleton. When no row has been
// written yet it returns the defaults without persisting them.
func (s *SQLiteStorage) GetSettings(ctx context.Context) (*model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var settings model.Settings
	err := s.db.QueryRowContext(ctx, `
		SELECT currency, language, theme, date_format, week_starts_on, auto_backup, payday_day
		FROM settings
		WHERE id = 1
	`).Scan(
		&settings.Currency,
		&settings.Language,
		&settings.Theme,
		&settings.DateFormat,
		&settings.WeekStartsOn,
		&settings.AutoBackup,
		&settings.PaydayDay,
	)
	if err == sql.ErrNoRows {
		defaults := model.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	return &settings, nil
}

// UpdateSettings writes the settings singleton wholesale.
func (s *SQLiteStorage) UpdateSettings(ctx context.Context, settings *model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if settings == nil {
		return fmt.Errorf("%w: settings", ErrNilParameter)
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, currency, language, theme, date_format, week_starts_on, auto_backup, payday_day)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			currency = excluded.currency,
			language = excluded.language,
			theme = excluded.theme,
			date_format = excluded.date_format,
			week_starts_on = excluded.week_starts_on,
			auto_backup = excluded.auto_backup,
			payday_day = excluded.payday_day
	`,
		settings.Currency,
		settings.Language,
		settings.Theme,
		settings.DateFormat,
		settings.WeekStartsOn,
		settings.AutoBackup,
		settings.PaydayDay,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
