package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SettingsRepository хранит текущую неделю лиги. Сервисы неделю не читают
// сами — она передаётся параметром; этим значением владеет HTTP-слой.
type SettingsRepository interface {
	GetCurrentWeek(ctx context.Context) (int, error)
	SetCurrentWeek(ctx context.Context, week int) error
}

type postgresSettingsRepository struct {
	db *sql.DB
}

func NewPostgresSettingsRepository(db *sql.DB) SettingsRepository {
	return &postgresSettingsRepository{db: db}
}

func (r *postgresSettingsRepository) GetCurrentWeek(ctx context.Context) (int, error) {
	var week int
	err := r.db.QueryRowContext(ctx, `SELECT current_week FROM league_settings WHERE id = 1`).Scan(&week)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Настройки ещё не инициализированы — лига начинается с нулевой недели.
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read current week: %w", err)
	}
	return week, nil
}

func (r *postgresSettingsRepository) SetCurrentWeek(ctx context.Context, week int) error {
	query := `
		INSERT INTO league_settings (id, current_week)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET current_week = EXCLUDED.current_week`
	if _, err := r.db.ExecContext(ctx, query, week); err != nil {
		return fmt.Errorf("failed to set current week to %d: %w", week, err)
	}
	return nil
}
