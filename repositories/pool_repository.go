package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/icedout/league-system/models"
)

var ErrWeekPoolNotFound = errors.New("week pool not found")

// PoolRepository — история недельных пулов. Append-only: запись существующей
// недели никогда не перезаписывается.
type PoolRepository interface {
	GetByWeek(ctx context.Context, week int) (*models.WeekPool, error)
	Append(ctx context.Context, pool *models.WeekPool) error
}

type postgresPoolRepository struct {
	db *sql.DB
}

func NewPostgresPoolRepository(db *sql.DB) PoolRepository {
	return &postgresPoolRepository{db: db}
}

func (r *postgresPoolRepository) GetByWeek(ctx context.Context, week int) (*models.WeekPool, error) {
	query := `
		SELECT week, world_maps, country_maps
		FROM week_pools
		WHERE week = $1`

	pool := &models.WeekPool{}
	var worldMaps, countryMaps []byte
	err := r.db.QueryRowContext(ctx, query, week).Scan(&pool.Week, &worldMaps, &countryMaps)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWeekPoolNotFound
		}
		return nil, fmt.Errorf("failed to scan week pool %d: %w", week, err)
	}
	if err := json.Unmarshal(worldMaps, &pool.WorldMaps); err != nil {
		return nil, fmt.Errorf("failed to decode world maps for week %d: %w", week, err)
	}
	if err := json.Unmarshal(countryMaps, &pool.CountryMaps); err != nil {
		return nil, fmt.Errorf("failed to decode country maps for week %d: %w", week, err)
	}
	return pool, nil
}

func (r *postgresPoolRepository) Append(ctx context.Context, pool *models.WeekPool) error {
	worldMaps, err := json.Marshal(pool.WorldMaps)
	if err != nil {
		return fmt.Errorf("failed to encode world maps for week %d: %w", pool.Week, err)
	}
	countryMaps, err := json.Marshal(pool.CountryMaps)
	if err != nil {
		return fmt.Errorf("failed to encode country maps for week %d: %w", pool.Week, err)
	}

	// ON CONFLICT DO NOTHING сохраняет append-only контракт: повторная
	// генерация той же недели — no-op.
	query := `
		INSERT INTO week_pools (week, world_maps, country_maps)
		VALUES ($1, $2, $3)
		ON CONFLICT (week) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, pool.Week, worldMaps, countryMaps); err != nil {
		return fmt.Errorf("failed to append week pool %d: %w", pool.Week, err)
	}
	return nil
}
