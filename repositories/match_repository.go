package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/icedout/league-system/models"
)

// MatchRepository хранит реестр матчей как единый документ: чтение и запись
// всегда целиком. ReplaceAll — полная замена содержимого.
type MatchRepository interface {
	LoadAll(ctx context.Context) ([]*models.Match, error)
	ReplaceAll(ctx context.Context, matches []*models.Match) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) LoadAll(ctx context.Context) ([]*models.Match, error) {
	query := `
		SELECT id_1, id_2, tier, week, backup_1, backup_2, announced
		FROM league_matches
		ORDER BY week, tier, id_1`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query league matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match := &models.Match{}
		if err := rows.Scan(
			&match.ID1,
			&match.ID2,
			&match.Tier,
			&match.Week,
			&match.Backup[0],
			&match.Backup[1],
			&match.Announced,
		); err != nil {
			return nil, fmt.Errorf("failed to scan league match: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate league matches: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) ReplaceAll(ctx context.Context, matches []*models.Match) error {
	return runInTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM league_matches`); err != nil {
			return fmt.Errorf("failed to clear league matches: %w", err)
		}
		query := `
			INSERT INTO league_matches (id_1, id_2, tier, week, backup_1, backup_2, announced)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		for _, match := range matches {
			if _, err := tx.ExecContext(ctx, query,
				match.ID1,
				match.ID2,
				match.Tier,
				match.Week,
				match.Backup[0],
				match.Backup[1],
				match.Announced,
			); err != nil {
				return fmt.Errorf("failed to insert league match %d vs %d: %w", match.ID1, match.ID2, err)
			}
		}
		return nil
	})
}
