package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/icedout/league-system/models"
)

// PickRepository хранит леджер пиков как единый документ. Списки карт и
// режимов лежат в jsonb-колонках структурированными значениями.
type PickRepository interface {
	LoadAll(ctx context.Context) ([]*models.Pick, error)
	ReplaceAll(ctx context.Context, picks []*models.Pick) error
}

type postgresPickRepository struct {
	db *sql.DB
}

func NewPostgresPickRepository(db *sql.DB) PickRepository {
	return &postgresPickRepository{db: db}
}

func (r *postgresPickRepository) LoadAll(ctx context.Context) ([]*models.Pick, error) {
	query := `
		SELECT user_id, id_1, id_2, tier, week, backup_1, backup_2, announced,
		       world_map_picks, world_map_vetoes, country_map_picks, country_map_vetoes,
		       redeemed_mode, vetoed_modes, known_vetoes
		FROM league_picks
		ORDER BY week, tier, user_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query league picks: %w", err)
	}
	defer rows.Close()

	var picks []*models.Pick
	for rows.Next() {
		pick := &models.Pick{}
		var worldPicks, worldVetoes, countryPicks, countryVetoes, vetoedModes, knownVetoes []byte
		if err := rows.Scan(
			&pick.UserID,
			&pick.Match.ID1,
			&pick.Match.ID2,
			&pick.Match.Tier,
			&pick.Match.Week,
			&pick.Match.Backup[0],
			&pick.Match.Backup[1],
			&pick.Match.Announced,
			&worldPicks,
			&worldVetoes,
			&countryPicks,
			&countryVetoes,
			&pick.RedeemedMode,
			&vetoedModes,
			&knownVetoes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan league pick: %w", err)
		}
		for _, col := range []struct {
			raw []byte
			dst interface{}
		}{
			{worldPicks, &pick.WorldMapPicks},
			{worldVetoes, &pick.WorldMapVetoes},
			{countryPicks, &pick.CountryMapPicks},
			{countryVetoes, &pick.CountryMapVetoes},
			{vetoedModes, &pick.VetoedModes},
			{knownVetoes, &pick.KnownVetoes},
		} {
			if err := json.Unmarshal(col.raw, col.dst); err != nil {
				return nil, fmt.Errorf("failed to decode league pick payload for user %d: %w", pick.UserID, err)
			}
		}
		picks = append(picks, pick)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate league picks: %w", err)
	}
	return picks, nil
}

func (r *postgresPickRepository) ReplaceAll(ctx context.Context, picks []*models.Pick) error {
	return runInTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM league_picks`); err != nil {
			return fmt.Errorf("failed to clear league picks: %w", err)
		}
		query := `
			INSERT INTO league_picks (user_id, id_1, id_2, tier, week, backup_1, backup_2, announced,
			                          world_map_picks, world_map_vetoes, country_map_picks, country_map_vetoes,
			                          redeemed_mode, vetoed_modes, known_vetoes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
		for _, pick := range picks {
			payloads := make([][]byte, 0, 6)
			for _, src := range []interface{}{
				pick.WorldMapPicks,
				pick.WorldMapVetoes,
				pick.CountryMapPicks,
				pick.CountryMapVetoes,
				pick.VetoedModes,
				pick.KnownVetoes,
			} {
				raw, err := json.Marshal(src)
				if err != nil {
					return fmt.Errorf("failed to encode league pick payload for user %d: %w", pick.UserID, err)
				}
				payloads = append(payloads, raw)
			}
			if _, err := tx.ExecContext(ctx, query,
				pick.UserID,
				pick.Match.ID1,
				pick.Match.ID2,
				pick.Match.Tier,
				pick.Match.Week,
				pick.Match.Backup[0],
				pick.Match.Backup[1],
				pick.Match.Announced,
				payloads[0],
				payloads[1],
				payloads[2],
				payloads[3],
				pick.RedeemedMode,
				payloads[4],
				payloads[5],
			); err != nil {
				return fmt.Errorf("failed to insert league pick for user %d: %w", pick.UserID, err)
			}
		}
		return nil
	})
}
