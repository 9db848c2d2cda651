package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vlrfantasy/backend/internal/domain/matchstat"
)

type MatchStatRepository struct {
	db *sqlx.DB
}

func NewMatchStatRepository(db *sqlx.DB) *MatchStatRepository {
	return &MatchStatRepository{db: db}
}

func (r *MatchStatRepository) GetByPlayerAndMatch(ctx context.Context, playerID int64, externalMatchID string) (matchstat.StatRecord, error) {
	const query = `
SELECT id, player_id, external_match_id, kills, deaths, assists, adr,
       first_kills, first_deaths, fantasy_points, created_at
FROM match_stats
WHERE player_id = $1
  AND external_match_id = $2`

	var row matchStatTableModel
	if err := r.db.GetContext(ctx, &row, query, playerID, externalMatchID); err != nil {
		if isNotFound(err) {
			return matchstat.StatRecord{}, matchstat.ErrNotFound
		}
		return matchstat.StatRecord{}, fmt.Errorf("get match stat: %w", err)
	}

	return row.toDomain(), nil
}

// Create inserts a stat line unless the (player, match) pair is already
// recorded; replays keep the first imported row.
func (r *MatchStatRepository) Create(ctx context.Context, record matchstat.StatRecord) (matchstat.StatRecord, error) {
	if err := record.Validate(); err != nil {
		return matchstat.StatRecord{}, err
	}

	const query = `
INSERT INTO match_stats (
    player_id, external_match_id, kills, deaths, assists, adr,
    first_kills, first_deaths, fantasy_points
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (player_id, external_match_id) DO NOTHING
RETURNING id`

	var id int64
	err := r.db.GetContext(ctx, &id, query,
		record.PlayerID, record.ExternalMatchID,
		record.Kills, record.Deaths, record.Assists, record.ADR,
		record.FirstKills, record.FirstDeaths, record.FantasyPoints,
	)
	if err != nil {
		if isNotFound(err) {
			return r.GetByPlayerAndMatch(ctx, record.PlayerID, record.ExternalMatchID)
		}
		return matchstat.StatRecord{}, fmt.Errorf("insert match stat: %w", err)
	}

	record.ID = id
	return record, nil
}

func (r *MatchStatRepository) ListByPlayer(ctx context.Context, playerID int64) ([]matchstat.StatRecord, error) {
	const query = `
SELECT id, player_id, external_match_id, kills, deaths, assists, adr,
       first_kills, first_deaths, fantasy_points, created_at
FROM match_stats
WHERE player_id = $1
ORDER BY id`

	var rows []matchStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, playerID); err != nil {
		return nil, fmt.Errorf("list match stats by player: %w", err)
	}

	out := make([]matchstat.StatRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchStatRepository) TotalsByPlayer(ctx context.Context) ([]matchstat.PlayerTotal, error) {
	const query = `
SELECT player_id,
       COUNT(1) AS matches,
       COALESCE(SUM(fantasy_points), 0) AS total_points
FROM match_stats
GROUP BY player_id`

	var rows []struct {
		PlayerID    int64   `db:"player_id"`
		Matches     int     `db:"matches"`
		TotalPoints float64 `db:"total_points"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("aggregate fantasy totals: %w", err)
	}

	out := make([]matchstat.PlayerTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchstat.PlayerTotal{
			PlayerID:    row.PlayerID,
			Matches:     row.Matches,
			TotalPoints: row.TotalPoints,
		})
	}

	return out, nil
}
