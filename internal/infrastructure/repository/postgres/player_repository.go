package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vlrfantasy/backend/internal/domain/player"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, error) {
	const query = `
SELECT id, name, team, role, created_at, updated_at
FROM players
WHERE name = $1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if isNotFound(err) {
			return player.Player{}, player.ErrNotFound
		}
		return player.Player{}, fmt.Errorf("get player by name: %w", err)
	}

	return row.toDomain(), nil
}

// Create inserts a player unless the name already exists; a concurrent or
// earlier registration wins and its row is returned unchanged.
func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	if err := p.Validate(); err != nil {
		return player.Player{}, err
	}

	const query = `
INSERT INTO players (name, team, role)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO NOTHING
RETURNING id`

	var id int64
	err := r.db.GetContext(ctx, &id, query, p.Name, p.Team, string(p.Role))
	if err != nil {
		if isNotFound(err) {
			// conflict path, the existing row stands
			return r.GetByName(ctx, p.Name)
		}
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}

	p.ID = id
	return p, nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	const query = `
SELECT id, name, team, role, created_at, updated_at
FROM players
ORDER BY name`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, error) {
	const query = `
SELECT id, name, team, role, created_at, updated_at
FROM players
WHERE id = $1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return player.Player{}, player.ErrNotFound
		}
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}

	return row.toDomain(), nil
}
