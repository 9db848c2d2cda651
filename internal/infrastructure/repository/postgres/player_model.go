package postgres

import (
	"time"

	"github.com/vlrfantasy/backend/internal/domain/player"
)

type playerTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Team      string    `db:"team"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:   m.ID,
		Name: m.Name,
		Team: m.Team,
		Role: player.Role(m.Role),
	}
}
