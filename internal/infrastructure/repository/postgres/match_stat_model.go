package postgres

import (
	"time"

	"github.com/vlrfantasy/backend/internal/domain/matchstat"
)

type matchStatTableModel struct {
	ID              int64     `db:"id"`
	PlayerID        int64     `db:"player_id"`
	ExternalMatchID string    `db:"external_match_id"`
	Kills           int       `db:"kills"`
	Deaths          int       `db:"deaths"`
	Assists         int       `db:"assists"`
	ADR             float64   `db:"adr"`
	FirstKills      int       `db:"first_kills"`
	FirstDeaths     int       `db:"first_deaths"`
	FantasyPoints   float64   `db:"fantasy_points"`
	CreatedAt       time.Time `db:"created_at"`
}

func (m matchStatTableModel) toDomain() matchstat.StatRecord {
	return matchstat.StatRecord{
		ID:              m.ID,
		PlayerID:        m.PlayerID,
		ExternalMatchID: m.ExternalMatchID,
		Kills:           m.Kills,
		Deaths:          m.Deaths,
		Assists:         m.Assists,
		ADR:             m.ADR,
		FirstKills:      m.FirstKills,
		FirstDeaths:     m.FirstDeaths,
		FantasyPoints:   m.FantasyPoints,
	}
}
