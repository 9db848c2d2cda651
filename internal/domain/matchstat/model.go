package matchstat

import "fmt"

// StatRecord is one player's line in one match. The pair
// (PlayerID, ExternalMatchID) is unique and the record is immutable once
// written; re-importing the same match is a no-op for existing pairs.
type StatRecord struct {
	ID              int64
	PlayerID        int64
	ExternalMatchID string
	Kills           int
	Deaths          int
	Assists         int
	ADR             float64
	FirstKills      int
	FirstDeaths     int
	FantasyPoints   float64
}

func (r StatRecord) Validate() error {
	if r.PlayerID <= 0 {
		return fmt.Errorf("stat record player id is required")
	}
	if r.ExternalMatchID == "" {
		return fmt.Errorf("stat record external match id is required")
	}
	if r.Kills < 0 || r.Deaths < 0 || r.Assists < 0 {
		return fmt.Errorf("kills/deaths/assists cannot be negative")
	}
	if r.FirstKills < 0 || r.FirstDeaths < 0 {
		return fmt.Errorf("first kills/first deaths cannot be negative")
	}
	if r.ADR < 0 {
		return fmt.Errorf("adr cannot be negative")
	}

	return nil
}

// PlayerTotal aggregates one player's records for leaderboard reads.
type PlayerTotal struct {
	PlayerID    int64
	Matches     int
	TotalPoints float64
}
