package usecase

import (
	"fmt"
	"strconv"
	"strings"
)

// The aggregate scoreboard carries a fixed column order. Only a subset is
// consumed; the rest is listed to document the contract.
//
//	0 rating, 1 combat score, 2 kills, 3 deaths, 4 assists, 5 plus-minus,
//	6 KAST%, 7 ADR, 8 HS%, 9 first kills, 10 first deaths
const (
	colKills       = 2
	colDeaths      = 3
	colAssists     = 4
	colADR         = 7
	colFirstKills  = 9
	colFirstDeaths = 10

	minRowCells = colFirstDeaths + 1
)

// Rejection cause codes, stable for log consumers.
const (
	CauseShortRow   = "row_too_short"
	CauseNotInteger = "column_not_integer"
)

// RowRejection reports one scoreboard row that could not be normalized.
// The whole row is dropped: a record with a silently-zeroed field is more
// dangerous than a missing one.
type RowRejection struct {
	PlayerName string `json:"player_name"`
	Cause      string `json:"cause"`
	Detail     string `json:"detail"`
}

type statLine struct {
	Kills       int
	Deaths      int
	Assists     int
	ADR         int
	FirstKills  int
	FirstDeaths int
}

// normalizeRow applies the positional column contract to one raw row. It
// returns either a complete line or a rejection, never a partial line.
func normalizeRow(row ScoreboardRow) (statLine, *RowRejection) {
	if len(row.Cells) < minRowCells {
		return statLine{}, &RowRejection{
			PlayerName: row.PlayerName,
			Cause:      CauseShortRow,
			Detail:     fmt.Sprintf("expected at least %d cells, got %d", minRowCells, len(row.Cells)),
		}
	}

	var line statLine
	for _, col := range []struct {
		index int
		label string
		dst   *int
	}{
		{colKills, "kills", &line.Kills},
		{colDeaths, "deaths", &line.Deaths},
		{colAssists, "assists", &line.Assists},
		{colADR, "adr", &line.ADR},
		{colFirstKills, "first_kills", &line.FirstKills},
		{colFirstDeaths, "first_deaths", &line.FirstDeaths},
	} {
		value, err := strconv.Atoi(strings.TrimSpace(row.Cells[col.index]))
		if err != nil {
			return statLine{}, &RowRejection{
				PlayerName: row.PlayerName,
				Cause:      CauseNotInteger,
				Detail:     fmt.Sprintf("column %d (%s): %q", col.index, col.label, row.Cells[col.index]),
			}
		}
		*col.dst = value
	}

	return line, nil
}
