package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vlrfantasy/backend/internal/domain/fantasy"
	"github.com/vlrfantasy/backend/internal/domain/matchstat"
	"github.com/vlrfantasy/backend/internal/domain/player"
	"github.com/vlrfantasy/backend/internal/platform/logging"
)

// MatchStatus is the terminal state of one match import.
type MatchStatus string

const (
	MatchImported      MatchStatus = "imported"
	MatchFetchFailed   MatchStatus = "fetch_failed"
	MatchExtractFailed MatchStatus = "extract_failed"
)

// Extra rejection causes raised after normalization.
const (
	CauseMissingName  = "missing_player_name"
	CauseInvalidValue = "invalid_value"
)

// MatchReport tallies one match import.
type MatchReport struct {
	MatchID        string         `json:"match_id"`
	Status         MatchStatus    `json:"status"`
	RowsImported   int            `json:"rows_imported"`
	Duplicates     int            `json:"duplicates"`
	RowsRejected   int            `json:"rows_rejected"`
	PlayersCreated int            `json:"players_created"`
	Rejections     []RowRejection `json:"rejections,omitempty"`
}

// EventReport tallies a whole tournament import run.
type EventReport struct {
	MatchesTotal    int           `json:"matches_total"`
	MatchesImported int           `json:"matches_imported"`
	MatchesFailed   int           `json:"matches_failed"`
	PlayersCreated  int           `json:"players_created"`
	RecordsCreated  int           `json:"records_created"`
	Duplicates      int           `json:"duplicates"`
	RowsRejected    int           `json:"rows_rejected"`
	Matches         []MatchReport `json:"matches"`
}

// ImportService drives fetch, extract, normalize, score and persist for
// every discovered match of a tournament. Matches run one at a time in
// discovery order, rows one at a time in document order; a single match
// failing never aborts the run, a persistence failure always does.
type ImportService struct {
	source     MatchSource
	playerRepo player.Repository
	statRepo   matchstat.Repository
	weights    fantasy.Weights
	logger     *logging.Logger
}

func NewImportService(
	source MatchSource,
	playerRepo player.Repository,
	statRepo matchstat.Repository,
	weights fantasy.Weights,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ImportService{
		source:     source,
		playerRepo: playerRepo,
		statRepo:   statRepo,
		weights:    weights,
		logger:     logger,
	}
}

// ImportEvent discovers and imports every match of the configured
// tournament. Re-running it is safe: previously imported (player, match)
// pairs are skipped as duplicates.
func (s *ImportService) ImportEvent(ctx context.Context) (EventReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportEvent")
	defer span.End()

	matchIDs, err := s.source.DiscoverMatches(ctx)
	if err != nil {
		// Listing failures are not fatal: nothing to import this run.
		s.logger.WarnContext(ctx, "match discovery failed", "error", err)
		matchIDs = nil
	}

	report := EventReport{MatchesTotal: len(matchIDs)}
	if len(matchIDs) == 0 {
		s.logger.InfoContext(ctx, "no matches found for event")
		return report, nil
	}

	for _, matchID := range matchIDs {
		matchReport, err := s.ImportMatch(ctx, matchID)
		report.Matches = append(report.Matches, matchReport)
		report.PlayersCreated += matchReport.PlayersCreated
		report.RecordsCreated += matchReport.RowsImported
		report.Duplicates += matchReport.Duplicates
		report.RowsRejected += matchReport.RowsRejected
		if err != nil {
			// Only the persistence gateway raises here; without durable
			// storage further progress is meaningless.
			report.MatchesFailed++
			return report, fmt.Errorf("import match %s: %w", matchID, err)
		}

		if matchReport.Status == MatchImported {
			report.MatchesImported++
		} else {
			report.MatchesFailed++
		}
		s.logger.InfoContext(ctx, "match processed",
			"match_id", matchID,
			"status", string(matchReport.Status),
			"rows_imported", matchReport.RowsImported,
			"duplicates", matchReport.Duplicates,
			"rows_rejected", matchReport.RowsRejected,
		)
	}

	s.logger.InfoContext(ctx, "event import finished",
		"matches_imported", report.MatchesImported,
		"matches_total", report.MatchesTotal,
		"players_created", report.PlayersCreated,
		"records_created", report.RecordsCreated,
		"duplicates", report.Duplicates,
		"rows_rejected", report.RowsRejected,
	)

	return report, nil
}

// ImportMatch runs one match end-to-end. Fetch and extraction failures
// are reported in the match status with a nil error; a returned error
// means persistence failed and the run must stop.
func (s *ImportService) ImportMatch(ctx context.Context, matchID string) (MatchReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportMatch")
	defer span.End()

	report := MatchReport{MatchID: matchID}

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		report.Status = MatchFetchFailed
		return report, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	rows, err := s.source.FetchMatchRows(ctx, matchID)
	switch {
	case err == nil:
	case errors.Is(err, ErrScoreboardExtract):
		s.logger.WarnContext(ctx, "match skipped, scoreboard not extractable",
			"match_id", matchID, "reason", err)
		report.Status = MatchExtractFailed
		return report, nil
	default:
		s.logger.WarnContext(ctx, "match skipped, page not fetched",
			"match_id", matchID, "error", err)
		report.Status = MatchFetchFailed
		return report, nil
	}

	for _, row := range rows {
		rejection, err := s.importRow(ctx, matchID, row, &report)
		if err != nil {
			report.Status = MatchImported
			return report, err
		}
		if rejection != nil {
			report.RowsRejected++
			report.Rejections = append(report.Rejections, *rejection)
			s.logger.WarnContext(ctx, "row rejected",
				"match_id", matchID,
				"player", rejection.PlayerName,
				"cause", rejection.Cause,
				"detail", rejection.Detail,
			)
		}
	}

	report.Status = MatchImported
	return report, nil
}

// importRow normalizes, scores and persists one scoreboard row. A non-nil
// rejection drops only this row; a non-nil error is a storage failure and
// fatal to the run.
func (s *ImportService) importRow(ctx context.Context, matchID string, row ScoreboardRow, report *MatchReport) (*RowRejection, error) {
	row.PlayerName = strings.TrimSpace(row.PlayerName)
	if row.PlayerName == "" {
		return &RowRejection{Cause: CauseMissingName, Detail: "scoreboard row has no player name"}, nil
	}

	line, rejection := normalizeRow(row)
	if rejection != nil {
		return rejection, nil
	}

	p, created, err := s.resolvePlayer(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("resolve player %q: %w", row.PlayerName, err)
	}
	if created {
		report.PlayersCreated++
	}

	_, err = s.statRepo.GetByPlayerAndMatch(ctx, p.ID, matchID)
	if err == nil {
		// Already imported in an earlier run. Counted, not logged as a
		// failure.
		report.Duplicates++
		s.logger.DebugContext(ctx, "stat record already exists",
			"match_id", matchID, "player", p.Name)
		return nil, nil
	}
	if !errors.Is(err, matchstat.ErrNotFound) {
		return nil, fmt.Errorf("lookup stat record for %q: %w", p.Name, err)
	}

	record := matchstat.StatRecord{
		PlayerID:        p.ID,
		ExternalMatchID: matchID,
		Kills:           line.Kills,
		Deaths:          line.Deaths,
		Assists:         line.Assists,
		ADR:             float64(line.ADR),
		FirstKills:      line.FirstKills,
		FirstDeaths:     line.FirstDeaths,
		FantasyPoints:   s.weights.Score(line.Kills, line.Deaths, line.Assists, line.FirstKills, line.FirstDeaths),
	}
	if err := record.Validate(); err != nil {
		return &RowRejection{PlayerName: p.Name, Cause: CauseInvalidValue, Detail: err.Error()}, nil
	}

	if _, err := s.statRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create stat record for %q: %w", p.Name, err)
	}

	report.RowsImported++
	s.logger.InfoContext(ctx, "row imported",
		"match_id", matchID,
		"player", p.Name,
		"first_kills", record.FirstKills,
		"first_deaths", record.FirstDeaths,
		"points", record.FantasyPoints,
	)

	return nil, nil
}

func (s *ImportService) resolvePlayer(ctx context.Context, row ScoreboardRow) (player.Player, bool, error) {
	existing, err := s.playerRepo.GetByName(ctx, row.PlayerName)
	if err == nil {
		// First write wins: team and role from later sightings are
		// ignored.
		return existing, false, nil
	}
	if !errors.Is(err, player.ErrNotFound) {
		return player.Player{}, false, err
	}

	role := row.Role
	if _, ok := player.AllRoles[role]; !ok {
		role = player.RoleUnknown
	}
	team := strings.TrimSpace(row.TeamTag)
	if team == "" {
		team = "Unknown"
	}

	created, err := s.playerRepo.Create(ctx, player.Player{
		Name: row.PlayerName,
		Team: team,
		Role: role,
	})
	if err != nil {
		return player.Player{}, false, err
	}

	return created, true, nil
}
