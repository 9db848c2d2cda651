package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/vlrfantasy/backend/internal/domain/fantasy"
	"github.com/vlrfantasy/backend/internal/domain/matchstat"
	"github.com/vlrfantasy/backend/internal/domain/player"
	"github.com/vlrfantasy/backend/internal/infrastructure/repository/memory"
)

type stubMatchSource struct {
	matches     []string
	discoverErr error
	rowsByMatch map[string][]ScoreboardRow
	errByMatch  map[string]error
	fetchCalls  []string
}

func (s *stubMatchSource) DiscoverMatches(context.Context) ([]string, error) {
	if s.discoverErr != nil {
		return nil, s.discoverErr
	}
	return s.matches, nil
}

func (s *stubMatchSource) FetchMatchRows(_ context.Context, matchID string) ([]ScoreboardRow, error) {
	s.fetchCalls = append(s.fetchCalls, matchID)
	if err, ok := s.errByMatch[matchID]; ok {
		return nil, err
	}
	return s.rowsByMatch[matchID], nil
}

func scoreboardRow(name, team string, kills, deaths, assists, adr, firstKills, firstDeaths int) ScoreboardRow {
	return ScoreboardRow{
		PlayerName: name,
		TeamTag:    team,
		Role:       player.RoleDuelist,
		Cells: []string{
			"1.18",
			"245",
			strconv.Itoa(kills),
			strconv.Itoa(deaths),
			strconv.Itoa(assists),
			"+5",
			"74%",
			strconv.Itoa(adr),
			"27%",
			strconv.Itoa(firstKills),
			strconv.Itoa(firstDeaths),
		},
	}
}

func newTestImportService(source MatchSource) (*ImportService, *memory.PlayerRepository, *memory.MatchStatRepository) {
	playerRepo := memory.NewPlayerRepository()
	statRepo := memory.NewMatchStatRepository()
	service := NewImportService(source, playerRepo, statRepo, fantasy.DefaultWeights(), nil)
	return service, playerRepo, statRepo
}

func TestImportMatch_RowIsolation(t *testing.T) {
	t.Parallel()

	rows := make([]ScoreboardRow, 0, 11)
	for i := 0; i < 10; i++ {
		rows = append(rows, scoreboardRow(fmt.Sprintf("player%d", i), "RED", 15, 10, 4, 140, 2, 1))
	}
	malformed := scoreboardRow("broken", "RED", 1, 1, 1, 1, 1, 1)
	malformed.Cells = malformed.Cells[:9] // missing first kill and first death columns
	rows = append(rows, malformed)

	source := &stubMatchSource{rowsByMatch: map[string][]ScoreboardRow{"596399": rows}}
	service, _, statRepo := newTestImportService(source)

	report, err := service.ImportMatch(context.Background(), "596399")
	if err != nil {
		t.Fatalf("ImportMatch error: %v", err)
	}

	if report.Status != MatchImported {
		t.Fatalf("unexpected status: %s", report.Status)
	}
	if report.RowsImported != 10 {
		t.Fatalf("rows imported: got=%d want=10", report.RowsImported)
	}
	if report.RowsRejected != 1 {
		t.Fatalf("rows rejected: got=%d want=1", report.RowsRejected)
	}
	if got := statRepo.Count(); got != 10 {
		t.Fatalf("persisted records: got=%d want=10", got)
	}
	if report.Rejections[0].PlayerName != "broken" || report.Rejections[0].Cause != CauseShortRow {
		t.Fatalf("unexpected rejection: %+v", report.Rejections[0])
	}
}

func TestImportMatch_Idempotence(t *testing.T) {
	t.Parallel()

	rows := []ScoreboardRow{
		scoreboardRow("TenZ", "SEN", 22, 14, 5, 160, 4, 2),
		scoreboardRow("zekken", "SEN", 18, 15, 7, 145, 1, 3),
	}
	source := &stubMatchSource{rowsByMatch: map[string][]ScoreboardRow{"596399": rows}}
	service, _, statRepo := newTestImportService(source)

	first, err := service.ImportMatch(context.Background(), "596399")
	if err != nil {
		t.Fatalf("first import error: %v", err)
	}
	second, err := service.ImportMatch(context.Background(), "596399")
	if err != nil {
		t.Fatalf("second import error: %v", err)
	}

	if first.RowsImported != 2 || first.Duplicates != 0 {
		t.Fatalf("first run: imported=%d duplicates=%d", first.RowsImported, first.Duplicates)
	}
	if second.RowsImported != 0 || second.Duplicates != 2 {
		t.Fatalf("second run: imported=%d duplicates=%d", second.RowsImported, second.Duplicates)
	}
	if got := statRepo.Count(); got != 2 {
		t.Fatalf("record count after re-import: got=%d want=2", got)
	}
}

func TestImportMatch_ScoresRows(t *testing.T) {
	t.Parallel()

	source := &stubMatchSource{rowsByMatch: map[string][]ScoreboardRow{
		"7": {scoreboardRow("aspas", "LEV", 10, 5, 3, 155, 2, 1)},
	}}
	service, playerRepo, statRepo := newTestImportService(source)

	if _, err := service.ImportMatch(context.Background(), "7"); err != nil {
		t.Fatalf("ImportMatch error: %v", err)
	}

	p, err := playerRepo.GetByName(context.Background(), "aspas")
	if err != nil {
		t.Fatalf("player not created: %v", err)
	}
	record, err := statRepo.GetByPlayerAndMatch(context.Background(), p.ID, "7")
	if err != nil {
		t.Fatalf("record not created: %v", err)
	}

	if record.FantasyPoints != 8.75 {
		t.Fatalf("fantasy points: got=%v want=8.75", record.FantasyPoints)
	}
	if record.Kills != 10 || record.Deaths != 5 || record.Assists != 3 {
		t.Fatalf("unexpected k/d/a: %d/%d/%d", record.Kills, record.Deaths, record.Assists)
	}
	if record.ADR != 155 || record.FirstKills != 2 || record.FirstDeaths != 1 {
		t.Fatalf("unexpected adr/fk/fd: %v/%d/%d", record.ADR, record.FirstKills, record.FirstDeaths)
	}
}

func TestImportEvent_FirstWriteWinsIdentity(t *testing.T) {
	t.Parallel()

	rowA := scoreboardRow("Foo", "Red", 10, 10, 2, 120, 1, 1)
	rowB := scoreboardRow("Foo", "Blue", 12, 8, 4, 130, 2, 0)
	rowB.Role = player.RoleSentinel

	source := &stubMatchSource{
		matches: []string{"100", "200"},
		rowsByMatch: map[string][]ScoreboardRow{
			"100": {rowA},
			"200": {rowB},
		},
	}
	service, playerRepo, _ := newTestImportService(source)

	report, err := service.ImportEvent(context.Background())
	if err != nil {
		t.Fatalf("ImportEvent error: %v", err)
	}
	if report.PlayersCreated != 1 {
		t.Fatalf("players created: got=%d want=1", report.PlayersCreated)
	}

	p, err := playerRepo.GetByName(context.Background(), "Foo")
	if err != nil {
		t.Fatalf("player missing: %v", err)
	}
	if p.Team != "Red" {
		t.Fatalf("team overwritten: got=%s want=Red", p.Team)
	}
	if p.Role != player.RoleDuelist {
		t.Fatalf("role overwritten: got=%s want=%s", p.Role, player.RoleDuelist)
	}
}

func TestImportEvent_SingleMatchFailureDoesNotAbortRun(t *testing.T) {
	t.Parallel()

	source := &stubMatchSource{
		matches: []string{"1", "2", "3"},
		rowsByMatch: map[string][]ScoreboardRow{
			"1": {scoreboardRow("a", "T1", 10, 10, 1, 100, 1, 1)},
			"3": {scoreboardRow("b", "T2", 11, 9, 2, 110, 0, 2)},
		},
		errByMatch: map[string]error{
			"2": fmt.Errorf("%w: no aggregate stats container", ErrScoreboardExtract),
		},
	}
	service, _, statRepo := newTestImportService(source)

	report, err := service.ImportEvent(context.Background())
	if err != nil {
		t.Fatalf("ImportEvent error: %v", err)
	}

	if report.MatchesImported != 2 || report.MatchesFailed != 1 {
		t.Fatalf("tally: imported=%d failed=%d", report.MatchesImported, report.MatchesFailed)
	}
	if report.Matches[1].Status != MatchExtractFailed {
		t.Fatalf("match 2 status: %s", report.Matches[1].Status)
	}
	if got := statRepo.Count(); got != 2 {
		t.Fatalf("record count: got=%d want=2", got)
	}
}

func TestImportEvent_FetchFailureStatus(t *testing.T) {
	t.Parallel()

	source := &stubMatchSource{
		matches: []string{"9"},
		errByMatch: map[string]error{
			"9": fmt.Errorf("%w: status=503", ErrMatchFetch),
		},
	}
	service, _, _ := newTestImportService(source)

	report, err := service.ImportEvent(context.Background())
	if err != nil {
		t.Fatalf("ImportEvent error: %v", err)
	}
	if report.Matches[0].Status != MatchFetchFailed {
		t.Fatalf("status: got=%s want=%s", report.Matches[0].Status, MatchFetchFailed)
	}
}

func TestImportEvent_DiscoveryFailureYieldsEmptyRun(t *testing.T) {
	t.Parallel()

	source := &stubMatchSource{discoverErr: errors.New("listing unreachable")}
	service, _, _ := newTestImportService(source)

	report, err := service.ImportEvent(context.Background())
	if err != nil {
		t.Fatalf("ImportEvent error: %v", err)
	}
	if report.MatchesTotal != 0 || len(source.fetchCalls) != 0 {
		t.Fatalf("expected empty run, got %+v", report)
	}
}

func TestImportEvent_ResumableAfterPartialRun(t *testing.T) {
	t.Parallel()

	rowsFor := func(matchID string) []ScoreboardRow {
		return []ScoreboardRow{
			scoreboardRow("p1-"+matchID, "RED", 10, 10, 1, 100, 1, 1),
			scoreboardRow("p2-"+matchID, "BLU", 12, 9, 3, 125, 2, 0),
		}
	}
	allMatches := []string{"1", "2", "3", "4", "5"}
	rowsByMatch := make(map[string][]ScoreboardRow, len(allMatches))
	for _, id := range allMatches {
		rowsByMatch[id] = rowsFor(id)
	}

	playerRepo := memory.NewPlayerRepository()
	statRepo := memory.NewMatchStatRepository()

	// Interrupted run: only the first three matches were committed.
	interrupted := NewImportService(
		&stubMatchSource{matches: allMatches[:3], rowsByMatch: rowsByMatch},
		playerRepo, statRepo, fantasy.DefaultWeights(), nil,
	)
	if _, err := interrupted.ImportEvent(context.Background()); err != nil {
		t.Fatalf("interrupted run error: %v", err)
	}
	if got := statRepo.Count(); got != 6 {
		t.Fatalf("records after partial run: got=%d want=6", got)
	}

	// Full re-run over the same storage.
	rerun := NewImportService(
		&stubMatchSource{matches: allMatches, rowsByMatch: rowsByMatch},
		playerRepo, statRepo, fantasy.DefaultWeights(), nil,
	)
	report, err := rerun.ImportEvent(context.Background())
	if err != nil {
		t.Fatalf("re-run error: %v", err)
	}

	if got := statRepo.Count(); got != 10 {
		t.Fatalf("records after re-run: got=%d want=10", got)
	}
	if report.Duplicates != 6 {
		t.Fatalf("duplicates on re-run: got=%d want=6", report.Duplicates)
	}
	if report.RecordsCreated != 4 {
		t.Fatalf("records created on re-run: got=%d want=4", report.RecordsCreated)
	}
}

type failingStatRepo struct {
	*memory.MatchStatRepository
}

func (r failingStatRepo) Create(context.Context, matchstat.StatRecord) (matchstat.StatRecord, error) {
	return matchstat.StatRecord{}, errors.New("disk full")
}

func TestImportEvent_PersistenceFailureAbortsRun(t *testing.T) {
	t.Parallel()

	source := &stubMatchSource{
		matches: []string{"1", "2"},
		rowsByMatch: map[string][]ScoreboardRow{
			"1": {scoreboardRow("a", "T1", 5, 5, 5, 90, 0, 0)},
			"2": {scoreboardRow("b", "T2", 6, 4, 2, 95, 1, 0)},
		},
	}
	playerRepo := memory.NewPlayerRepository()
	service := NewImportService(source, playerRepo, failingStatRepo{memory.NewMatchStatRepository()}, fantasy.DefaultWeights(), nil)

	_, err := service.ImportEvent(context.Background())
	if err == nil {
		t.Fatal("expected persistence failure to propagate")
	}
	if len(source.fetchCalls) != 1 {
		t.Fatalf("run should stop at first match, fetched %v", source.fetchCalls)
	}
}
