package vlr

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/vlrfantasy/backend/internal/domain/player"
	"github.com/vlrfantasy/backend/internal/usecase"
)

type fixtureRow struct {
	name  string
	team  string
	agent string
	cells []string
}

func statCells(kills, deaths, assists int, adr string, fk, fd int) []string {
	return []string{
		"1.18", "245",
		fmt.Sprintf("%d", kills), fmt.Sprintf("%d", deaths), fmt.Sprintf("%d", assists),
		"+5", "74%", adr, "27%",
		fmt.Sprintf("%d", fk), fmt.Sprintf("%d", fd),
	}
}

func renderRow(row fixtureRow) string {
	var b strings.Builder
	b.WriteString("<tr>")
	fmt.Fprintf(&b, `<td class="mod-player"><div class="text-of">%s</div><div class="ot-eta">%s</div></td>`, row.name, row.team)
	if row.agent != "" {
		fmt.Fprintf(&b, `<td class="mod-agents"><img title="%s" alt=""></td>`, row.agent)
	} else {
		b.WriteString(`<td class="mod-agents"></td>`)
	}
	for _, cell := range row.cells {
		fmt.Fprintf(&b, `<td class="mod-stat"><span class="side mod-both">%s</span><span class="side mod-t">0</span><span class="side mod-ct">0</span></td>`, cell)
	}
	b.WriteString("</tr>")
	return b.String()
}

func renderTable(rows []fixtureRow) string {
	var b strings.Builder
	b.WriteString(`<table class="wf-table-inset mod-overview"><thead><tr><th>Player</th></tr></thead><tbody>`)
	for _, row := range rows {
		b.WriteString(renderRow(row))
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

func renderMatchPage(sideA, sideB []fixtureRow) string {
	return fmt.Sprintf(`<html><body>
		<div class="vm-stats-game" data-game-id="1">%s</div>
		<div class="vm-stats-game" data-game-id="all">%s%s</div>
	</body></html>`, renderTable(sideA), renderTable(sideA), renderTable(sideB))
}

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestScoreboardRowsBothSides(t *testing.T) {
	t.Parallel()

	var sideA, sideB []fixtureRow
	for i := 0; i < 5; i++ {
		sideA = append(sideA, fixtureRow{
			name: fmt.Sprintf("alpha%d", i), team: "ALP", agent: "Jett",
			cells: statCells(10+i, 5, 3, "156", 2, 1),
		})
		sideB = append(sideB, fixtureRow{
			name: fmt.Sprintf("bravo%d", i), team: "BRV", agent: "Sova",
			cells: statCells(8, 7+i, 4, "140", 1, 2),
		})
	}

	rows, err := scoreboardRows(parseDoc(t, renderMatchPage(sideA, sideB)))
	if err != nil {
		t.Fatalf("scoreboardRows: %v", err)
	}
	if len(rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(rows))
	}

	first := rows[0]
	if first.PlayerName != "alpha0" || first.TeamTag != "ALP" {
		t.Fatalf("first row identity = %q/%q", first.PlayerName, first.TeamTag)
	}
	if first.Role != player.RoleDuelist {
		t.Fatalf("first row role = %q, want %q", first.Role, player.RoleDuelist)
	}
	if len(first.Cells) != 11 {
		t.Fatalf("first row cells = %d, want 11", len(first.Cells))
	}
	if first.Cells[2] != "10" || first.Cells[7] != "156" {
		t.Fatalf("first row cells = %v", first.Cells)
	}
	if rows[5].Role != player.RoleInitiator {
		t.Fatalf("sixth row role = %q, want %q", rows[5].Role, player.RoleInitiator)
	}
}

func TestScoreboardRowsPrefersCombinedSides(t *testing.T) {
	t.Parallel()

	// No mod-both span: the raw cell interleaves both halves.
	html := `<html><body><div class="vm-stats-game" data-game-id="all">
		<table class="wf-table-inset mod-overview"><tbody><tr>
			<td class="mod-player"><div class="text-of">solo</div><div class="ot-eta">SLO</div></td>
			<td class="mod-agents"><img title="Omen"></td>
			<td class="mod-stat"><span class="side mod-both">1.10</span></td>
			<td class="mod-stat">
				240
			</td>
		</tr></tbody></table>
	</div></body></html>`

	rows, err := scoreboardRows(parseDoc(t, html))
	if err != nil {
		t.Fatalf("scoreboardRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Cells[0] != "1.10" {
		t.Fatalf("cell 0 = %q, want combined value", rows[0].Cells[0])
	}
	if rows[0].Cells[1] != "240" {
		t.Fatalf("cell 1 = %q, want whitespace-normalized text", rows[0].Cells[1])
	}
	if rows[0].Role != player.RoleController {
		t.Fatalf("role = %q, want %q", rows[0].Role, player.RoleController)
	}
}

func TestScoreboardRowsSkipsNamelessRows(t *testing.T) {
	t.Parallel()

	sideA := []fixtureRow{{name: "keeper", team: "KPR", agent: "Killjoy", cells: statCells(12, 9, 2, "130", 1, 0)}}
	page := renderMatchPage(sideA, nil)
	// summary row with stats but no player cell
	page = strings.Replace(page, "</tbody></table>", `<tr><td class="mod-stat">99</td></tr></tbody></table>`, 2)

	rows, err := scoreboardRows(parseDoc(t, page))
	if err != nil {
		t.Fatalf("scoreboardRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Role != player.RoleSentinel {
		t.Fatalf("role = %q, want %q", rows[0].Role, player.RoleSentinel)
	}
}

func TestScoreboardRowsMissingAgentIcon(t *testing.T) {
	t.Parallel()

	sideA := []fixtureRow{{name: "ghost", team: "GST", cells: statCells(5, 5, 5, "100", 0, 0)}}

	rows, err := scoreboardRows(parseDoc(t, renderMatchPage(sideA, nil)))
	if err != nil {
		t.Fatalf("scoreboardRows: %v", err)
	}
	if rows[0].Role != player.RoleUnknown {
		t.Fatalf("role = %q, want %q", rows[0].Role, player.RoleUnknown)
	}
}

func TestScoreboardRowsMissingContainer(t *testing.T) {
	t.Parallel()

	html := `<html><body><div class="vm-stats-game" data-game-id="1">` +
		renderTable([]fixtureRow{{name: "early", team: "ERL", agent: "Jett", cells: statCells(1, 1, 1, "50", 0, 0)}}) +
		`</div></body></html>`

	_, err := scoreboardRows(parseDoc(t, html))
	if !errors.Is(err, usecase.ErrScoreboardExtract) {
		t.Fatalf("err = %v, want ErrScoreboardExtract", err)
	}
}

func TestScoreboardRowsEmptyContainer(t *testing.T) {
	t.Parallel()

	html := `<html><body><div class="vm-stats-game" data-game-id="all"><p>stats pending</p></div></body></html>`

	_, err := scoreboardRows(parseDoc(t, html))
	if !errors.Is(err, usecase.ErrScoreboardExtract) {
		t.Fatalf("err = %v, want ErrScoreboardExtract", err)
	}
}

func TestMatchIDsFromListing(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/596399/team-a-vs-team-b">A vs B</a>
		<a href="/player/4291/somebody">player</a>
		<a href="/596399/team-a-vs-team-b?tab=overview">A vs B again</a>
		<a href="/596402/team-c-vs-team-d">C vs D</a>
		<a href="/event/2097/champions">event nav</a>
		<a href="/596399/">A vs B third time</a>
		<a href="https://example.org/596500/external-mirror">absolute</a>
	</body></html>`

	ids := matchIDsFromListing(parseDoc(t, html))

	want := []string{"596399", "596402", "596500"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestMatchIDFromHref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		href   string
		wantID string
		wantOK bool
	}{
		{"/596399/loud-vs-drx", "596399", true},
		{"/596399/", "596399", true},
		{"/player/123/somebody", "", false},
		{"/rankings/asia-pacific", "", false},
		{"#", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		id, ok := matchIDFromHref(tt.href)
		if id != tt.wantID || ok != tt.wantOK {
			t.Fatalf("matchIDFromHref(%q) = %q,%v, want %q,%v", tt.href, id, ok, tt.wantID, tt.wantOK)
		}
	}
}
