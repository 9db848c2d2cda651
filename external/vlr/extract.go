package vlr

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"

	"github.com/vlrfantasy/backend/internal/domain/agent"
	"github.com/vlrfantasy/backend/internal/domain/player"
	"github.com/vlrfantasy/backend/internal/usecase"
)

// scoreboardRows pulls every player row from the map-aggregate scoreboard.
// A report page carries one overview table per side; both feed the same
// slice, so a complete page yields ten rows.
func scoreboardRows(doc *goquery.Document) ([]usecase.ScoreboardRow, error) {
	container := doc.Find(`div.vm-stats-game[data-game-id="all"]`).First()
	if container.Length() == 0 {
		return nil, crerr.Mark(
			crerr.New("aggregate scoreboard container missing, match may still be live"),
			usecase.ErrScoreboardExtract,
		)
	}

	tables := container.Find("table.wf-table-inset.mod-overview")
	if tables.Length() == 0 {
		return nil, crerr.Mark(
			crerr.New("no overview tables inside aggregate scoreboard"),
			usecase.ErrScoreboardExtract,
		)
	}

	var rows []usecase.ScoreboardRow
	tables.Each(func(_ int, table *goquery.Selection) {
		table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			row, ok := playerRow(tr)
			if ok {
				rows = append(rows, row)
			}
		})
	})

	return rows, nil
}

func playerRow(tr *goquery.Selection) (usecase.ScoreboardRow, bool) {
	nameCell := tr.Find("td.mod-player .text-of").First()
	if nameCell.Length() == 0 {
		// header or summary row
		return usecase.ScoreboardRow{}, false
	}

	var cells []string
	tr.Find("td.mod-stat").Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, cellValue(td))
	})

	return usecase.ScoreboardRow{
		PlayerName: strings.TrimSpace(nameCell.Text()),
		TeamTag:    strings.TrimSpace(tr.Find("td.mod-player .ot-eta").First().Text()),
		Role:       roleFromAgentIcon(tr),
		Cells:      cells,
	}, true
}

func roleFromAgentIcon(tr *goquery.Selection) player.Role {
	icon := tr.Find("td.mod-agents img").First()
	if icon.Length() == 0 {
		return player.RoleUnknown
	}

	name, _ := icon.Attr("title")
	if strings.TrimSpace(name) == "" {
		name, _ = icon.Attr("alt")
	}
	if strings.TrimSpace(name) == "" {
		return player.RoleUnknown
	}

	return agent.RoleFor(name)
}

// cellValue prefers the combined-sides value; the raw cell text interleaves
// attack and defense splits on pages that render them.
func cellValue(td *goquery.Selection) string {
	both := td.Find("span.side.mod-both").First()
	if both.Length() > 0 {
		return strings.TrimSpace(both.Text())
	}
	return strings.Join(strings.Fields(td.Text()), " ")
}
