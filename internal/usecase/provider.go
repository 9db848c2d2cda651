package usecase

import (
	"context"

	"github.com/vlrfantasy/backend/internal/domain/player"
)

// MatchSource is the document-extraction boundary of the import pipeline.
// Implementations own the concrete markup selection strategy so it can be
// swapped per upstream revision without touching normalization or scoring.
type MatchSource interface {
	// DiscoverMatches returns the ordered, de-duplicated match
	// identifiers of the configured tournament. A listing fetch failure
	// is logged by the source and yields an empty slice, not an error.
	DiscoverMatches(ctx context.Context) ([]string, error)

	// FetchMatchRows retrieves one match page and extracts its raw
	// scoreboard rows across both competing sides. Failures are marked
	// with ErrMatchFetch or ErrScoreboardExtract.
	FetchMatchRows(ctx context.Context, matchID string) ([]ScoreboardRow, error)
}

// ScoreboardRow is one player's raw line as it appears in the aggregate
// scoreboard: identity fields already resolved, statistic cells still
// unparsed text in document order.
type ScoreboardRow struct {
	PlayerName string
	TeamTag    string
	Role       player.Role
	Cells      []string
}
