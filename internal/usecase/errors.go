package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrMatchFetch marks a per-match page that was unreachable, timed
	// out, or answered non-2xx. The match is skipped, never retried.
	ErrMatchFetch = errors.New("match fetch failed")
	// ErrScoreboardExtract marks a match page without a recognizable
	// aggregate scoreboard, typically a match that has not concluded.
	ErrScoreboardExtract = errors.New("scoreboard extract failed")
)
