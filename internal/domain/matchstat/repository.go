package matchstat

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("stat record not found")

type Repository interface {
	GetByPlayerAndMatch(ctx context.Context, playerID int64, externalMatchID string) (StatRecord, error)
	Create(ctx context.Context, record StatRecord) (StatRecord, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]StatRecord, error)
	TotalsByPlayer(ctx context.Context) ([]PlayerTotal, error)
}
