package player

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("player not found")

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByName(ctx context.Context, name string) (Player, error)
	Create(ctx context.Context, p Player) (Player, error)
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, id int64) (Player, error)
}
