package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vlrfantasy/backend/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]player.Player
	byName map[string]int64
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		nextID: 1,
		byID:   make(map[int64]player.Player),
		byName: make(map[string]int64),
	}
}

func (r *PlayerRepository) GetByName(_ context.Context, name string) (player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return player.Player{}, player.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return player.Player{}, player.ErrNotFound
	}
	return p, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) (player.Player, error) {
	if err := p.Validate(); err != nil {
		return player.Player{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, exists := r.byName[p.Name]; exists {
		// Name is the natural key; creation never overwrites.
		return r.byID[id], nil
	}

	p.ID = r.nextID
	r.nextID++
	r.byID[p.ID] = p
	r.byName[p.Name] = p.ID

	return p, nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}
