package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vlrfantasy/backend/internal/domain/matchstat"
)

type statKey struct {
	playerID int64
	matchID  string
}

type MatchStatRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]matchstat.StatRecord
	byKey  map[statKey]int64
}

func NewMatchStatRepository() *MatchStatRepository {
	return &MatchStatRepository{
		nextID: 1,
		byID:   make(map[int64]matchstat.StatRecord),
		byKey:  make(map[statKey]int64),
	}
}

func (r *MatchStatRepository) GetByPlayerAndMatch(_ context.Context, playerID int64, externalMatchID string) (matchstat.StatRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[statKey{playerID: playerID, matchID: externalMatchID}]
	if !ok {
		return matchstat.StatRecord{}, matchstat.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *MatchStatRepository) Create(_ context.Context, record matchstat.StatRecord) (matchstat.StatRecord, error) {
	if err := record.Validate(); err != nil {
		return matchstat.StatRecord{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := statKey{playerID: record.PlayerID, matchID: record.ExternalMatchID}
	if id, exists := r.byKey[key]; exists {
		// Records are immutable; a second insert for the pair is a no-op.
		return r.byID[id], nil
	}

	record.ID = r.nextID
	r.nextID++
	r.byID[record.ID] = record
	r.byKey[key] = record.ID

	return record, nil
}

func (r *MatchStatRepository) ListByPlayer(_ context.Context, playerID int64) ([]matchstat.StatRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchstat.StatRecord, 0, 8)
	for _, record := range r.byID {
		if record.PlayerID == playerID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *MatchStatRepository) TotalsByPlayer(_ context.Context) ([]matchstat.PlayerTotal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	totalByPlayer := make(map[int64]matchstat.PlayerTotal)
	for _, record := range r.byID {
		total := totalByPlayer[record.PlayerID]
		total.PlayerID = record.PlayerID
		total.Matches++
		total.TotalPoints += record.FantasyPoints
		totalByPlayer[record.PlayerID] = total
	}

	out := make([]matchstat.PlayerTotal, 0, len(totalByPlayer))
	for _, total := range totalByPlayer {
		out = append(out, total)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })

	return out, nil
}

// Count reports the number of stored records. Test helper.
func (r *MatchStatRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
