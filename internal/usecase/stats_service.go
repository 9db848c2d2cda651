package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vlrfantasy/backend/internal/domain/matchstat"
	"github.com/vlrfantasy/backend/internal/domain/player"
)

// LeaderboardEntry is one player's cumulative fantasy standing.
type LeaderboardEntry struct {
	PlayerID    int64
	PlayerName  string
	Team        string
	Role        player.Role
	Matches     int
	TotalPoints float64
}

// PlayerHistory bundles a player with their per-match records.
type PlayerHistory struct {
	Player  player.Player
	Records []matchstat.StatRecord
}

// StatsService serves the read endpoints over imported data.
type StatsService struct {
	playerRepo player.Repository
	statRepo   matchstat.Repository
}

func NewStatsService(playerRepo player.Repository, statRepo matchstat.Repository) *StatsService {
	return &StatsService{
		playerRepo: playerRepo,
		statRepo:   statRepo,
	}
}

func (s *StatsService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *StatsService) GetPlayerHistory(ctx context.Context, playerID int64) (PlayerHistory, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetPlayerHistory")
	defer span.End()

	if playerID <= 0 {
		return PlayerHistory{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if errors.Is(err, player.ErrNotFound) {
		return PlayerHistory{}, fmt.Errorf("%w: player %d", ErrNotFound, playerID)
	}
	if err != nil {
		return PlayerHistory{}, fmt.Errorf("get player %d: %w", playerID, err)
	}

	records, err := s.statRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return PlayerHistory{}, fmt.Errorf("list stat records for player %d: %w", playerID, err)
	}

	return PlayerHistory{Player: p, Records: records}, nil
}

// Leaderboard joins per-player totals with identities and orders by total
// points descending, name ascending for stable ties.
func (s *StatsService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Leaderboard")
	defer span.End()

	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be greater than zero", ErrInvalidInput)
	}

	totals, err := s.statRepo.TotalsByPlayer(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate player totals: %w", err)
	}
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	playerByID := make(map[int64]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	entries := make([]LeaderboardEntry, 0, len(totals))
	for _, total := range totals {
		p, ok := playerByID[total.PlayerID]
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			PlayerID:    p.ID,
			PlayerName:  p.Name,
			Team:        p.Team,
			Role:        p.Role,
			Matches:     total.Matches,
			TotalPoints: total.TotalPoints,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].PlayerName < entries[j].PlayerName
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}
