package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vlrfantasy/backend/internal/domain/matchstat"
	"github.com/vlrfantasy/backend/internal/domain/player"
	"github.com/vlrfantasy/backend/internal/usecase"
)

const defaultLeaderboardLimit = 50

type Handler struct {
	statsService *usecase.StatsService
	logger       *slog.Logger
	validator    *validator.Validate
}

func NewHandler(statsService *usecase.StatsService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		statsService: statsService,
		logger:       logger,
		validator:    validator.New(),
	}
}

type playerDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Team string `json:"team"`
	Role string `json:"role"`
}

type statRecordDTO struct {
	MatchID       string  `json:"matchId"`
	Kills         int     `json:"kills"`
	Deaths        int     `json:"deaths"`
	Assists       int     `json:"assists"`
	ADR           float64 `json:"adr"`
	FirstKills    int     `json:"firstKills"`
	FirstDeaths   int     `json:"firstDeaths"`
	FantasyPoints float64 `json:"fantasyPoints"`
}

type playerHistoryDTO struct {
	Player  playerDTO       `json:"player"`
	Matches []statRecordDTO `json:"matches"`
}

type leaderboardEntryDTO struct {
	PlayerID    int64   `json:"playerId"`
	PlayerName  string  `json:"playerName"`
	Team        string  `json:"team"`
	Role        string  `json:"role"`
	Matches     int     `json:"matches"`
	TotalPoints float64 `json:"totalPoints"`
}

type leaderboardQuery struct {
	Limit int `validate:"gte=1,lte=500"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:   p.ID,
		Name: p.Name,
		Team: p.Team,
		Role: string(p.Role),
	}
}

func recordToDTO(record matchstat.StatRecord) statRecordDTO {
	return statRecordDTO{
		MatchID:       record.ExternalMatchID,
		Kills:         record.Kills,
		Deaths:        record.Deaths,
		Assists:       record.Assists,
		ADR:           record.ADR,
		FirstKills:    record.FirstKills,
		FirstDeaths:   record.FirstDeaths,
		FantasyPoints: record.FantasyPoints,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.statsService.ListPlayers(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	rawID := strings.TrimSpace(r.PathValue("playerID"))
	playerID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: player id %q is not numeric", usecase.ErrInvalidInput, rawID))
		return
	}

	history, err := h.statsService.GetPlayerHistory(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player history failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	matches := make([]statRecordDTO, 0, len(history.Records))
	for _, record := range history.Records {
		matches = append(matches, recordToDTO(record))
	}

	writeSuccess(ctx, w, http.StatusOK, playerHistoryDTO{
		Player:  playerToDTO(history.Player),
		Matches: matches,
	})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	query := leaderboardQuery{Limit: defaultLeaderboardLimit}
	if rawLimit := strings.TrimSpace(r.URL.Query().Get("limit")); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit %q is not numeric", usecase.ErrInvalidInput, rawLimit))
			return
		}
		query.Limit = limit
	}
	if err := h.validator.StructCtx(ctx, query); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: limit must be between 1 and 500", usecase.ErrInvalidInput))
		return
	}

	entries, err := h.statsService.Leaderboard(ctx, query.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard failed", "limit", query.Limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardEntryDTO{
			PlayerID:    entry.PlayerID,
			PlayerName:  entry.PlayerName,
			Team:        entry.Team,
			Role:        string(entry.Role),
			Matches:     entry.Matches,
			TotalPoints: entry.TotalPoints,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
