package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/realitygames/fantasy-league/internal/domain/scoring"
	"github.com/realitygames/fantasy-league/internal/usecase"
)

func (h *Handler) ListEpisodeScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEpisodeScores")
	defer span.End()

	episodeID := r.PathValue("episodeID")
	scores, err := h.scoringService.ListEpisodeScores(ctx, episodeID)
	if err != nil {
		h.logger.WarnContext(ctx, "list episode scores failed", "episode_id", episodeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]episodeScoreDTO, 0, len(scores))
	for _, s := range scores {
		items = append(items, episodeScoreToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListSeasonScoringRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonScoringRules")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	rules, err := h.scoringService.ListSeasonRules(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list scoring rules failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scoringRuleDTO, 0, len(rules))
	for _, rule := range rules {
		items = append(items, scoringRuleToDTO(ctx, rule))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueStandings")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	standings, err := h.scoringService.GetStandings(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, s := range standings {
		items = append(items, standingToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type episodeScoreDTO struct {
	EpisodeID  string `json:"episodeId"`
	CastawayID string `json:"castawayId"`
	Points     int    `json:"points"`
	ComputedAt string `json:"computedAt"`
}

type scoringRuleDTO struct {
	Code      string `json:"code"`
	Label     string `json:"label"`
	Points    int    `json:"points"`
	IsEnabled bool   `json:"isEnabled"`
}

type standingDTO struct {
	UserID      string `json:"userId"`
	TotalPoints int    `json:"totalPoints"`
	Rank        int    `json:"rank"`
	ComputedAt  string `json:"computedAt"`
}

func episodeScoreToDTO(ctx context.Context, v scoring.EpisodeScore) episodeScoreDTO {
	ctx, span := startSpan(ctx, "httpapi.episodeScoreToDTO")
	defer span.End()

	return episodeScoreDTO{
		EpisodeID:  v.EpisodeID,
		CastawayID: v.CastawayID,
		Points:     v.Points,
		ComputedAt: v.ComputedAt.UTC().Format(time.RFC3339),
	}
}

func scoringRuleToDTO(ctx context.Context, v scoring.Rule) scoringRuleDTO {
	ctx, span := startSpan(ctx, "httpapi.scoringRuleToDTO")
	defer span.End()

	return scoringRuleDTO{
		Code:      v.Code,
		Label:     v.Label,
		Points:    v.Points,
		IsEnabled: v.IsEnabled,
	}
}

func standingToDTO(ctx context.Context, v scoring.Standing) standingDTO {
	ctx, span := startSpan(ctx, "httpapi.standingToDTO")
	defer span.End()

	return standingDTO{
		UserID:      v.UserID,
		TotalPoints: v.TotalPoints,
		Rank:        v.Rank,
		ComputedAt:  v.ComputedAt.UTC().Format(time.RFC3339),
	}
}
