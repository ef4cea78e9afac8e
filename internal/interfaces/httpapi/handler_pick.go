package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/realitygames/fantasy-league/internal/domain/pick"
	"github.com/realitygames/fantasy-league/internal/usecase"
)

func (h *Handler) SaveWeeklyPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveWeeklyPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	episodeID := r.PathValue("episodeID")

	var req saveWeeklyPickRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.pickService.SubmitPick(ctx, usecase.SubmitPickInput{
		LeagueID:   leagueID,
		UserID:     principal.UserID,
		EpisodeID:  episodeID,
		CastawayID: req.CastawayID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save weekly pick failed", "league_id", leagueID, "episode_id", episodeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeklyPickToDTO(ctx, item))
}

func (h *Handler) GetWeeklyPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeklyPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	episodeID := r.PathValue("episodeID")
	item, err := h.pickService.GetPick(ctx, leagueID, principal.UserID, episodeID)
	if err != nil {
		h.logger.WarnContext(ctx, "get weekly pick failed", "league_id", leagueID, "episode_id", episodeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeklyPickToDTO(ctx, item))
}

func (h *Handler) ListMyWeeklyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyWeeklyPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	picks, err := h.pickService.ListMyPicks(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list weekly picks failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]weeklyPickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, weeklyPickToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type saveWeeklyPickRequest struct {
	CastawayID string `json:"castawayId" validate:"required"`
}

type weeklyPickDTO struct {
	LeagueID   string `json:"leagueId"`
	EpisodeID  string `json:"episodeId"`
	CastawayID string `json:"castawayId"`
	IsAuto     bool   `json:"isAuto"`
	UpdatedAt  string `json:"updatedAt"`
}

func weeklyPickToDTO(ctx context.Context, v pick.WeeklyPick) weeklyPickDTO {
	ctx, span := startSpan(ctx, "httpapi.weeklyPickToDTO")
	defer span.End()

	return weeklyPickDTO{
		LeagueID:   v.LeagueID,
		EpisodeID:  v.EpisodeID,
		CastawayID: v.CastawayID,
		IsAuto:     v.IsAuto,
		UpdatedAt:  v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
