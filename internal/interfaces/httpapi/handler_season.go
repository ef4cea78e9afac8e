package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/realitygames/fantasy-league/internal/domain/castaway"
	"github.com/realitygames/fantasy-league/internal/domain/season"
)

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.seasonService.ListSeasons(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, seasonToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetActiveSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveSeason")
	defer span.End()

	item, err := h.seasonService.GetActiveSeason(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get active season failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(ctx, item))
}

func (h *Handler) ListSeasonEpisodes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonEpisodes")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	episodes, err := h.seasonService.ListEpisodes(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list episodes failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]episodeDTO, 0, len(episodes))
	for _, e := range episodes {
		items = append(items, episodeToDTO(ctx, e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListSeasonCastaways(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonCastaways")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	castaways, err := h.seasonService.ListCastaways(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list castaways failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]castawayDTO, 0, len(castaways))
	for _, c := range castaways {
		items = append(items, castawayToDTO(ctx, c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type seasonDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
	IsActive bool   `json:"isActive"`
}

type episodeDTO struct {
	ID          string `json:"id"`
	SeasonID    string `json:"seasonId"`
	Number      int    `json:"number"`
	Title       string `json:"title"`
	AirsAt      string `json:"airsAt"`
	PicksLockAt string `json:"picksLockAt"`
	IsScored    bool   `json:"isScored"`
}

type castawayDTO struct {
	ID                string `json:"id"`
	SeasonID          string `json:"seasonId"`
	Name              string `json:"name"`
	Tribe             string `json:"tribe"`
	Occupation        string `json:"occupation"`
	Status            string `json:"status"`
	EliminatedEpisode int    `json:"eliminatedEpisode,omitempty"`
}

func seasonToDTO(ctx context.Context, v season.Season) seasonDTO {
	ctx, span := startSpan(ctx, "httpapi.seasonToDTO")
	defer span.End()

	return seasonDTO{
		ID:       v.ID,
		Name:     v.Name,
		Number:   v.Number,
		IsActive: v.IsActive,
	}
}

func episodeToDTO(ctx context.Context, v season.Episode) episodeDTO {
	ctx, span := startSpan(ctx, "httpapi.episodeToDTO")
	defer span.End()

	return episodeDTO{
		ID:          v.ID,
		SeasonID:    v.SeasonID,
		Number:      v.Number,
		Title:       v.Title,
		AirsAt:      v.AirsAt.UTC().Format(time.RFC3339),
		PicksLockAt: v.PicksLockAt.UTC().Format(time.RFC3339),
		IsScored:    v.IsScored,
	}
}

func castawayToDTO(ctx context.Context, v castaway.Castaway) castawayDTO {
	ctx, span := startSpan(ctx, "httpapi.castawayToDTO")
	defer span.End()

	return castawayDTO{
		ID:                v.ID,
		SeasonID:          v.SeasonID,
		Name:              v.Name,
		Tribe:             v.Tribe,
		Occupation:        v.Occupation,
		Status:            castaway.NormalizeStatus(v.Status),
		EliminatedEpisode: v.EliminatedEpisode,
	}
}
