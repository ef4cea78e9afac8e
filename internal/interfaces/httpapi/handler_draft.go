package httpapi

import (
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/realitygames/fantasy-league/internal/domain/draft"
	"github.com/realitygames/fantasy-league/internal/domain/roster"
	"github.com/realitygames/fantasy-league/internal/usecase"
)

func (h *Handler) SaveDraftRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveDraftRankings")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	var req saveRankingsRequest
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

	err := h.draftService.SubmitRankings(ctx, usecase.SubmitRankingsInput{
		LeagueID:    leagueID,
		UserID:      principal.UserID,
		CastawayIDs: req.CastawayIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save draft rankings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	rankings, err := h.draftService.GetMyRankings(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "reload draft rankings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankingsToDTO(ctx, rankings))
}

func (h *Handler) GetMyDraftRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyDraftRankings")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	rankings, err := h.draftService.GetMyRankings(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft rankings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankingsToDTO(ctx, rankings))
}

func (h *Handler) RunLeagueDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunLeagueDraft")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	entries, err := h.draftService.RunDraft(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "run draft failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterEntriesToDTO(ctx, entries))
}

func (h *Handler) ListLeagueRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueRosters")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	entries, err := h.draftService.GetLeagueRosters(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list rosters failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterEntriesToDTO(ctx, entries))
}

type saveRankingsRequest struct {
	CastawayIDs []string `json:"castawayIds" validate:"required,min=1,dive,required"`
}

type rankingDTO struct {
	CastawayID string `json:"castawayId"`
	Rank       int    `json:"rank"`
}

type rosterEntryDTO struct {
	UserID     string `json:"userId"`
	CastawayID string `json:"castawayId"`
	DraftRound int    `json:"draftRound"`
	DraftPick  int    `json:"draftPick"`
}

func rankingsToDTO(ctx context.Context, rankings []draft.Ranking) []rankingDTO {
	ctx, span := startSpan(ctx, "httpapi.rankingsToDTO")
	defer span.End()

	items := make([]rankingDTO, 0, len(rankings))
	for _, rk := range rankings {
		items = append(items, rankingDTO{
			CastawayID: rk.CastawayID,
			Rank:       rk.Rank,
		})
	}
	return items
}

func rosterEntriesToDTO(ctx context.Context, entries []roster.Entry) []rosterEntryDTO {
	ctx, span := startSpan(ctx, "httpapi.rosterEntriesToDTO")
	defer span.End()

	items := make([]rosterEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, rosterEntryDTO{
			UserID:     e.UserID,
			CastawayID: e.CastawayID,
			DraftRound: e.DraftRound,
			DraftPick:  e.DraftPick,
		})
	}
	return items
}
