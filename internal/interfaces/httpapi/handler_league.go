package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/realitygames/fantasy-league/internal/domain/league"
	"github.com/realitygames/fantasy-league/internal/usecase"
)

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createLeagueRequest
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

	result, err := h.leagueService.CreateLeague(ctx, usecase.CreateLeagueInput{
		OwnerUserID: principal.UserID,
		SeasonID:    req.SeasonID,
		Name:        req.Name,
		IsPublic:    req.IsPublic,
		IsPaid:      req.IsPaid,
		EntryFeeUSD: req.EntryFeeUSD,
		MaxMembers:  req.MaxMembers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueJoinResultToDTO(ctx, result))
}

func (h *Handler) JoinLeagueByInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeagueByInvite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req joinLeagueRequest
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

	result, err := h.leagueService.JoinByInviteCode(ctx, usecase.JoinLeagueByInviteInput{
		UserID:     principal.UserID,
		InviteCode: req.InviteCode,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueJoinResultToDTO(ctx, result))
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	item, err := h.leagueService.GetLeague(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(ctx, item))
}

func (h *Handler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLeagues")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagues, err := h.leagueService.ListMyLeagues(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my leagues failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(ctx, l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListLeagueMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueMembers")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	members, err := h.leagueService.ListMembers(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list league members failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueMemberDTO, 0, len(members))
	for _, m := range members {
		items = append(items, leagueMemberToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type createLeagueRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	SeasonID    string `json:"seasonId"`
	IsPublic    bool   `json:"isPublic"`
	IsPaid      bool   `json:"isPaid"`
	EntryFeeUSD int    `json:"entryFeeUsd" validate:"min=0"`
	MaxMembers  int    `json:"maxMembers" validate:"min=0,max=100"`
}

type joinLeagueRequest struct {
	InviteCode string `json:"inviteCode" validate:"required,min=6,max=12"`
}

type leagueDTO struct {
	ID          string `json:"id"`
	SeasonID    string `json:"seasonId"`
	Name        string `json:"name"`
	OwnerUserID string `json:"ownerUserId"`
	InviteCode  string `json:"inviteCode"`
	IsPublic    bool   `json:"isPublic"`
	IsPaid      bool   `json:"isPaid"`
	EntryFeeUSD int    `json:"entryFeeUsd"`
	MaxMembers  int    `json:"maxMembers"`
	RosterSize  int    `json:"rosterSize"`
	DraftStatus string `json:"draftStatus"`
	CreatedAt   string `json:"createdAt"`
}

type leagueJoinResultDTO struct {
	League      leagueDTO `json:"league"`
	CheckoutURL string    `json:"checkoutUrl,omitempty"`
}

type leagueMemberDTO struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	IsOwner     bool   `json:"isOwner"`
	IsPaid      bool   `json:"isPaid"`
	JoinedAt    string `json:"joinedAt"`
}

func leagueToDTO(ctx context.Context, v league.League) leagueDTO {
	ctx, span := startSpan(ctx, "httpapi.leagueToDTO")
	defer span.End()

	return leagueDTO{
		ID:          v.ID,
		SeasonID:    v.SeasonID,
		Name:        v.Name,
		OwnerUserID: v.OwnerUserID,
		InviteCode:  v.InviteCode,
		IsPublic:    v.IsPublic,
		IsPaid:      v.IsPaid,
		EntryFeeUSD: v.EntryFeeUSD,
		MaxMembers:  v.MaxMembers,
		RosterSize:  v.RosterSize,
		DraftStatus: v.DraftStatus,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func leagueJoinResultToDTO(ctx context.Context, v usecase.CreateLeagueResult) leagueJoinResultDTO {
	ctx, span := startSpan(ctx, "httpapi.leagueJoinResultToDTO")
	defer span.End()

	return leagueJoinResultDTO{
		League:      leagueToDTO(ctx, v.League),
		CheckoutURL: v.CheckoutURL,
	}
}

func leagueMemberToDTO(ctx context.Context, v usecase.LeagueMemberView) leagueMemberDTO {
	ctx, span := startSpan(ctx, "httpapi.leagueMemberToDTO")
	defer span.End()

	return leagueMemberDTO{
		UserID:      v.UserID,
		DisplayName: v.DisplayName,
		IsOwner:     v.IsOwner,
		IsPaid:      v.IsPaid,
		JoinedAt:    v.JoinedAt.UTC().Format(time.RFC3339),
	}
}
