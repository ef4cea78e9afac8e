package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/realitygames/fantasy-league/internal/domain/castaway"
	"github.com/realitygames/fantasy-league/internal/usecase"
)

func (h *Handler) RunEpisodeEventsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunEpisodeEventsJob")
	defer span.End()

	var req episodeEventsJobRequest
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

	events := make([]usecase.EpisodeEventInput, 0, len(req.Events))
	for _, e := range req.Events {
		count := 1
		if e.Count != nil {
			count = *e.Count
		}
		events = append(events, usecase.EpisodeEventInput{
			CastawayID: e.CastawayID,
			RuleCode:   e.RuleCode,
			Count:      count,
		})
	}

	scores, err := h.scoringService.RecordEpisodeEvents(ctx, usecase.RecordEpisodeEventsInput{
		EpisodeID: req.EpisodeID,
		Events:    events,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "episode events job failed", "episode_id", req.EpisodeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]episodeScoreDTO, 0, len(scores))
	for _, s := range scores {
		items = append(items, episodeScoreToDTO(ctx, s))
	}

	h.logger.InfoContext(ctx, "episode events job finished", "episode_id", req.EpisodeID, "castaway_count", len(items))
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RunRecalcStandingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalcStandingsJob")
	defer span.End()

	var req recalcStandingsJobRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.recalcService.Recalc(ctx, usecase.RecalcInput{
		SeasonID:   req.SeasonID,
		LeagueID:   req.LeagueID,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "recalc standings job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "recalc standings job finished",
		"league_count", result.LeagueCount,
		"success_count", result.SuccessCount,
		"failed_count", result.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunPickRemindersJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPickRemindersJob")
	defer span.End()

	var req pickRemindersJobRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.reminderService.SendPickReminders(ctx, usecase.SendPickRemindersInput{
		SeasonID:   req.SeasonID,
		MaxWorkers: req.MaxWorkers,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "pick reminders job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "pick reminders job finished",
		"episode_id", result.EpisodeID,
		"sent_count", result.SentCount,
		"failed_count", result.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunCastawayUpsertJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunCastawayUpsertJob")
	defer span.End()

	var req castawayUpsertJobRequest
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

	items := make([]castaway.Castaway, 0, len(req.Castaways))
	for _, c := range req.Castaways {
		items = append(items, castaway.Castaway{
			ID:                c.ID,
			Name:              c.Name,
			Tribe:             c.Tribe,
			Occupation:        c.Occupation,
			Status:            c.Status,
			EliminatedEpisode: c.EliminatedEpisode,
		})
	}

	if err := h.seasonService.UpsertCastaways(ctx, req.SeasonID, items); err != nil {
		h.logger.ErrorContext(ctx, "castaway upsert job failed", "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "castaway upsert job finished", "season_id", req.SeasonID, "castaway_count", len(items))
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"seasonId":      req.SeasonID,
		"castawayCount": len(items),
	})
}

func (h *Handler) HandleEntryFeePaidWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.HandleEntryFeePaidWebhook")
	defer span.End()

	var req entryFeePaidWebhookRequest
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

	if err := h.leagueService.MarkEntryFeePaid(ctx, req.LeagueID, req.UserID); err != nil {
		h.logger.ErrorContext(ctx, "entry fee webhook failed", "league_id", req.LeagueID, "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "entry fee marked paid", "league_id", req.LeagueID, "user_id", req.UserID)
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type episodeEventsJobRequest struct {
	EpisodeID string                   `json:"episodeId" validate:"required"`
	Events    []episodeEventJobPayload `json:"events" validate:"required,min=1,dive"`
}

// Count is optional and defaults to a single occurrence. An explicit
// zero or negative count is rejected.
type episodeEventJobPayload struct {
	CastawayID string `json:"castawayId" validate:"required"`
	RuleCode   string `json:"ruleCode" validate:"required"`
	Count      *int   `json:"count" validate:"omitempty,min=1"`
}

type recalcStandingsJobRequest struct {
	SeasonID   string `json:"seasonId"`
	LeagueID   string `json:"leagueId"`
	MaxWorkers int    `json:"maxWorkers"`
}

type pickRemindersJobRequest struct {
	SeasonID   string `json:"seasonId"`
	MaxWorkers int    `json:"maxWorkers"`
	DryRun     bool   `json:"dryRun"`
}

type castawayUpsertJobRequest struct {
	SeasonID  string                     `json:"seasonId" validate:"required"`
	Castaways []castawayUpsertJobPayload `json:"castaways" validate:"required,min=1,dive"`
}

type castawayUpsertJobPayload struct {
	ID                string `json:"id" validate:"required"`
	Name              string `json:"name" validate:"required"`
	Tribe             string `json:"tribe"`
	Occupation        string `json:"occupation"`
	Status            string `json:"status"`
	EliminatedEpisode int    `json:"eliminatedEpisode" validate:"min=0"`
}

type entryFeePaidWebhookRequest struct {
	LeagueID string `json:"leagueId" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
}
