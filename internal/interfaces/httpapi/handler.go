package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/realitygames/fantasy-league/internal/platform/logging"
	"github.com/realitygames/fantasy-league/internal/usecase"
)

type Handler struct {
	leagueService   *usecase.LeagueService
	draftService    *usecase.DraftService
	pickService     *usecase.PickService
	seasonService   *usecase.SeasonService
	scoringService  *usecase.ScoringService
	statsService    *usecase.StatsService
	profileService  *usecase.ProfileService
	reminderService *usecase.ReminderService
	recalcService   *usecase.RecalcService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	draftService *usecase.DraftService,
	pickService *usecase.PickService,
	seasonService *usecase.SeasonService,
	scoringService *usecase.ScoringService,
	statsService *usecase.StatsService,
	profileService *usecase.ProfileService,
	reminderService *usecase.ReminderService,
	recalcService *usecase.RecalcService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:   leagueService,
		draftService:    draftService,
		pickService:     pickService,
		seasonService:   seasonService,
		scoringService:  scoringService,
		statsService:    statsService,
		profileService:  profileService,
		reminderService: reminderService,
		recalcService:   recalcService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
