package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/realitygames/fantasy-league/internal/usecase"
)

func (h *Handler) GetLeagueAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueAnalytics")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	analytics, err := h.statsService.GetLeagueAnalytics(ctx, leagueID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league analytics failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, analyticsToDTO(ctx, analytics))
}

type analyticsDTO struct {
	Standings           []standingDTO          `json:"standings"`
	WeeklyLeaderboard   []weeklyLeaderboardDTO `json:"weeklyLeaderboard"`
	CastawayLeaderboard []castawayTotalDTO     `json:"castawayLeaderboard"`
	PickPopularity      []pickPopularityDTO    `json:"pickPopularity"`
	PickEfficiency      []pickEfficiencyDTO    `json:"pickEfficiency"`
	Consistency         []consistencyDTO       `json:"consistency"`
	RankMovement        []rankMovementDTO      `json:"rankMovement"`
	StatOfTheWeek       *statOfTheWeekDTO      `json:"statOfTheWeek,omitempty"`
}

type weeklyLeaderboardDTO struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Points      int    `json:"points"`
}

type castawayTotalDTO struct {
	CastawayID  string `json:"castawayId"`
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
}

type pickPopularityDTO struct {
	EpisodeID     string  `json:"episodeId"`
	EpisodeNumber int     `json:"episodeNumber"`
	CastawayID    string  `json:"castawayId"`
	Name          string  `json:"name"`
	PickCount     int     `json:"pickCount"`
	PickRate      float64 `json:"pickRate"`
}

type pickEfficiencyDTO struct {
	UserID       string  `json:"userId"`
	DisplayName  string  `json:"displayName"`
	ActualPoints int     `json:"actualPoints"`
	BestPoints   int     `json:"bestPoints"`
	Efficiency   float64 `json:"efficiency"`
}

type consistencyDTO struct {
	UserID      string  `json:"userId"`
	DisplayName string  `json:"displayName"`
	MeanPoints  float64 `json:"meanPoints"`
	StdDev      float64 `json:"stdDev"`
}

type rankMovementDTO struct {
	UserID       string `json:"userId"`
	DisplayName  string `json:"displayName"`
	PreviousRank int    `json:"previousRank"`
	CurrentRank  int    `json:"currentRank"`
	Delta        int    `json:"delta"`
}

type statOfTheWeekDTO struct {
	EpisodeID          string `json:"episodeId"`
	EpisodeNumber      int    `json:"episodeNumber"`
	Headline           string `json:"headline"`
	TopCastawayID      string `json:"topCastawayId"`
	TopPoints          int    `json:"topPoints"`
	AutoPickCount      int    `json:"autoPickCount"`
	BoldPickCastawayID string `json:"boldPickCastawayId,omitempty"`
	BoldPickPoints     int    `json:"boldPickPoints,omitempty"`
}

func analyticsToDTO(ctx context.Context, v usecase.LeagueAnalytics) analyticsDTO {
	ctx, span := startSpan(ctx, "httpapi.analyticsToDTO")
	defer span.End()

	standings := make([]standingDTO, 0, len(v.Standings))
	for _, s := range v.Standings {
		standings = append(standings, standingToDTO(ctx, s))
	}

	weekly := make([]weeklyLeaderboardDTO, 0, len(v.WeeklyLeaderboard))
	for _, row := range v.WeeklyLeaderboard {
		weekly = append(weekly, weeklyLeaderboardDTO{
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			Points:      row.Points,
		})
	}

	castaways := make([]castawayTotalDTO, 0, len(v.CastawayLeaderboard))
	for _, row := range v.CastawayLeaderboard {
		castaways = append(castaways, castawayTotalDTO{
			CastawayID:  row.CastawayID,
			Name:        row.Name,
			TotalPoints: row.TotalPoints,
		})
	}

	popularity := make([]pickPopularityDTO, 0, len(v.PickPopularity))
	for _, row := range v.PickPopularity {
		popularity = append(popularity, pickPopularityDTO{
			EpisodeID:     row.EpisodeID,
			EpisodeNumber: row.EpisodeNumber,
			CastawayID:    row.CastawayID,
			Name:          row.Name,
			PickCount:     row.PickCount,
			PickRate:      row.PickRate,
		})
	}

	efficiency := make([]pickEfficiencyDTO, 0, len(v.PickEfficiency))
	for _, row := range v.PickEfficiency {
		efficiency = append(efficiency, pickEfficiencyDTO{
			UserID:       row.UserID,
			DisplayName:  row.DisplayName,
			ActualPoints: row.ActualPoints,
			BestPoints:   row.BestPoints,
			Efficiency:   row.Efficiency,
		})
	}

	consistency := make([]consistencyDTO, 0, len(v.Consistency))
	for _, row := range v.Consistency {
		consistency = append(consistency, consistencyDTO{
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			MeanPoints:  row.MeanPoints,
			StdDev:      row.StdDev,
		})
	}

	movement := make([]rankMovementDTO, 0, len(v.RankMovement))
	for _, row := range v.RankMovement {
		movement = append(movement, rankMovementDTO{
			UserID:       row.UserID,
			DisplayName:  row.DisplayName,
			PreviousRank: row.PreviousRank,
			CurrentRank:  row.CurrentRank,
			Delta:        row.Delta,
		})
	}

	dto := analyticsDTO{
		Standings:           standings,
		WeeklyLeaderboard:   weekly,
		CastawayLeaderboard: castaways,
		PickPopularity:      popularity,
		PickEfficiency:      efficiency,
		Consistency:         consistency,
		RankMovement:        movement,
	}
	if v.StatOfTheWeek != nil {
		dto.StatOfTheWeek = &statOfTheWeekDTO{
			EpisodeID:          v.StatOfTheWeek.EpisodeID,
			EpisodeNumber:      v.StatOfTheWeek.EpisodeNumber,
			Headline:           v.StatOfTheWeek.Headline,
			TopCastawayID:      v.StatOfTheWeek.TopCastawayID,
			TopPoints:          v.StatOfTheWeek.TopPoints,
			AutoPickCount:      v.StatOfTheWeek.AutoPickCount,
			BoldPickCastawayID: v.StatOfTheWeek.BoldPickCastawayID,
			BoldPickPoints:     v.StatOfTheWeek.BoldPickPoints,
		}
	}

	return dto
}
