package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/seasons/active", handler.GetActiveSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/episodes", handler.ListSeasonEpisodes)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/castaways", handler.ListSeasonCastaways)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/scoring-rules", handler.ListSeasonScoringRules)
	mux.HandleFunc("GET /v1/episodes/{episodeID}/scores", handler.ListEpisodeScores)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedProfileRoutes(mux, handler, verifier)
	registerAuthorizedLeagueRoutes(mux, handler, verifier)
	registerAuthorizedDraftRoutes(mux, handler, verifier)
	registerAuthorizedPickRoutes(mux, handler, verifier)
	registerAuthorizedStandingsRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/episode-events", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunEpisodeEventsJob)))
	mux.Handle("POST /v1/internal/jobs/recalc-standings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecalcStandingsJob)))
	mux.Handle("POST /v1/internal/jobs/pick-reminders", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPickRemindersJob)))
	mux.Handle("POST /v1/internal/jobs/castaways", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunCastawayUpsertJob)))
	mux.Handle("POST /v1/internal/webhooks/entry-fee-paid", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.HandleEntryFeePaidWebhook)))
}

func registerAuthorizedProfileRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/profile/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
	mux.Handle("PUT /v1/profile/me", RequireAuth(verifier, http.HandlerFunc(handler.SaveMyProfile)))
}

func registerAuthorizedLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("GET /v1/leagues/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyLeagues)))
	mux.Handle("POST /v1/leagues/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinLeagueByInvite)))
	mux.Handle("GET /v1/leagues/{leagueID}", RequireAuth(verifier, http.HandlerFunc(handler.GetLeague)))
	mux.Handle("GET /v1/leagues/{leagueID}/members", RequireAuth(verifier, http.HandlerFunc(handler.ListLeagueMembers)))
}

func registerAuthorizedDraftRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/leagues/{leagueID}/draft/rankings", RequireAuth(verifier, http.HandlerFunc(handler.SaveDraftRankings)))
	mux.Handle("GET /v1/leagues/{leagueID}/draft/rankings", RequireAuth(verifier, http.HandlerFunc(handler.GetMyDraftRankings)))
	mux.Handle("POST /v1/leagues/{leagueID}/draft/run", RequireAuth(verifier, http.HandlerFunc(handler.RunLeagueDraft)))
	mux.Handle("GET /v1/leagues/{leagueID}/rosters", RequireAuth(verifier, http.HandlerFunc(handler.ListLeagueRosters)))
}

func registerAuthorizedPickRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/leagues/{leagueID}/episodes/{episodeID}/pick", RequireAuth(verifier, http.HandlerFunc(handler.SaveWeeklyPick)))
	mux.Handle("GET /v1/leagues/{leagueID}/episodes/{episodeID}/pick", RequireAuth(verifier, http.HandlerFunc(handler.GetWeeklyPick)))
	mux.Handle("GET /v1/leagues/{leagueID}/picks/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyWeeklyPicks)))
}

func registerAuthorizedStandingsRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/leagues/{leagueID}/standings", RequireAuth(verifier, http.HandlerFunc(handler.GetLeagueStandings)))
	mux.Handle("GET /v1/leagues/{leagueID}/analytics", RequireAuth(verifier, http.HandlerFunc(handler.GetLeagueAnalytics)))
}
