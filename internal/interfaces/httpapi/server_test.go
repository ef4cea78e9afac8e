package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/realitygames/fantasy-league/internal/domain/user"
	"github.com/realitygames/fantasy-league/internal/infrastructure/repository/memory"
	idgen "github.com/realitygames/fantasy-league/internal/platform/id"
	"github.com/realitygames/fantasy-league/internal/platform/logging"
	"github.com/realitygames/fantasy-league/internal/usecase"
)

const (
	testAccessToken      = "valid-token"
	testInternalJobToken = "job-token"
)

type staticVerifier struct {
	principal user.Principal
}

func (v staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if token != testAccessToken {
		return user.Principal{}, fmt.Errorf("%w: unknown access token", usecase.ErrUnauthorized)
	}
	return v.principal, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository(nil)
	seasonRepo := memory.NewSeasonRepository(memory.SeedSeasons(), memory.SeedEpisodes())
	castawayRepo := memory.NewCastawayRepository(memory.SeedCastaways())
	draftRepo := memory.NewDraftRepository()
	rosterRepo := memory.NewRosterRepository()
	pickRepo := memory.NewPickRepository()
	scoringRepo := memory.NewScoringRepository(memory.SeedScoringRules(), memory.SeedEpisodeSeasons())
	userRepo := memory.NewUserRepository([]user.User{
		{ID: "user-ana", Email: "ana@example.com", DisplayName: "Ana"},
	})

	idGen := idgen.NewRandomGenerator()
	leagueService := usecase.NewLeagueService(leagueRepo, seasonRepo, userRepo, nil, idGen)
	draftService := usecase.NewDraftService(leagueRepo, castawayRepo, draftRepo, rosterRepo)
	pickService := usecase.NewPickService(leagueRepo, seasonRepo, castawayRepo, rosterRepo, pickRepo, idGen)
	scoringService := usecase.NewScoringService(leagueRepo, seasonRepo, castawayRepo, rosterRepo, pickRepo, scoringRepo, idGen, 0)
	statsService := usecase.NewStatsService(leagueRepo, seasonRepo, castawayRepo, rosterRepo, userRepo, scoringRepo, scoringService)
	seasonService := usecase.NewSeasonService(seasonRepo, castawayRepo)
	profileService := usecase.NewProfileService(userRepo)
	reminderService := usecase.NewReminderService(leagueRepo, seasonRepo, pickRepo, userRepo, nil, 24*time.Hour, logging.NewNop())
	recalcService := usecase.NewRecalcService(leagueRepo, seasonRepo, scoringService)

	handler := NewHandler(
		leagueService,
		draftService,
		pickService,
		seasonService,
		scoringService,
		statsService,
		profileService,
		reminderService,
		recalcService,
		logging.NewNop(),
	)

	verifier := staticVerifier{principal: user.Principal{UserID: "user-ana", Email: "ana@example.com"}}
	return NewRouter(handler, verifier, logging.NewNop(), []string{"*"}, testInternalJobToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["status"].(string); got != "ok" {
		t.Fatalf("unexpected health payload: %v", body)
	}
}

func TestRouter_PublicActiveSeason(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/active", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["number"].(float64); int(got) != 48 {
		t.Fatalf("unexpected active season payload: %v", body)
	}
}

func TestRouter_PublicScoringRules(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/island-trials-48/scoring-rules", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].([]any)
	if len(data) != 10 {
		t.Fatalf("expected 10 scoring rules, got %d", len(data))
	}
}

func TestRouter_AuthorizedRoute_RejectsMissingToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_AuthorizedRoute_RejectsUnknownToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/me", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_CreateAndGetLeague(t *testing.T) {
	router := newTestRouter(t)

	createReq := httptest.NewRequest(http.MethodPost, "/v1/leagues", strings.NewReader(`{"name":"Tuesday Tribal"}`))
	createReq.Header.Set("Authorization", "Bearer "+testAccessToken)
	createRec := httptest.NewRecorder()
	router.ServeHTTP(createRec, createReq)

	if createRec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", createRec.Code, createRec.Body.String())
	}
	body := decodeEnvelope(t, createRec)
	data, _ := body["data"].(map[string]any)
	leagueObj, _ := data["league"].(map[string]any)
	leagueID, _ := leagueObj["id"].(string)
	if leagueID == "" {
		t.Fatalf("expected league id in create response: %v", body)
	}
	if code, _ := leagueObj["inviteCode"].(string); len(code) != 8 {
		t.Fatalf("expected 8 character invite code, got %q", code)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/v1/leagues/"+leagueID, nil)
	getReq.Header.Set("Authorization", "Bearer "+testAccessToken)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", getRec.Code, getRec.Body.String())
	}
	getBody := decodeEnvelope(t, getRec)
	getData, _ := getBody["data"].(map[string]any)
	if got, _ := getData["name"].(string); got != "Tuesday Tribal" {
		t.Fatalf("unexpected league name: %v", getBody)
	}
}

func TestRouter_CreateLeague_RejectsUnknownField(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/leagues", strings.NewReader(`{"name":"x","bogus":true}`))
	req.Header.Set("Authorization", "Bearer "+testAccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_InternalJob_RequiresToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalc-standings", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_InternalJob_EpisodeEvents_RejectsZeroCount(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"episodeId":"ep-48-01","events":[{"castawayId":"cast-48-mara","ruleCode":"SURVIVE_EPISODE","count":0}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/episode-events", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testInternalJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_InternalJob_EpisodeEvents_OmittedCountScoresOnce(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"episodeId":"ep-48-01","events":[{"castawayId":"cast-48-mara","ruleCode":"INDIVIDUAL_IMMUNITY"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/episode-events", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testInternalJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("expected one episode score, got %v", body)
	}
	score, _ := data[0].(map[string]any)
	if got, _ := score["points"].(float64); int(got) != 5 {
		t.Fatalf("expected 5 points for a single immunity, got %v", score)
	}
}

func TestRouter_InternalJob_RecalcStandings(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalc-standings", strings.NewReader(`{}`))
	req.Header.Set("X-Internal-Job-Token", testInternalJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if _, ok := data["league_count"]; !ok {
		t.Fatalf("expected league_count in recalc result: %v", body)
	}
}
