package usecase

import (
	"testing"
	"time"

	"github.com/realitygames/fantasy-league/internal/domain/league"
	"github.com/realitygames/fantasy-league/internal/domain/user"
	"github.com/realitygames/fantasy-league/internal/infrastructure/repository/memory"
	idgen "github.com/realitygames/fantasy-league/internal/platform/id"
)

// beforeFirstLock is comfortably ahead of the first seeded episode lock,
// afterFirstLock is between the first and second locks.
var (
	beforeFirstLock = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	afterFirstLock  = time.Date(2026, 3, 4, 19, 30, 0, 0, time.UTC)
)

type serviceFixture struct {
	leagueRepo   *memory.LeagueRepository
	seasonRepo   *memory.SeasonRepository
	castawayRepo *memory.CastawayRepository
	draftRepo    *memory.DraftRepository
	rosterRepo   *memory.RosterRepository
	pickRepo     *memory.PickRepository
	scoringRepo  *memory.ScoringRepository
	userRepo     *memory.UserRepository

	leagues *LeagueService
	drafts  *DraftService
	picks   *PickService
	scoring *ScoringService
}

func seedUsers() []user.User {
	return []user.User{
		{ID: "user-1", Email: "ana@example.com", DisplayName: "Ana", Phone: "+15550100001"},
		{ID: "user-2", Email: "ben@example.com", DisplayName: "Ben", Phone: "+15550100002"},
		{ID: "user-3", Email: "cam@example.com", DisplayName: "Cam"},
	}
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		leagueRepo:   memory.NewLeagueRepository(nil),
		seasonRepo:   memory.NewSeasonRepository(memory.SeedSeasons(), memory.SeedEpisodes()),
		castawayRepo: memory.NewCastawayRepository(memory.SeedCastaways()),
		draftRepo:    memory.NewDraftRepository(),
		rosterRepo:   memory.NewRosterRepository(),
		pickRepo:     memory.NewPickRepository(),
		scoringRepo:  memory.NewScoringRepository(memory.SeedScoringRules(), memory.SeedEpisodeSeasons()),
		userRepo:     memory.NewUserRepository(seedUsers()),
	}

	gen := idgen.NewRandomGenerator()
	f.leagues = NewLeagueService(f.leagueRepo, f.seasonRepo, f.userRepo, nil, gen)
	f.drafts = NewDraftService(f.leagueRepo, f.castawayRepo, f.draftRepo, f.rosterRepo)
	f.picks = NewPickService(f.leagueRepo, f.seasonRepo, f.castawayRepo, f.rosterRepo, f.pickRepo, gen)
	f.scoring = NewScoringService(f.leagueRepo, f.seasonRepo, f.castawayRepo, f.rosterRepo, f.pickRepo, f.scoringRepo, gen, 0)

	f.picks.now = func() time.Time { return beforeFirstLock }
	f.scoring.now = func() time.Time { return beforeFirstLock }

	return f
}

// createLeagueWithMembers creates a free league owned by user-1 and joins the
// extra members through the invite code.
func (f *serviceFixture) createLeagueWithMembers(t *testing.T, memberIDs ...string) league.League {
	t.Helper()

	created, err := f.leagues.CreateLeague(t.Context(), CreateLeagueInput{
		OwnerUserID: "user-1",
		Name:        "Tuesday Tribal",
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}

	for _, userID := range memberIDs {
		if _, err := f.leagues.JoinByInviteCode(t.Context(), JoinLeagueByInviteInput{
			UserID:     userID,
			InviteCode: created.League.InviteCode,
		}); err != nil {
			t.Fatalf("join league as %s: %v", userID, err)
		}
	}

	return created.League
}

// draftedLeague builds a two-member league, submits rankings and runs the
// draft. Ana ends up with Mara and Ines, Ben with Dax and Theo.
func (f *serviceFixture) draftedLeague(t *testing.T) league.League {
	t.Helper()

	item := f.createLeagueWithMembers(t, "user-2")

	if err := f.drafts.SubmitRankings(t.Context(), SubmitRankingsInput{
		LeagueID:    item.ID,
		UserID:      "user-1",
		CastawayIDs: []string{"cast-48-mara", "cast-48-theo"},
	}); err != nil {
		t.Fatalf("submit rankings for user-1: %v", err)
	}
	if err := f.drafts.SubmitRankings(t.Context(), SubmitRankingsInput{
		LeagueID:    item.ID,
		UserID:      "user-2",
		CastawayIDs: []string{"cast-48-mara", "cast-48-dax"},
	}); err != nil {
		t.Fatalf("submit rankings for user-2: %v", err)
	}

	if _, err := f.drafts.RunDraft(t.Context(), item.ID, "user-1"); err != nil {
		t.Fatalf("run draft: %v", err)
	}

	return item
}
