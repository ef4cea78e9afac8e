package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/realitygames/fantasy-league/internal/domain/league"
	leaguemock "github.com/realitygames/fantasy-league/internal/mocks/domain/league"
	usermock "github.com/realitygames/fantasy-league/internal/mocks/domain/user"
	idgen "github.com/realitygames/fantasy-league/internal/platform/id"
)

func TestLeagueService_GetLeague_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	userRepo := usermock.NewRepository(t)

	service := NewLeagueService(leagueRepo, nil, userRepo, nil, idgen.NewRandomGenerator())
	leagueID := "league-123"
	expected := league.League{ID: leagueID, Name: "Tuesday Tribal", OwnerUserID: "user-1"}

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID).
		Return(expected, true, nil).
		Once()
	leagueRepo.
		On("GetMember", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID, "user-1").
		Return(league.Membership{LeagueID: leagueID, UserID: "user-1"}, true, nil).
		Once()

	got, err := service.GetLeague(ctx, leagueID, "user-1")
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	if got.Name != expected.Name {
		t.Fatalf("unexpected league name: got=%s want=%s", got.Name, expected.Name)
	}
}

func TestLeagueService_GetLeague_NotMemberUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	userRepo := usermock.NewRepository(t)

	service := NewLeagueService(leagueRepo, nil, userRepo, nil, idgen.NewRandomGenerator())
	leagueID := "league-123"

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID).
		Return(league.League{ID: leagueID}, true, nil).
		Once()
	leagueRepo.
		On("GetMember", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID, "user-9").
		Return(league.Membership{}, false, nil).
		Once()

	_, err := service.GetLeague(ctx, leagueID, "user-9")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
