package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/realitygames/fantasy-league/internal/domain/league"
)

func TestLeagueService_CreateLeague_Defaults(t *testing.T) {
	f := newServiceFixture(t)

	created, err := f.leagues.CreateLeague(t.Context(), CreateLeagueInput{
		OwnerUserID: "user-1",
		Name:        "Tuesday Tribal",
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}

	got := created.League
	if got.SeasonID == "" {
		t.Fatalf("expected active season to be resolved")
	}
	if got.MaxMembers != league.DefaultMaxMembers {
		t.Fatalf("unexpected max members: %d", got.MaxMembers)
	}
	if got.RosterSize != league.DefaultRosterSize {
		t.Fatalf("unexpected roster size: %d", got.RosterSize)
	}
	if got.DraftStatus != league.DraftStatusPending {
		t.Fatalf("unexpected draft status: %s", got.DraftStatus)
	}
	if len(got.InviteCode) != 8 {
		t.Fatalf("unexpected invite code length: %q", got.InviteCode)
	}

	members, err := f.leagueRepo.ListMembers(t.Context(), got.ID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 1 || members[0].UserID != "user-1" {
		t.Fatalf("expected owner membership, got %+v", members)
	}
}

func TestLeagueService_CreateLeague_PaidRequiresFee(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.leagues.CreateLeague(t.Context(), CreateLeagueInput{
		OwnerUserID: "user-1",
		Name:        "High Rollers",
		IsPaid:      true,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

type stubCheckout struct {
	leagueID string
	userID   string
	amount   int
}

func (s *stubCheckout) CreateCheckoutSession(_ context.Context, leagueID, userID string, amountUSD int) (CheckoutSessionRef, error) {
	s.leagueID = leagueID
	s.userID = userID
	s.amount = amountUSD
	return CheckoutSessionRef{ID: "cs_test", URL: "https://pay.example.com/cs_test"}, nil
}

func TestLeagueService_CreateLeague_PaidReturnsCheckoutURL(t *testing.T) {
	f := newServiceFixture(t)
	checkout := &stubCheckout{}
	f.leagues.billing = checkout

	created, err := f.leagues.CreateLeague(t.Context(), CreateLeagueInput{
		OwnerUserID: "user-1",
		Name:        "High Rollers",
		IsPaid:      true,
		EntryFeeUSD: 25,
	})
	if err != nil {
		t.Fatalf("create paid league: %v", err)
	}

	if created.CheckoutURL != "https://pay.example.com/cs_test" {
		t.Fatalf("unexpected checkout url: %s", created.CheckoutURL)
	}
	if checkout.amount != 25 || checkout.userID != "user-1" {
		t.Fatalf("unexpected checkout request: %+v", checkout)
	}

	members, err := f.leagueRepo.ListMembers(t.Context(), created.League.ID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if members[0].IsPaid {
		t.Fatalf("owner of a paid league should start unpaid")
	}
}

func TestLeagueService_JoinByInviteCode_CaseInsensitive(t *testing.T) {
	f := newServiceFixture(t)
	item := f.createLeagueWithMembers(t)

	joined, err := f.leagues.JoinByInviteCode(t.Context(), JoinLeagueByInviteInput{
		UserID:     "user-2",
		InviteCode: "  " + strings.ToLower(item.InviteCode) + " ",
	})
	if err != nil {
		t.Fatalf("join by invite code: %v", err)
	}
	if joined.League.ID != item.ID {
		t.Fatalf("unexpected league: %s", joined.League.ID)
	}
}

func TestLeagueService_JoinByInviteCode_RejectDuplicateMember(t *testing.T) {
	f := newServiceFixture(t)
	item := f.createLeagueWithMembers(t, "user-2")

	_, err := f.leagues.JoinByInviteCode(t.Context(), JoinLeagueByInviteInput{
		UserID:     "user-2",
		InviteCode: item.InviteCode,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLeagueService_JoinByInviteCode_RejectFullLeague(t *testing.T) {
	f := newServiceFixture(t)

	created, err := f.leagues.CreateLeague(t.Context(), CreateLeagueInput{
		OwnerUserID: "user-1",
		Name:        "Tiny League",
		MaxMembers:  2,
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	if _, err := f.leagues.JoinByInviteCode(t.Context(), JoinLeagueByInviteInput{
		UserID:     "user-2",
		InviteCode: created.League.InviteCode,
	}); err != nil {
		t.Fatalf("join league: %v", err)
	}

	_, err = f.leagues.JoinByInviteCode(t.Context(), JoinLeagueByInviteInput{
		UserID:     "user-3",
		InviteCode: created.League.InviteCode,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLeagueService_JoinByInviteCode_UnknownCode(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.leagues.JoinByInviteCode(t.Context(), JoinLeagueByInviteInput{
		UserID:     "user-2",
		InviteCode: "NOPE1234",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueService_ListMembers_RequiresMembership(t *testing.T) {
	f := newServiceFixture(t)
	item := f.createLeagueWithMembers(t, "user-2")

	_, err := f.leagues.ListMembers(t.Context(), item.ID, "user-3")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	views, err := f.leagues.ListMembers(t.Context(), item.ID, "user-1")
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("unexpected member count: %d", len(views))
	}
	if !views[0].IsOwner || views[0].DisplayName != "Ana" {
		t.Fatalf("unexpected owner row: %+v", views[0])
	}
}

func TestLeagueService_ListMyLeagues(t *testing.T) {
	f := newServiceFixture(t)
	first := f.createLeagueWithMembers(t, "user-2")

	created, err := f.leagues.CreateLeague(t.Context(), CreateLeagueInput{
		OwnerUserID: "user-2",
		Name:        "Side Bet",
	})
	if err != nil {
		t.Fatalf("create second league: %v", err)
	}

	mine, err := f.leagues.ListMyLeagues(t.Context(), "user-2")
	if err != nil {
		t.Fatalf("list my leagues: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("unexpected league count: %d", len(mine))
	}
	if mine[0].ID != first.ID || mine[1].ID != created.League.ID {
		t.Fatalf("unexpected league order: %+v", mine)
	}
}

func TestLeagueService_MarkEntryFeePaid(t *testing.T) {
	f := newServiceFixture(t)
	checkout := &stubCheckout{}
	f.leagues.billing = checkout

	created, err := f.leagues.CreateLeague(t.Context(), CreateLeagueInput{
		OwnerUserID: "user-1",
		Name:        "High Rollers",
		IsPaid:      true,
		EntryFeeUSD: 25,
	})
	if err != nil {
		t.Fatalf("create paid league: %v", err)
	}

	if err := f.leagues.MarkEntryFeePaid(t.Context(), created.League.ID, "user-1"); err != nil {
		t.Fatalf("mark entry fee paid: %v", err)
	}

	member, _, err := f.leagueRepo.GetMember(t.Context(), created.League.ID, "user-1")
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if !member.IsPaid {
		t.Fatalf("expected member to be marked paid")
	}

	if err := f.leagues.MarkEntryFeePaid(t.Context(), created.League.ID, "user-3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
