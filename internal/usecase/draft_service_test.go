package usecase

import (
	"errors"
	"testing"
)

func TestDraftService_SubmitRankings_RejectUnknownCastaway(t *testing.T) {
	f := newServiceFixture(t)
	item := f.createLeagueWithMembers(t, "user-2")

	err := f.drafts.SubmitRankings(t.Context(), SubmitRankingsInput{
		LeagueID:    item.ID,
		UserID:      "user-1",
		CastawayIDs: []string{"cast-48-mara", "cast-99-ghost"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDraftService_SubmitRankings_RejectDuplicateCastaway(t *testing.T) {
	f := newServiceFixture(t)
	item := f.createLeagueWithMembers(t, "user-2")

	err := f.drafts.SubmitRankings(t.Context(), SubmitRankingsInput{
		LeagueID:    item.ID,
		UserID:      "user-1",
		CastawayIDs: []string{"cast-48-mara", "cast-48-mara"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDraftService_SubmitRankings_ReplacesPreviousList(t *testing.T) {
	f := newServiceFixture(t)
	item := f.createLeagueWithMembers(t, "user-2")

	if err := f.drafts.SubmitRankings(t.Context(), SubmitRankingsInput{
		LeagueID:    item.ID,
		UserID:      "user-1",
		CastawayIDs: []string{"cast-48-mara", "cast-48-theo", "cast-48-dax"},
	}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := f.drafts.SubmitRankings(t.Context(), SubmitRankingsInput{
		LeagueID:    item.ID,
		UserID:      "user-1",
		CastawayIDs: []string{"cast-48-priya"},
	}); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	rankings, err := f.drafts.GetMyRankings(t.Context(), item.ID, "user-1")
	if err != nil {
		t.Fatalf("get rankings: %v", err)
	}
	if len(rankings) != 1 || rankings[0].CastawayID != "cast-48-priya" || rankings[0].Rank != 1 {
		t.Fatalf("unexpected rankings: %+v", rankings)
	}
}

func TestDraftService_RunDraft_SnakeAssignments(t *testing.T) {
	f := newServiceFixture(t)
	item := f.draftedLeague(t)

	entries, err := f.drafts.GetLeagueRosters(t.Context(), item.ID, "user-2")
	if err != nil {
		t.Fatalf("get rosters: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("unexpected roster size: %d", len(entries))
	}

	byPick := make(map[int]string, len(entries))
	owner := make(map[int]string, len(entries))
	for _, e := range entries {
		byPick[e.DraftPick] = e.CastawayID
		owner[e.DraftPick] = e.UserID
	}

	// Snake order for two members is 1-2-2-1. Ben loses Mara to Ana's first
	// pick and falls through to Dax, then to the season list for Theo.
	if byPick[1] != "cast-48-mara" || owner[1] != "user-1" {
		t.Fatalf("unexpected first pick: %s by %s", byPick[1], owner[1])
	}
	if byPick[2] != "cast-48-dax" || owner[2] != "user-2" {
		t.Fatalf("unexpected second pick: %s by %s", byPick[2], owner[2])
	}
	if byPick[3] != "cast-48-theo" || owner[3] != "user-2" {
		t.Fatalf("unexpected third pick: %s by %s", byPick[3], owner[3])
	}
	if byPick[4] != "cast-48-ines" || owner[4] != "user-1" {
		t.Fatalf("unexpected fourth pick: %s by %s", byPick[4], owner[4])
	}
}

func TestDraftService_RunDraft_OwnerOnly(t *testing.T) {
	f := newServiceFixture(t)
	item := f.createLeagueWithMembers(t, "user-2")

	_, err := f.drafts.RunDraft(t.Context(), item.ID, "user-2")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDraftService_RunDraft_RerunKeepsRosters(t *testing.T) {
	f := newServiceFixture(t)
	item := f.draftedLeague(t)

	// A new ranking after completion must not change anything.
	if err := f.drafts.SubmitRankings(t.Context(), SubmitRankingsInput{
		LeagueID:    item.ID,
		UserID:      "user-2",
		CastawayIDs: []string{"cast-48-lena"},
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput after completion, got %v", err)
	}

	entries, err := f.drafts.RunDraft(t.Context(), item.ID, "user-1")
	if err != nil {
		t.Fatalf("rerun draft: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("unexpected roster size after rerun: %d", len(entries))
	}
	for _, e := range entries {
		if e.CastawayID == "cast-48-lena" {
			t.Fatalf("rerun must not redraft: %+v", e)
		}
	}
}

func TestDraftService_RunDraft_RequiresTwoMembers(t *testing.T) {
	f := newServiceFixture(t)
	item := f.createLeagueWithMembers(t)

	_, err := f.drafts.RunDraft(t.Context(), item.ID, "user-1")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDraftService_GetLeagueRosters_BeforeDraft(t *testing.T) {
	f := newServiceFixture(t)
	item := f.createLeagueWithMembers(t, "user-2")

	_, err := f.drafts.GetLeagueRosters(t.Context(), item.ID, "user-1")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
