package usecase

import (
	"errors"
	"testing"
	"time"
)

func TestScoringService_RecordEpisodeEvents_ComputesScores(t *testing.T) {
	f := newServiceFixture(t)

	scores, err := f.scoring.RecordEpisodeEvents(t.Context(), RecordEpisodeEventsInput{
		EpisodeID: "ep-48-01",
		Events: []EpisodeEventInput{
			{CastawayID: "cast-48-mara", RuleCode: "survive_episode"},
			{CastawayID: "cast-48-mara", RuleCode: "INDIVIDUAL_IMMUNITY"},
			{CastawayID: "cast-48-dax", RuleCode: "SURVIVE_EPISODE"},
			{CastawayID: "cast-48-theo", RuleCode: "VOTED_OUT"},
			{CastawayID: "cast-48-theo", RuleCode: "VOTE_RECEIVED", Count: 4},
		},
	})
	if err != nil {
		t.Fatalf("record episode events: %v", err)
	}

	byCastaway := make(map[string]int, len(scores))
	for _, sc := range scores {
		byCastaway[sc.CastawayID] = sc.Points
	}
	if byCastaway["cast-48-mara"] != 7 {
		t.Fatalf("unexpected mara points: %d", byCastaway["cast-48-mara"])
	}
	if byCastaway["cast-48-dax"] != 2 {
		t.Fatalf("unexpected dax points: %d", byCastaway["cast-48-dax"])
	}
	if byCastaway["cast-48-theo"] != -9 {
		t.Fatalf("unexpected theo points: %d", byCastaway["cast-48-theo"])
	}

	episode, exists, err := f.seasonRepo.GetEpisodeByID(t.Context(), "ep-48-01")
	if err != nil || !exists {
		t.Fatalf("get episode: exists=%v err=%v", exists, err)
	}
	if !episode.IsScored {
		t.Fatalf("expected episode to be marked scored")
	}
}

func TestScoringService_RecordEpisodeEvents_Resubmission(t *testing.T) {
	f := newServiceFixture(t)

	if _, err := f.scoring.RecordEpisodeEvents(t.Context(), RecordEpisodeEventsInput{
		EpisodeID: "ep-48-01",
		Events: []EpisodeEventInput{
			{CastawayID: "cast-48-mara", RuleCode: "SURVIVE_EPISODE"},
		},
	}); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	scores, err := f.scoring.RecordEpisodeEvents(t.Context(), RecordEpisodeEventsInput{
		EpisodeID: "ep-48-01",
		Events: []EpisodeEventInput{
			{CastawayID: "cast-48-mara", RuleCode: "TEAM_IMMUNITY"},
		},
	})
	if err != nil {
		t.Fatalf("second submission: %v", err)
	}
	if len(scores) != 1 || scores[0].Points != 3 {
		t.Fatalf("expected corrected score, got %+v", scores)
	}

	events, err := f.scoringRepo.ListEventsByEpisode(t.Context(), "ep-48-01")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].RuleCode != "TEAM_IMMUNITY" {
		t.Fatalf("expected event sheet to be replaced, got %+v", events)
	}
}

func TestScoringService_RecordEpisodeEvents_RejectUnknownCastaway(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.scoring.RecordEpisodeEvents(t.Context(), RecordEpisodeEventsInput{
		EpisodeID: "ep-48-01",
		Events: []EpisodeEventInput{
			{CastawayID: "cast-99-ghost", RuleCode: "SURVIVE_EPISODE"},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScoringService_GetStandings_LocksSnapshotsAndRanks(t *testing.T) {
	f := newServiceFixture(t)
	item := f.draftedLeague(t)

	// Ana fields Mara. Ben never picks, so lock auto-fills his
	// earliest-drafted castaway, Dax.
	if _, err := f.picks.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:   item.ID,
		UserID:     "user-1",
		EpisodeID:  "ep-48-01",
		CastawayID: "cast-48-mara",
	}); err != nil {
		t.Fatalf("submit pick: %v", err)
	}

	if _, err := f.scoring.RecordEpisodeEvents(t.Context(), RecordEpisodeEventsInput{
		EpisodeID: "ep-48-01",
		Events: []EpisodeEventInput{
			{CastawayID: "cast-48-mara", RuleCode: "SURVIVE_EPISODE"},
			{CastawayID: "cast-48-mara", RuleCode: "INDIVIDUAL_IMMUNITY"},
			{CastawayID: "cast-48-dax", RuleCode: "SURVIVE_EPISODE"},
		},
	}); err != nil {
		t.Fatalf("record events: %v", err)
	}

	f.scoring.now = func() time.Time { return afterFirstLock }

	standings, err := f.scoring.GetStandings(t.Context(), item.ID, "user-2")
	if err != nil {
		t.Fatalf("get standings: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("unexpected standings size: %d", len(standings))
	}
	if standings[0].UserID != "user-1" || standings[0].TotalPoints != 7 || standings[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", standings[0])
	}
	if standings[1].UserID != "user-2" || standings[1].TotalPoints != 2 || standings[1].Rank != 2 {
		t.Fatalf("unexpected runner-up: %+v", standings[1])
	}

	snapshots, err := f.scoringRepo.ListSnapshotsByLeagueAndEpisode(t.Context(), item.ID, "ep-48-01")
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("unexpected snapshot count: %d", len(snapshots))
	}
	for _, snap := range snapshots {
		if snap.UserID == "user-2" && (!snap.IsAuto || snap.CastawayID != "cast-48-dax") {
			t.Fatalf("unexpected auto snapshot: %+v", snap)
		}
		if snap.UserID == "user-1" && snap.IsAuto {
			t.Fatalf("manual pick snapshotted as auto: %+v", snap)
		}
	}
}

func TestScoringService_GetStandings_LateRescoreUpdatesTotals(t *testing.T) {
	f := newServiceFixture(t)
	item := f.draftedLeague(t)

	if _, err := f.picks.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:   item.ID,
		UserID:     "user-1",
		EpisodeID:  "ep-48-01",
		CastawayID: "cast-48-mara",
	}); err != nil {
		t.Fatalf("submit pick: %v", err)
	}

	f.scoring.now = func() time.Time { return afterFirstLock }
	if _, err := f.scoring.GetStandings(t.Context(), item.ID, "user-1"); err != nil {
		t.Fatalf("standings before scoring: %v", err)
	}

	// Scores land after the lock pass; the snapshot already exists, so the
	// rescore must flow into totals on the next read.
	if _, err := f.scoring.RecordEpisodeEvents(t.Context(), RecordEpisodeEventsInput{
		EpisodeID: "ep-48-01",
		Events: []EpisodeEventInput{
			{CastawayID: "cast-48-mara", RuleCode: "BLINDSIDE_ARCHITECT"},
		},
	}); err != nil {
		t.Fatalf("record events: %v", err)
	}

	standings, err := f.scoring.GetStandings(t.Context(), item.ID, "user-1")
	if err != nil {
		t.Fatalf("standings after scoring: %v", err)
	}
	if standings[0].UserID != "user-1" || standings[0].TotalPoints != 5 {
		t.Fatalf("unexpected leader after rescore: %+v", standings[0])
	}
}

func TestScoringService_EnsureLeagueUpToDate_SkipsPendingDraft(t *testing.T) {
	f := newServiceFixture(t)
	item := f.createLeagueWithMembers(t, "user-2")

	if err := f.scoring.EnsureLeagueUpToDate(t.Context(), item.ID); err != nil {
		t.Fatalf("ensure pending league: %v", err)
	}

	standings, err := f.scoringRepo.ListStandingsByLeague(t.Context(), item.ID)
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(standings) != 0 {
		t.Fatalf("pending league must have no standings, got %+v", standings)
	}
}

func TestScoringService_EnsureLeagueUpToDate_UnknownLeague(t *testing.T) {
	f := newServiceFixture(t)

	err := f.scoring.EnsureLeagueUpToDate(t.Context(), "missing-league")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
