package usecase

import (
	"errors"
	"testing"
	"time"
)

func newStatsFixture(t *testing.T) (*serviceFixture, *StatsService) {
	t.Helper()

	f := newServiceFixture(t)
	stats := NewStatsService(f.leagueRepo, f.seasonRepo, f.castawayRepo, f.rosterRepo, f.userRepo, f.scoringRepo, f.scoring)
	return f, stats
}

func TestStatsService_GetLeagueAnalytics(t *testing.T) {
	f, stats := newStatsFixture(t)
	item := f.draftedLeague(t)

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

	analytics, err := stats.GetLeagueAnalytics(t.Context(), item.ID, "user-1")
	if err != nil {
		t.Fatalf("get league analytics: %v", err)
	}

	if len(analytics.Standings) != 2 || analytics.Standings[0].UserID != "user-1" {
		t.Fatalf("unexpected standings: %+v", analytics.Standings)
	}

	if len(analytics.WeeklyLeaderboard) != 2 {
		t.Fatalf("unexpected weekly leaderboard: %+v", analytics.WeeklyLeaderboard)
	}
	if analytics.WeeklyLeaderboard[0].DisplayName != "Ana" || analytics.WeeklyLeaderboard[0].Points != 7 {
		t.Fatalf("unexpected weekly leader: %+v", analytics.WeeklyLeaderboard[0])
	}

	if len(analytics.CastawayLeaderboard) == 0 || analytics.CastawayLeaderboard[0].Name != "Mara Okafor" {
		t.Fatalf("unexpected castaway leaderboard: %+v", analytics.CastawayLeaderboard)
	}

	if len(analytics.PickPopularity) != 2 {
		t.Fatalf("unexpected pick popularity: %+v", analytics.PickPopularity)
	}
	for _, row := range analytics.PickPopularity {
		if row.EpisodeID != "ep-48-01" || row.EpisodeNumber != 1 || row.PickRate != 0.5 {
			t.Fatalf("unexpected pick rate: %+v", row)
		}
	}

	if len(analytics.PickEfficiency) != 2 {
		t.Fatalf("unexpected pick efficiency: %+v", analytics.PickEfficiency)
	}
	for _, row := range analytics.PickEfficiency {
		if row.Efficiency != 1 {
			t.Fatalf("both members started their best castaway: %+v", row)
		}
	}
	if analytics.PickEfficiency[0].ActualPoints != 7 || analytics.PickEfficiency[0].BestPoints != 7 {
		t.Fatalf("unexpected top efficiency row: %+v", analytics.PickEfficiency[0])
	}

	if len(analytics.Consistency) != 2 {
		t.Fatalf("unexpected consistency rows: %+v", analytics.Consistency)
	}
	if analytics.Consistency[0].UserID != "user-1" || analytics.Consistency[0].MeanPoints != 7 || analytics.Consistency[0].StdDev != 0 {
		t.Fatalf("unexpected consistency leader: %+v", analytics.Consistency[0])
	}

	// Rank movement needs two scored episodes.
	if len(analytics.RankMovement) != 0 {
		t.Fatalf("unexpected rank movement: %+v", analytics.RankMovement)
	}

	if analytics.StatOfTheWeek == nil {
		t.Fatalf("expected a stat of the week")
	}
	if analytics.StatOfTheWeek.EpisodeNumber != 1 {
		t.Fatalf("unexpected stat episode: %+v", analytics.StatOfTheWeek)
	}
	if analytics.StatOfTheWeek.Headline != "Mara Okafor led episode 1 with 7 points" {
		t.Fatalf("unexpected headline: %s", analytics.StatOfTheWeek.Headline)
	}
	if analytics.StatOfTheWeek.TopCastawayID != "cast-48-mara" || analytics.StatOfTheWeek.TopPoints != 7 {
		t.Fatalf("unexpected top scorer: %+v", analytics.StatOfTheWeek)
	}
	if analytics.StatOfTheWeek.AutoPickCount != 1 {
		t.Fatalf("expected one auto pick, got %+v", analytics.StatOfTheWeek)
	}
	if analytics.StatOfTheWeek.BoldPickCastawayID != "cast-48-mara" || analytics.StatOfTheWeek.BoldPickPoints != 7 {
		t.Fatalf("unexpected bold pick: %+v", analytics.StatOfTheWeek)
	}
}

func TestStatsService_PickPopularity_KeepsEpisodesApart(t *testing.T) {
	f, stats := newStatsFixture(t)
	item := f.draftedLeague(t)

	// Episode 1: Ana picks Mara, Ben misses the lock and gets auto-picked.
	// Episode 2: both pick their second castaway.
	if _, err := f.picks.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:   item.ID,
		UserID:     "user-1",
		EpisodeID:  "ep-48-01",
		CastawayID: "cast-48-mara",
	}); err != nil {
		t.Fatalf("submit episode 1 pick: %v", err)
	}
	if _, err := f.picks.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:   item.ID,
		UserID:     "user-1",
		EpisodeID:  "ep-48-02",
		CastawayID: "cast-48-ines",
	}); err != nil {
		t.Fatalf("submit episode 2 pick for user-1: %v", err)
	}
	if _, err := f.picks.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:   item.ID,
		UserID:     "user-2",
		EpisodeID:  "ep-48-02",
		CastawayID: "cast-48-theo",
	}); err != nil {
		t.Fatalf("submit episode 2 pick for user-2: %v", err)
	}

	if _, err := f.scoring.RecordEpisodeEvents(t.Context(), RecordEpisodeEventsInput{
		EpisodeID: "ep-48-01",
		Events: []EpisodeEventInput{
			{CastawayID: "cast-48-mara", RuleCode: "INDIVIDUAL_IMMUNITY"},
		},
	}); err != nil {
		t.Fatalf("record episode 1 events: %v", err)
	}
	if _, err := f.scoring.RecordEpisodeEvents(t.Context(), RecordEpisodeEventsInput{
		EpisodeID: "ep-48-02",
		Events: []EpisodeEventInput{
			{CastawayID: "cast-48-theo", RuleCode: "SURVIVE_EPISODE"},
		},
	}); err != nil {
		t.Fatalf("record episode 2 events: %v", err)
	}
	f.scoring.now = func() time.Time { return afterFirstLock.AddDate(0, 0, 7) }

	analytics, err := stats.GetLeagueAnalytics(t.Context(), item.ID, "user-1")
	if err != nil {
		t.Fatalf("get league analytics: %v", err)
	}

	// Two members per episode, no shared picks, so every share is one half.
	// A season-wide tally would dilute each castaway to a quarter instead.
	if len(analytics.PickPopularity) != 4 {
		t.Fatalf("unexpected pick popularity: %+v", analytics.PickPopularity)
	}
	want := []struct {
		episodeID  string
		number     int
		castawayID string
	}{
		{"ep-48-01", 1, "cast-48-dax"},
		{"ep-48-01", 1, "cast-48-mara"},
		{"ep-48-02", 2, "cast-48-ines"},
		{"ep-48-02", 2, "cast-48-theo"},
	}
	for i, row := range analytics.PickPopularity {
		if row.EpisodeID != want[i].episodeID || row.EpisodeNumber != want[i].number || row.CastawayID != want[i].castawayID {
			t.Fatalf("unexpected row %d: %+v", i, row)
		}
		if row.PickCount != 1 || row.PickRate != 0.5 {
			t.Fatalf("unexpected share in row %d: %+v", i, row)
		}
	}
}

func TestStatsService_RankMovement_AfterSecondEpisode(t *testing.T) {
	f, stats := newStatsFixture(t)
	item := f.draftedLeague(t)

	if _, err := f.scoring.RecordEpisodeEvents(t.Context(), RecordEpisodeEventsInput{
		EpisodeID: "ep-48-01",
		Events: []EpisodeEventInput{
			{CastawayID: "cast-48-mara", RuleCode: "INDIVIDUAL_IMMUNITY"},
			{CastawayID: "cast-48-dax", RuleCode: "SURVIVE_EPISODE"},
		},
	}); err != nil {
		t.Fatalf("record episode 1 events: %v", err)
	}

	// Ben's dax outscores Ana's pick in episode 2, flipping the table.
	if _, err := f.scoring.RecordEpisodeEvents(t.Context(), RecordEpisodeEventsInput{
		EpisodeID: "ep-48-02",
		Events: []EpisodeEventInput{
			{CastawayID: "cast-48-dax", RuleCode: "INDIVIDUAL_IMMUNITY"},
			{CastawayID: "cast-48-dax", RuleCode: "BLINDSIDE_ARCHITECT"},
		},
	}); err != nil {
		t.Fatalf("record episode 2 events: %v", err)
	}
	f.scoring.now = func() time.Time { return afterFirstLock.AddDate(0, 0, 7) }

	analytics, err := stats.GetLeagueAnalytics(t.Context(), item.ID, "user-1")
	if err != nil {
		t.Fatalf("get league analytics: %v", err)
	}

	if len(analytics.RankMovement) != 2 {
		t.Fatalf("unexpected rank movement: %+v", analytics.RankMovement)
	}
	climber := analytics.RankMovement[0]
	if climber.UserID != "user-2" || climber.PreviousRank != 2 || climber.CurrentRank != 1 || climber.Delta != 1 {
		t.Fatalf("unexpected biggest climber: %+v", climber)
	}
	faller := analytics.RankMovement[1]
	if faller.UserID != "user-1" || faller.Delta != -1 {
		t.Fatalf("unexpected biggest faller: %+v", faller)
	}
}

func TestStatsService_GetLeagueAnalytics_BeforeAnyScoring(t *testing.T) {
	f, stats := newStatsFixture(t)
	item := f.draftedLeague(t)

	analytics, err := stats.GetLeagueAnalytics(t.Context(), item.ID, "user-2")
	if err != nil {
		t.Fatalf("get league analytics: %v", err)
	}
	if analytics.StatOfTheWeek != nil {
		t.Fatalf("no scored episode yet, got %+v", analytics.StatOfTheWeek)
	}
	if len(analytics.WeeklyLeaderboard) != 0 {
		t.Fatalf("unexpected weekly leaderboard: %+v", analytics.WeeklyLeaderboard)
	}
}

func TestStatsService_GetLeagueAnalytics_RequiresMembership(t *testing.T) {
	f, stats := newStatsFixture(t)
	item := f.draftedLeague(t)

	_, err := stats.GetLeagueAnalytics(t.Context(), item.ID, "user-3")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
