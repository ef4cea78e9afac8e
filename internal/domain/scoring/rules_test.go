package scoring

import (
	"testing"
	"time"
)

func TestComputeEpisodeScoresAppliesRuleTable(t *testing.T) {
	now := time.Date(2026, 3, 12, 4, 0, 0, 0, time.UTC)
	rules := []Rule{
		{SeasonID: "s1", Code: "IMMUNITY_WIN", Points: 5, IsEnabled: true},
		{SeasonID: "s1", Code: "IDOL_FOUND", Points: 3, IsEnabled: true},
		{SeasonID: "s1", Code: "VOTED_OUT", Points: -2, IsEnabled: false},
	}
	events := []EpisodeEvent{
		{EpisodeID: "e1", CastawayID: "c1", RuleCode: "immunity_win", Count: 1},
		{EpisodeID: "e1", CastawayID: "c1", RuleCode: "IDOL_FOUND", Count: 2},
		{EpisodeID: "e1", CastawayID: "c2", RuleCode: "VOTED_OUT", Count: 1},
		{EpisodeID: "e1", CastawayID: "c2", RuleCode: "UNKNOWN_CODE", Count: 1},
	}

	scores := ComputeEpisodeScores("e1", events, rules, now)

	if len(scores) != 1 {
		t.Fatalf("expected 1 scored castaway, got %d", len(scores))
	}
	if scores[0].CastawayID != "c1" || scores[0].Points != 11 {
		t.Fatalf("expected c1 with 11 points, got %s with %d", scores[0].CastawayID, scores[0].Points)
	}
}

func TestRankStandingsDenseRanksWithTies(t *testing.T) {
	now := time.Date(2026, 3, 12, 4, 0, 0, 0, time.UTC)
	totals := map[string]int{
		"u1": 40,
		"u2": 55,
		"u3": 40,
		"u4": 12,
	}

	standings := RankStandings("l1", totals, now)

	if len(standings) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(standings))
	}
	wantOrder := []struct {
		userID string
		rank   int
	}{
		{"u2", 1},
		{"u1", 2},
		{"u3", 2},
		{"u4", 3},
	}
	for i, want := range wantOrder {
		if standings[i].UserID != want.userID || standings[i].Rank != want.rank {
			t.Fatalf("row %d: expected %s rank %d, got %s rank %d",
				i, want.userID, want.rank, standings[i].UserID, standings[i].Rank)
		}
	}
}
