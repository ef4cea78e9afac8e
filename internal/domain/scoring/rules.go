package scoring

import (
	"sort"
	"strings"
	"time"
)

// ComputeEpisodeScores folds raw episode events through a season's rule table
// into per-castaway totals, points times count per event. Events whose rule
// code is unknown or disabled are ignored rather than failing the whole
// episode. An event with a count below one means a single occurrence;
// callers that accept counts from the wire reject non-positive ones before
// this point.
func ComputeEpisodeScores(episodeID string, events []EpisodeEvent, rules []Rule, now time.Time) []EpisodeScore {
	points := make(map[string]int, len(rules))
	for _, r := range rules {
		if r.IsEnabled {
			points[normalizeCode(r.Code)] = r.Points
		}
	}

	totals := map[string]int{}
	for _, ev := range events {
		value, ok := points[normalizeCode(ev.RuleCode)]
		if !ok {
			continue
		}
		count := ev.Count
		if count < 1 {
			count = 1
		}
		totals[ev.CastawayID] += value * count
	}

	scores := make([]EpisodeScore, 0, len(totals))
	for castawayID, total := range totals {
		scores = append(scores, EpisodeScore{
			EpisodeID:  episodeID,
			CastawayID: castawayID,
			Points:     total,
			ComputedAt: now,
		})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].CastawayID < scores[j].CastawayID })

	return scores
}

// RankStandings orders league totals into a table with dense ranks. Ties keep
// the same rank and break deterministically on user ID.
func RankStandings(leagueID string, totals map[string]int, now time.Time) []Standing {
	standings := make([]Standing, 0, len(totals))
	for userID, total := range totals {
		standings = append(standings, Standing{
			LeagueID:    leagueID,
			UserID:      userID,
			TotalPoints: total,
			ComputedAt:  now,
		})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].TotalPoints != standings[j].TotalPoints {
			return standings[i].TotalPoints > standings[j].TotalPoints
		}
		return standings[i].UserID < standings[j].UserID
	})

	rank := 0
	prevPoints := 0
	for i := range standings {
		if i == 0 || standings[i].TotalPoints != prevPoints {
			rank++
			prevPoints = standings[i].TotalPoints
		}
		standings[i].Rank = rank
	}

	return standings
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
