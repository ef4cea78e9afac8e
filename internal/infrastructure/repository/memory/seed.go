package memory

import (
	"time"

	"github.com/realitygames/fantasy-league/internal/domain/castaway"
	"github.com/realitygames/fantasy-league/internal/domain/scoring"
	"github.com/realitygames/fantasy-league/internal/domain/season"
)

const (
	SeasonIDIslandTrials48 = "island-trials-48"
)

func SeedSeasons() []season.Season {
	return []season.Season{
		{ID: SeasonIDIslandTrials48, Name: "Island Trials 48", Number: 48, IsActive: true},
	}
}

func SeedEpisodes() []season.Episode {
	airs := func(week int) time.Time {
		return time.Date(2026, 3, 4, 20, 0, 0, 0, time.UTC).AddDate(0, 0, 7*(week-1))
	}

	episodes := make([]season.Episode, 0, 6)
	for number := 1; number <= 6; number++ {
		episodes = append(episodes, season.Episode{
			ID:          episodeSeedID(number),
			SeasonID:    SeasonIDIslandTrials48,
			Number:      number,
			Title:       episodeSeedTitle(number),
			AirsAt:      airs(number),
			PicksLockAt: airs(number).Add(-1 * time.Hour),
		})
	}
	return episodes
}

func episodeSeedID(number int) string {
	return []string{
		"ep-48-01", "ep-48-02", "ep-48-03", "ep-48-04", "ep-48-05", "ep-48-06",
	}[number-1]
}

func episodeSeedTitle(number int) string {
	return []string{
		"The Tide Comes In",
		"Trust Is Expensive",
		"Rice Wars",
		"A Snake In The Shelter",
		"Split The Vote",
		"The Merge Feast",
	}[number-1]
}

func SeedCastaways() []castaway.Castaway {
	return []castaway.Castaway{
		{ID: "cast-48-mara", SeasonID: SeasonIDIslandTrials48, Name: "Mara Okafor", Tribe: "Luna", Occupation: "Paramedic", Status: castaway.StatusActive},
		{ID: "cast-48-theo", SeasonID: SeasonIDIslandTrials48, Name: "Theo Vance", Tribe: "Luna", Occupation: "Bartender", Status: castaway.StatusActive},
		{ID: "cast-48-ines", SeasonID: SeasonIDIslandTrials48, Name: "Ines Ferreira", Tribe: "Luna", Occupation: "Chess Coach", Status: castaway.StatusActive},
		{ID: "cast-48-dax", SeasonID: SeasonIDIslandTrials48, Name: "Dax Whitfield", Tribe: "Sol", Occupation: "Firefighter", Status: castaway.StatusActive},
		{ID: "cast-48-priya", SeasonID: SeasonIDIslandTrials48, Name: "Priya Raman", Tribe: "Sol", Occupation: "Data Analyst", Status: castaway.StatusActive},
		{ID: "cast-48-colt", SeasonID: SeasonIDIslandTrials48, Name: "Colt Maguire", Tribe: "Sol", Occupation: "Cattle Rancher", Status: castaway.StatusActive},
		{ID: "cast-48-sana", SeasonID: SeasonIDIslandTrials48, Name: "Sana Idris", Tribe: "Vela", Occupation: "Law Student", Status: castaway.StatusActive},
		{ID: "cast-48-reed", SeasonID: SeasonIDIslandTrials48, Name: "Reed Calloway", Tribe: "Vela", Occupation: "Yoga Instructor", Status: castaway.StatusActive},
		{ID: "cast-48-lena", SeasonID: SeasonIDIslandTrials48, Name: "Lena Brandt", Tribe: "Vela", Occupation: "Carpenter", Status: castaway.StatusActive},
		{ID: "cast-48-omar", SeasonID: SeasonIDIslandTrials48, Name: "Omar Diallo", Tribe: "Luna", Occupation: "High School Teacher", Status: castaway.StatusActive},
		{ID: "cast-48-josie", SeasonID: SeasonIDIslandTrials48, Name: "Josie Tran", Tribe: "Sol", Occupation: "Food Truck Owner", Status: castaway.StatusActive},
		{ID: "cast-48-bram", SeasonID: SeasonIDIslandTrials48, Name: "Bram Kowalski", Tribe: "Vela", Occupation: "Retired Marine", Status: castaway.StatusActive},
	}
}

func SeedScoringRules() []scoring.Rule {
	return []scoring.Rule{
		{ID: "rule-48-survive", SeasonID: SeasonIDIslandTrials48, Code: "SURVIVE_EPISODE", Label: "Survives the episode", Points: 2, IsEnabled: true},
		{ID: "rule-48-imm-team", SeasonID: SeasonIDIslandTrials48, Code: "TEAM_IMMUNITY", Label: "Wins team immunity", Points: 3, IsEnabled: true},
		{ID: "rule-48-imm-ind", SeasonID: SeasonIDIslandTrials48, Code: "INDIVIDUAL_IMMUNITY", Label: "Wins individual immunity", Points: 5, IsEnabled: true},
		{ID: "rule-48-reward", SeasonID: SeasonIDIslandTrials48, Code: "REWARD_WIN", Label: "Wins a reward challenge", Points: 2, IsEnabled: true},
		{ID: "rule-48-idol-find", SeasonID: SeasonIDIslandTrials48, Code: "IDOL_FOUND", Label: "Finds a hidden immunity idol", Points: 4, IsEnabled: true},
		{ID: "rule-48-idol-play", SeasonID: SeasonIDIslandTrials48, Code: "IDOL_PLAYED", Label: "Plays an idol that voids votes", Points: 6, IsEnabled: true},
		{ID: "rule-48-fire", SeasonID: SeasonIDIslandTrials48, Code: "FIRE_MADE", Label: "Makes fire without flint", Points: 3, IsEnabled: true},
		{ID: "rule-48-blindside", SeasonID: SeasonIDIslandTrials48, Code: "BLINDSIDE_ARCHITECT", Label: "Orchestrates a blindside", Points: 5, IsEnabled: true},
		{ID: "rule-48-votedout", SeasonID: SeasonIDIslandTrials48, Code: "VOTED_OUT", Label: "Voted out at tribal council", Points: -5, IsEnabled: true},
		{ID: "rule-48-votes-against", SeasonID: SeasonIDIslandTrials48, Code: "VOTE_RECEIVED", Label: "Receives a vote at tribal", Points: -1, IsEnabled: true},
	}
}

// SeedEpisodeSeasons maps seeded episode IDs to their season for the scoring store.
func SeedEpisodeSeasons() map[string]string {
	out := make(map[string]string, 6)
	for number := 1; number <= 6; number++ {
		out[episodeSeedID(number)] = SeasonIDIslandTrials48
	}
	return out
}
