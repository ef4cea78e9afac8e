package pick

import "context"

// Repository exposes weekly starter pick operations.
type Repository interface {
	// Upsert inserts or replaces the member's pick for an episode, keyed on
	// league, user and episode.
	Upsert(ctx context.Context, item WeeklyPick) error
	Get(ctx context.Context, leagueID, userID, episodeID string) (WeeklyPick, bool, error)
	ListByLeagueAndEpisode(ctx context.Context, leagueID, episodeID string) ([]WeeklyPick, error)
	ListByLeagueAndUser(ctx context.Context, leagueID, userID string) ([]WeeklyPick, error)
}
