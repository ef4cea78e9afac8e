package scoring

import "context"

// Repository exposes scoring rules, events and computed results.
type Repository interface {
	ListRulesBySeason(ctx context.Context, seasonID string) ([]Rule, error)
	UpsertRules(ctx context.Context, items []Rule) error

	ReplaceEpisodeEvents(ctx context.Context, episodeID string, items []EpisodeEvent) error
	ListEventsByEpisode(ctx context.Context, episodeID string) ([]EpisodeEvent, error)

	UpsertEpisodeScores(ctx context.Context, items []EpisodeScore) error
	ListScoresByEpisode(ctx context.Context, episodeID string) ([]EpisodeScore, error)
	ListScoresBySeason(ctx context.Context, seasonID string) ([]EpisodeScore, error)

	UpsertPickSnapshots(ctx context.Context, items []PickSnapshot) error
	ListSnapshotsByLeagueAndEpisode(ctx context.Context, leagueID, episodeID string) ([]PickSnapshot, error)
	ListSnapshotsByLeague(ctx context.Context, leagueID string) ([]PickSnapshot, error)

	UpsertEpisodeLock(ctx context.Context, item EpisodeLock) error
	GetEpisodeLock(ctx context.Context, leagueID, episodeID string) (EpisodeLock, bool, error)

	UpsertUserEpisodePoints(ctx context.Context, items []UserEpisodePoints) error
	ListUserEpisodePointsByLeague(ctx context.Context, leagueID string) ([]UserEpisodePoints, error)

	ReplaceStandings(ctx context.Context, leagueID string, items []Standing) error
	ListStandingsByLeague(ctx context.Context, leagueID string) ([]Standing, error)
}
