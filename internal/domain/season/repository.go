package season

import "context"

// Repository exposes season and episode read operations.
type Repository interface {
	ListSeasons(ctx context.Context) ([]Season, error)
	GetSeasonByID(ctx context.Context, seasonID string) (Season, bool, error)
	GetActiveSeason(ctx context.Context) (Season, bool, error)
	ListEpisodesBySeason(ctx context.Context, seasonID string) ([]Episode, error)
	GetEpisodeByID(ctx context.Context, episodeID string) (Episode, bool, error)
	MarkEpisodeScored(ctx context.Context, episodeID string) error
}
