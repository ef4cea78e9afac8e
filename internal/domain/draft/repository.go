package draft

import "context"

// Repository exposes pre-draft ranking operations.
type Repository interface {
	// ReplaceRankings swaps one member's full wishlist for a league.
	ReplaceRankings(ctx context.Context, leagueID, userID string, items []Ranking) error
	ListByLeagueAndUser(ctx context.Context, leagueID, userID string) ([]Ranking, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Ranking, error)
}
