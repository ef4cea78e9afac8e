package roster

import "context"

// Repository exposes drafted roster operations.
type Repository interface {
	// ReplaceLeagueRosters atomically swaps the full roster set of one league.
	ReplaceLeagueRosters(ctx context.Context, leagueID string, entries []Entry) error
	ListByLeague(ctx context.Context, leagueID string) ([]Entry, error)
	ListByLeagueAndUser(ctx context.Context, leagueID, userID string) ([]Entry, error)
}
