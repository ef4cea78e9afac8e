package memory

import (
	"context"
	"sync"

	"github.com/realitygames/fantasy-league/internal/domain/roster"
)

type RosterRepository struct {
	mu    sync.RWMutex
	items map[string][]roster.Entry
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{items: make(map[string][]roster.Entry)}
}

func (r *RosterRepository) ReplaceLeagueRosters(_ context.Context, leagueID string, entries []roster.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[leagueID] = append([]roster.Entry(nil), entries...)
	return nil
}

func (r *RosterRepository) ListByLeague(_ context.Context, leagueID string) ([]roster.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]roster.Entry(nil), r.items[leagueID]...), nil
}

func (r *RosterRepository) ListByLeagueAndUser(_ context.Context, leagueID, userID string) ([]roster.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []roster.Entry
	for _, entry := range r.items[leagueID] {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}

	return out, nil
}
