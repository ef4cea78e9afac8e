package memory

import (
	"context"
	"sync"

	"github.com/realitygames/fantasy-league/internal/domain/draft"
)

type DraftRepository struct {
	mu sync.RWMutex
	// rankings keyed by league, then user.
	rankings map[string]map[string][]draft.Ranking
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{rankings: make(map[string]map[string][]draft.Ranking)}
}

func (r *DraftRepository) ReplaceRankings(_ context.Context, leagueID, userID string, items []draft.Ranking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byUser, ok := r.rankings[leagueID]
	if !ok {
		byUser = make(map[string][]draft.Ranking)
		r.rankings[leagueID] = byUser
	}
	byUser[userID] = append([]draft.Ranking(nil), items...)

	return nil
}

func (r *DraftRepository) ListByLeagueAndUser(_ context.Context, leagueID, userID string) ([]draft.Ranking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]draft.Ranking(nil), r.rankings[leagueID][userID]...), nil
}

func (r *DraftRepository) ListByLeague(_ context.Context, leagueID string) ([]draft.Ranking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []draft.Ranking
	for _, items := range r.rankings[leagueID] {
		out = append(out, items...)
	}

	return out, nil
}
