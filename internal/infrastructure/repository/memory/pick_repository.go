package memory

import (
	"context"
	"sync"

	"github.com/realitygames/fantasy-league/internal/domain/pick"
)

type PickRepository struct {
	mu     sync.RWMutex
	items  map[string]pick.WeeklyPick
	orders []string
}

func NewPickRepository() *PickRepository {
	return &PickRepository{items: make(map[string]pick.WeeklyPick)}
}

func (r *PickRepository) Upsert(_ context.Context, item pick.WeeklyPick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pickKey(item.LeagueID, item.UserID, item.EpisodeID)
	if _, ok := r.items[key]; !ok {
		r.orders = append(r.orders, key)
	}
	r.items[key] = item

	return nil
}

func (r *PickRepository) Get(_ context.Context, leagueID, userID, episodeID string) (pick.WeeklyPick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[pickKey(leagueID, userID, episodeID)]
	if !ok {
		return pick.WeeklyPick{}, false, nil
	}

	return p, true, nil
}

func (r *PickRepository) ListByLeagueAndEpisode(_ context.Context, leagueID, episodeID string) ([]pick.WeeklyPick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []pick.WeeklyPick
	for _, key := range r.orders {
		if p := r.items[key]; p.LeagueID == leagueID && p.EpisodeID == episodeID {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PickRepository) ListByLeagueAndUser(_ context.Context, leagueID, userID string) ([]pick.WeeklyPick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []pick.WeeklyPick
	for _, key := range r.orders {
		if p := r.items[key]; p.LeagueID == leagueID && p.UserID == userID {
			out = append(out, p)
		}
	}

	return out, nil
}

func pickKey(leagueID, userID, episodeID string) string {
	return leagueID + "::" + userID + "::" + episodeID
}
