package memory

import (
	"context"
	"sync"

	"github.com/realitygames/fantasy-league/internal/domain/season"
)

type SeasonRepository struct {
	mu       sync.RWMutex
	seasons  map[string]season.Season
	episodes map[string]season.Episode

	seasonOrder  []string
	episodeOrder []string
}

func NewSeasonRepository(seasons []season.Season, episodes []season.Episode) *SeasonRepository {
	r := &SeasonRepository{
		seasons:  make(map[string]season.Season, len(seasons)),
		episodes: make(map[string]season.Episode, len(episodes)),
	}
	for _, s := range seasons {
		r.seasons[s.ID] = s
		r.seasonOrder = append(r.seasonOrder, s.ID)
	}
	for _, e := range episodes {
		r.episodes[e.ID] = e
		r.episodeOrder = append(r.episodeOrder, e.ID)
	}
	return r
}

func (r *SeasonRepository) ListSeasons(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.seasonOrder))
	for _, id := range r.seasonOrder {
		out = append(out, r.seasons[id])
	}

	return out, nil
}

func (r *SeasonRepository) GetSeasonByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.seasons[seasonID]
	if !ok {
		return season.Season{}, false, nil
	}

	return s, true, nil
}

func (r *SeasonRepository) GetActiveSeason(_ context.Context) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.seasonOrder {
		if s := r.seasons[id]; s.IsActive {
			return s, true, nil
		}
	}

	return season.Season{}, false, nil
}

func (r *SeasonRepository) ListEpisodesBySeason(_ context.Context, seasonID string) ([]season.Episode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Episode, 0, len(r.episodeOrder))
	for _, id := range r.episodeOrder {
		if e := r.episodes[id]; e.SeasonID == seasonID {
			out = append(out, e)
		}
	}

	return out, nil
}

func (r *SeasonRepository) GetEpisodeByID(_ context.Context, episodeID string) (season.Episode, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.episodes[episodeID]
	if !ok {
		return season.Episode{}, false, nil
	}

	return e, true, nil
}

func (r *SeasonRepository) MarkEpisodeScored(_ context.Context, episodeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.episodes[episodeID]
	if !ok {
		return nil
	}
	e.IsScored = true
	r.episodes[episodeID] = e

	return nil
}
