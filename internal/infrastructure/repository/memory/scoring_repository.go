package memory

import (
	"context"
	"sync"

	"github.com/realitygames/fantasy-league/internal/domain/scoring"
)

type ScoringRepository struct {
	mu sync.RWMutex

	rules       map[string][]scoring.Rule
	events      map[string][]scoring.EpisodeEvent
	scores      map[string][]scoring.EpisodeScore
	seasonByEp  map[string]string
	snapshots   map[string][]scoring.PickSnapshot
	locks       map[string]scoring.EpisodeLock
	userPoints  map[string]map[string]scoring.UserEpisodePoints
	standings   map[string][]scoring.Standing
	pointsOrder map[string][]string
}

func NewScoringRepository(rules []scoring.Rule, episodeSeasons map[string]string) *ScoringRepository {
	r := &ScoringRepository{
		rules:       make(map[string][]scoring.Rule),
		events:      make(map[string][]scoring.EpisodeEvent),
		scores:      make(map[string][]scoring.EpisodeScore),
		seasonByEp:  make(map[string]string, len(episodeSeasons)),
		snapshots:   make(map[string][]scoring.PickSnapshot),
		locks:       make(map[string]scoring.EpisodeLock),
		userPoints:  make(map[string]map[string]scoring.UserEpisodePoints),
		standings:   make(map[string][]scoring.Standing),
		pointsOrder: make(map[string][]string),
	}
	for _, rule := range rules {
		r.rules[rule.SeasonID] = append(r.rules[rule.SeasonID], rule)
	}
	for episodeID, seasonID := range episodeSeasons {
		r.seasonByEp[episodeID] = seasonID
	}
	return r
}

func (r *ScoringRepository) ListRulesBySeason(_ context.Context, seasonID string) ([]scoring.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]scoring.Rule(nil), r.rules[seasonID]...), nil
}

func (r *ScoringRepository) UpsertRules(_ context.Context, items []scoring.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		existing := r.rules[item.SeasonID]
		replaced := false
		for i, rule := range existing {
			if rule.Code == item.Code {
				existing[i] = item
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, item)
		}
		r.rules[item.SeasonID] = existing
	}

	return nil
}

func (r *ScoringRepository) ReplaceEpisodeEvents(_ context.Context, episodeID string, items []scoring.EpisodeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[episodeID] = append([]scoring.EpisodeEvent(nil), items...)
	return nil
}

func (r *ScoringRepository) ListEventsByEpisode(_ context.Context, episodeID string) ([]scoring.EpisodeEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]scoring.EpisodeEvent(nil), r.events[episodeID]...), nil
}

func (r *ScoringRepository) UpsertEpisodeScores(_ context.Context, items []scoring.EpisodeScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		existing := r.scores[item.EpisodeID]
		replaced := false
		for i, score := range existing {
			if score.CastawayID == item.CastawayID {
				existing[i] = item
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, item)
		}
		r.scores[item.EpisodeID] = existing
	}

	return nil
}

func (r *ScoringRepository) ListScoresByEpisode(_ context.Context, episodeID string) ([]scoring.EpisodeScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]scoring.EpisodeScore(nil), r.scores[episodeID]...), nil
}

func (r *ScoringRepository) ListScoresBySeason(_ context.Context, seasonID string) ([]scoring.EpisodeScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []scoring.EpisodeScore
	for episodeID, scores := range r.scores {
		if r.seasonByEp[episodeID] != seasonID {
			continue
		}
		out = append(out, scores...)
	}

	return out, nil
}

func (r *ScoringRepository) UpsertPickSnapshots(_ context.Context, items []scoring.PickSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		existing := r.snapshots[item.LeagueID]
		found := false
		for _, snap := range existing {
			if snap.EpisodeID == item.EpisodeID && snap.UserID == item.UserID {
				found = true
				break
			}
		}
		// First snapshot wins, matching the lock semantics.
		if !found {
			r.snapshots[item.LeagueID] = append(existing, item)
		}
	}

	return nil
}

func (r *ScoringRepository) ListSnapshotsByLeagueAndEpisode(_ context.Context, leagueID, episodeID string) ([]scoring.PickSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []scoring.PickSnapshot
	for _, snap := range r.snapshots[leagueID] {
		if snap.EpisodeID == episodeID {
			out = append(out, snap)
		}
	}

	return out, nil
}

func (r *ScoringRepository) ListSnapshotsByLeague(_ context.Context, leagueID string) ([]scoring.PickSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]scoring.PickSnapshot(nil), r.snapshots[leagueID]...), nil
}

func (r *ScoringRepository) UpsertEpisodeLock(_ context.Context, item scoring.EpisodeLock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := item.LeagueID + "::" + item.EpisodeID
	if _, ok := r.locks[key]; !ok {
		r.locks[key] = item
	}

	return nil
}

func (r *ScoringRepository) GetEpisodeLock(_ context.Context, leagueID, episodeID string) (scoring.EpisodeLock, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lock, ok := r.locks[leagueID+"::"+episodeID]
	if !ok {
		return scoring.EpisodeLock{}, false, nil
	}

	return lock, true, nil
}

func (r *ScoringRepository) UpsertUserEpisodePoints(_ context.Context, items []scoring.UserEpisodePoints) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		byKey, ok := r.userPoints[item.LeagueID]
		if !ok {
			byKey = make(map[string]scoring.UserEpisodePoints)
			r.userPoints[item.LeagueID] = byKey
		}
		key := item.EpisodeID + "::" + item.UserID
		if _, exists := byKey[key]; !exists {
			r.pointsOrder[item.LeagueID] = append(r.pointsOrder[item.LeagueID], key)
		}
		byKey[key] = item
	}

	return nil
}

func (r *ScoringRepository) ListUserEpisodePointsByLeague(_ context.Context, leagueID string) ([]scoring.UserEpisodePoints, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := r.pointsOrder[leagueID]
	out := make([]scoring.UserEpisodePoints, 0, len(keys))
	for _, key := range keys {
		out = append(out, r.userPoints[leagueID][key])
	}

	return out, nil
}

func (r *ScoringRepository) ReplaceStandings(_ context.Context, leagueID string, items []scoring.Standing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.standings[leagueID] = append([]scoring.Standing(nil), items...)
	return nil
}

func (r *ScoringRepository) ListStandingsByLeague(_ context.Context, leagueID string) ([]scoring.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]scoring.Standing(nil), r.standings[leagueID]...), nil
}
