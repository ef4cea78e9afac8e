package cache

import (
	"context"
	"strings"

	"github.com/realitygames/fantasy-league/internal/domain/castaway"
	"github.com/realitygames/fantasy-league/internal/domain/league"
	"github.com/realitygames/fantasy-league/internal/domain/scoring"
	"github.com/realitygames/fantasy-league/internal/domain/season"
	basecache "github.com/realitygames/fantasy-league/internal/platform/cache"
)

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) ListSeasons(ctx context.Context) ([]season.Season, error) {
	v, err := r.cache.GetOrLoad(ctx, "season:list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListSeasons(ctx)
		if err != nil {
			return nil, err
		}
		return append([]season.Season(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]season.Season)
	return append([]season.Season(nil), items...), nil
}

func (r *SeasonRepository) GetSeasonByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	key := "season:id:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetSeasonByID(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return cachedSeasonByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeasonByID)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) GetActiveSeason(ctx context.Context) (season.Season, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "season:active", func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetActiveSeason(ctx)
		if err != nil {
			return nil, err
		}
		return cachedSeasonByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeasonByID)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) ListEpisodesBySeason(ctx context.Context, seasonID string) ([]season.Episode, error) {
	key := "episode:list:season:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListEpisodesBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]season.Episode(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]season.Episode)
	return append([]season.Episode(nil), items...), nil
}

func (r *SeasonRepository) GetEpisodeByID(ctx context.Context, episodeID string) (season.Episode, bool, error) {
	key := episodeByIDKey(episodeID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetEpisodeByID(ctx, episodeID)
		if err != nil {
			return nil, err
		}
		return cachedEpisodeByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Episode{}, false, err
	}

	cached, _ := v.(cachedEpisodeByID)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) MarkEpisodeScored(ctx context.Context, episodeID string) error {
	if err := r.next.MarkEpisodeScored(ctx, episodeID); err != nil {
		return err
	}
	r.cache.Delete(ctx, episodeByIDKey(episodeID))
	r.cache.DeletePrefix(ctx, "episode:list:season:")
	return nil
}

type cachedSeasonByID struct {
	value  season.Season
	exists bool
}

type cachedEpisodeByID struct {
	value  season.Episode
	exists bool
}

func episodeByIDKey(episodeID string) string {
	return "episode:id:" + episodeID
}

type CastawayRepository struct {
	next  castaway.Repository
	cache *basecache.Store
}

func NewCastawayRepository(next castaway.Repository, cache *basecache.Store) *CastawayRepository {
	return &CastawayRepository{next: next, cache: cache}
}

func (r *CastawayRepository) ListBySeason(ctx context.Context, seasonID string) ([]castaway.Castaway, error) {
	key := "castaway:list:season:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]castaway.Castaway(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]castaway.Castaway)
	return append([]castaway.Castaway(nil), items...), nil
}

func (r *CastawayRepository) GetByID(ctx context.Context, castawayID string) (castaway.Castaway, bool, error) {
	key := "castaway:id:" + castawayID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, castawayID)
		if err != nil {
			return nil, err
		}
		return cachedCastawayByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return castaway.Castaway{}, false, err
	}

	cached, _ := v.(cachedCastawayByID)
	return cached.value, cached.exists, nil
}

func (r *CastawayRepository) UpsertCastaways(ctx context.Context, items []castaway.Castaway) error {
	if err := r.next.UpsertCastaways(ctx, items); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "castaway:")
	return nil
}

type cachedCastawayByID struct {
	value  castaway.Castaway
	exists bool
}

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}

	r.cache.Delete(ctx, leagueByIDKey(item.ID))
	r.cache.Delete(ctx, leagueByInviteKey(item.InviteCode))
	r.cache.Delete(ctx, leagueListByUserKey(item.OwnerUserID))
	r.cache.DeletePrefix(ctx, leagueListBySeasonPrefix)
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueByIDKey(leagueID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) GetByInviteCode(ctx context.Context, inviteCode string) (league.League, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueByInviteKey(inviteCode), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByInviteCode(ctx, inviteCode)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) ListByUser(ctx context.Context, userID string) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueListByUserKey(userID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) ListBySeason(ctx context.Context, seasonID string) ([]league.League, error) {
	key := leagueListBySeasonPrefix + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) ListIDsBySeason(ctx context.Context, seasonID string) ([]string, error) {
	return r.next.ListIDsBySeason(ctx, seasonID)
}

func (r *LeagueRepository) SetDraftStatus(ctx context.Context, leagueID, status string) error {
	if err := r.next.SetDraftStatus(ctx, leagueID, status); err != nil {
		return err
	}

	r.cache.Delete(ctx, leagueByIDKey(leagueID))
	r.cache.DeletePrefix(ctx, leagueByInvitePrefix)
	r.cache.DeletePrefix(ctx, leagueListByUserPrefix)
	r.cache.DeletePrefix(ctx, leagueListBySeasonPrefix)
	return nil
}

func (r *LeagueRepository) AddMember(ctx context.Context, item league.Membership) error {
	if err := r.next.AddMember(ctx, item); err != nil {
		return err
	}

	r.cache.Delete(ctx, leagueMembersKey(item.LeagueID))
	r.cache.Delete(ctx, leagueMemberKey(item.LeagueID, item.UserID))
	r.cache.Delete(ctx, leagueListByUserKey(item.UserID))
	return nil
}

func (r *LeagueRepository) GetMember(ctx context.Context, leagueID, userID string) (league.Membership, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueMemberKey(leagueID, userID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetMember(ctx, leagueID, userID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueMember{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.Membership{}, false, err
	}

	cached, _ := v.(cachedLeagueMember)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Membership, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueMembersKey(leagueID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListMembers(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]league.Membership(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.Membership)
	return append([]league.Membership(nil), items...), nil
}

func (r *LeagueRepository) SetMemberPaid(ctx context.Context, leagueID, userID string, paid bool) error {
	if err := r.next.SetMemberPaid(ctx, leagueID, userID, paid); err != nil {
		return err
	}

	r.cache.Delete(ctx, leagueMembersKey(leagueID))
	r.cache.Delete(ctx, leagueMemberKey(leagueID, userID))
	return nil
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

type cachedLeagueMember struct {
	value  league.Membership
	exists bool
}

const (
	leagueByInvitePrefix     = "league:invite:"
	leagueListByUserPrefix   = "league:list:user:"
	leagueListBySeasonPrefix = "league:list:season:"
)

func leagueByIDKey(leagueID string) string {
	return "league:id:" + leagueID
}

func leagueByInviteKey(inviteCode string) string {
	return leagueByInvitePrefix + strings.ToUpper(strings.TrimSpace(inviteCode))
}

func leagueListByUserKey(userID string) string {
	return leagueListByUserPrefix + userID
}

func leagueMembersKey(leagueID string) string {
	return "league:members:" + leagueID
}

func leagueMemberKey(leagueID, userID string) string {
	return "league:member:" + leagueID + ":user:" + userID
}

type ScoringRepository struct {
	next  scoring.Repository
	cache *basecache.Store
}

func NewScoringRepository(next scoring.Repository, cache *basecache.Store) *ScoringRepository {
	return &ScoringRepository{next: next, cache: cache}
}

func (r *ScoringRepository) ListRulesBySeason(ctx context.Context, seasonID string) ([]scoring.Rule, error) {
	key := "scoring:rules:season:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListRulesBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]scoring.Rule(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]scoring.Rule)
	return append([]scoring.Rule(nil), items...), nil
}

func (r *ScoringRepository) UpsertRules(ctx context.Context, items []scoring.Rule) error {
	if err := r.next.UpsertRules(ctx, items); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "scoring:rules:")
	return nil
}

func (r *ScoringRepository) ReplaceEpisodeEvents(ctx context.Context, episodeID string, items []scoring.EpisodeEvent) error {
	if err := r.next.ReplaceEpisodeEvents(ctx, episodeID, items); err != nil {
		return err
	}
	r.cache.Delete(ctx, "scoring:events:episode:"+episodeID)
	r.cache.DeletePrefix(ctx, "scoring:scores:")
	return nil
}

func (r *ScoringRepository) ListEventsByEpisode(ctx context.Context, episodeID string) ([]scoring.EpisodeEvent, error) {
	key := "scoring:events:episode:" + episodeID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListEventsByEpisode(ctx, episodeID)
		if err != nil {
			return nil, err
		}
		return append([]scoring.EpisodeEvent(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]scoring.EpisodeEvent)
	return append([]scoring.EpisodeEvent(nil), items...), nil
}

func (r *ScoringRepository) UpsertEpisodeScores(ctx context.Context, items []scoring.EpisodeScore) error {
	if err := r.next.UpsertEpisodeScores(ctx, items); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "scoring:scores:")
	return nil
}

func (r *ScoringRepository) ListScoresByEpisode(ctx context.Context, episodeID string) ([]scoring.EpisodeScore, error) {
	key := "scoring:scores:episode:" + episodeID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListScoresByEpisode(ctx, episodeID)
		if err != nil {
			return nil, err
		}
		return append([]scoring.EpisodeScore(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]scoring.EpisodeScore)
	return append([]scoring.EpisodeScore(nil), items...), nil
}

func (r *ScoringRepository) ListScoresBySeason(ctx context.Context, seasonID string) ([]scoring.EpisodeScore, error) {
	key := "scoring:scores:season:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListScoresBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]scoring.EpisodeScore(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]scoring.EpisodeScore)
	return append([]scoring.EpisodeScore(nil), items...), nil
}

func (r *ScoringRepository) UpsertPickSnapshots(ctx context.Context, items []scoring.PickSnapshot) error {
	if err := r.next.UpsertPickSnapshots(ctx, items); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "scoring:snapshots:")
	return nil
}

func (r *ScoringRepository) ListSnapshotsByLeagueAndEpisode(ctx context.Context, leagueID, episodeID string) ([]scoring.PickSnapshot, error) {
	key := "scoring:snapshots:league:" + leagueID + ":episode:" + episodeID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListSnapshotsByLeagueAndEpisode(ctx, leagueID, episodeID)
		if err != nil {
			return nil, err
		}
		return append([]scoring.PickSnapshot(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]scoring.PickSnapshot)
	return append([]scoring.PickSnapshot(nil), items...), nil
}

func (r *ScoringRepository) ListSnapshotsByLeague(ctx context.Context, leagueID string) ([]scoring.PickSnapshot, error) {
	key := "scoring:snapshots:league:" + leagueID + ":all"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListSnapshotsByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]scoring.PickSnapshot(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]scoring.PickSnapshot)
	return append([]scoring.PickSnapshot(nil), items...), nil
}

func (r *ScoringRepository) UpsertEpisodeLock(ctx context.Context, item scoring.EpisodeLock) error {
	if err := r.next.UpsertEpisodeLock(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, episodeLockKey(item.LeagueID, item.EpisodeID))
	return nil
}

func (r *ScoringRepository) GetEpisodeLock(ctx context.Context, leagueID, episodeID string) (scoring.EpisodeLock, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, episodeLockKey(leagueID, episodeID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetEpisodeLock(ctx, leagueID, episodeID)
		if err != nil {
			return nil, err
		}
		return cachedEpisodeLock{value: item, exists: exists}, nil
	})
	if err != nil {
		return scoring.EpisodeLock{}, false, err
	}

	cached, _ := v.(cachedEpisodeLock)
	return cached.value, cached.exists, nil
}

func (r *ScoringRepository) UpsertUserEpisodePoints(ctx context.Context, items []scoring.UserEpisodePoints) error {
	if err := r.next.UpsertUserEpisodePoints(ctx, items); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "scoring:points:")
	return nil
}

func (r *ScoringRepository) ListUserEpisodePointsByLeague(ctx context.Context, leagueID string) ([]scoring.UserEpisodePoints, error) {
	key := "scoring:points:league:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListUserEpisodePointsByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]scoring.UserEpisodePoints(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]scoring.UserEpisodePoints)
	return append([]scoring.UserEpisodePoints(nil), items...), nil
}

func (r *ScoringRepository) ReplaceStandings(ctx context.Context, leagueID string, items []scoring.Standing) error {
	if err := r.next.ReplaceStandings(ctx, leagueID, items); err != nil {
		return err
	}
	r.cache.Delete(ctx, standingsKey(leagueID))
	return nil
}

func (r *ScoringRepository) ListStandingsByLeague(ctx context.Context, leagueID string) ([]scoring.Standing, error) {
	v, err := r.cache.GetOrLoad(ctx, standingsKey(leagueID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListStandingsByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]scoring.Standing(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]scoring.Standing)
	return append([]scoring.Standing(nil), items...), nil
}

type cachedEpisodeLock struct {
	value  scoring.EpisodeLock
	exists bool
}

func episodeLockKey(leagueID, episodeID string) string {
	return "scoring:lock:league:" + leagueID + ":episode:" + episodeID
}

func standingsKey(leagueID string) string {
	return "scoring:standings:league:" + leagueID
}
