package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/realitygames/fantasy-league/internal/domain/castaway"
	"github.com/realitygames/fantasy-league/internal/domain/league"
	"github.com/realitygames/fantasy-league/internal/domain/pick"
	"github.com/realitygames/fantasy-league/internal/domain/roster"
	"github.com/realitygames/fantasy-league/internal/domain/scoring"
	"github.com/realitygames/fantasy-league/internal/domain/season"
	idgen "github.com/realitygames/fantasy-league/internal/platform/id"
	"github.com/realitygames/fantasy-league/internal/platform/resilience"
)

// ensureInterval bounds how often one league's scoring state is recomputed.
const ensureInterval = 30 * time.Second

type EpisodeEventInput struct {
	CastawayID string
	RuleCode   string
	Count      int
}

type RecordEpisodeEventsInput struct {
	EpisodeID string
	Events    []EpisodeEventInput
}

type ScoringService struct {
	leagueRepo   league.Repository
	seasonRepo   season.Repository
	castawayRepo castaway.Repository
	rosterRepo   roster.Repository
	pickRepo     pick.Repository
	scoringRepo  scoring.Repository
	idGen        idgen.Generator
	now          func() time.Time

	ensureGroup resilience.SingleFlight
	ensureEvery time.Duration
	ensureMu    sync.Mutex
	ensuredAt   map[string]time.Time
}

func NewScoringService(
	leagueRepo league.Repository,
	seasonRepo season.Repository,
	castawayRepo castaway.Repository,
	rosterRepo roster.Repository,
	pickRepo pick.Repository,
	scoringRepo scoring.Repository,
	idGen idgen.Generator,
	refreshEvery time.Duration,
) *ScoringService {
	if refreshEvery <= 0 {
		refreshEvery = ensureInterval
	}
	return &ScoringService{
		leagueRepo:   leagueRepo,
		seasonRepo:   seasonRepo,
		castawayRepo: castawayRepo,
		rosterRepo:   rosterRepo,
		pickRepo:     pickRepo,
		scoringRepo:  scoringRepo,
		idGen:        idGen,
		now:          time.Now,
		ensureEvery:  refreshEvery,
		ensuredAt:    map[string]time.Time{},
	}
}

// RecordEpisodeEvents replaces the raw event sheet of one episode and
// recomputes per-castaway scores from the season rule table. Resubmitting the
// sheet overwrites the previous one, so scoring corrections are just another
// submission.
func (s *ScoringService) RecordEpisodeEvents(ctx context.Context, input RecordEpisodeEventsInput) ([]scoring.EpisodeScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecordEpisodeEvents")
	defer span.End()

	input.EpisodeID = strings.TrimSpace(input.EpisodeID)
	if input.EpisodeID == "" {
		return nil, fmt.Errorf("%w: episode id is required", ErrInvalidInput)
	}

	episode, exists, err := s.seasonRepo.GetEpisodeByID(ctx, input.EpisodeID)
	if err != nil {
		return nil, fmt.Errorf("get episode by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: episode %s", ErrNotFound, input.EpisodeID)
	}

	rules, err := s.scoringRepo.ListRulesBySeason(ctx, episode.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("list scoring rules: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: season has no scoring rules", ErrInvalidInput)
	}

	castaways, err := s.castawayRepo.ListBySeason(ctx, episode.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("list season castaways: %w", err)
	}
	inSeason := make(map[string]bool, len(castaways))
	for _, c := range castaways {
		inSeason[c.ID] = true
	}

	events := make([]scoring.EpisodeEvent, 0, len(input.Events))
	for i, ev := range input.Events {
		castawayID := strings.TrimSpace(ev.CastawayID)
		ruleCode := strings.ToUpper(strings.TrimSpace(ev.RuleCode))
		if castawayID == "" || ruleCode == "" {
			return nil, fmt.Errorf("%w: event %d is missing a castaway or rule code", ErrInvalidInput, i+1)
		}
		if !inSeason[castawayID] {
			return nil, fmt.Errorf("%w: castaway %s is not part of this season", ErrInvalidInput, castawayID)
		}
		eventID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate event id: %w", err)
		}
		events = append(events, scoring.EpisodeEvent{
			ID:         eventID,
			EpisodeID:  input.EpisodeID,
			CastawayID: castawayID,
			RuleCode:   ruleCode,
			Count:      ev.Count,
		})
	}

	if err := s.scoringRepo.ReplaceEpisodeEvents(ctx, input.EpisodeID, events); err != nil {
		return nil, fmt.Errorf("replace episode events: %w", err)
	}

	scores := scoring.ComputeEpisodeScores(input.EpisodeID, events, rules, s.now().UTC())
	if err := s.scoringRepo.UpsertEpisodeScores(ctx, scores); err != nil {
		return nil, fmt.Errorf("upsert episode scores: %w", err)
	}
	if err := s.seasonRepo.MarkEpisodeScored(ctx, input.EpisodeID); err != nil {
		return nil, fmt.Errorf("mark episode scored: %w", err)
	}

	// Standings are derived lazily from snapshots, so a rescore simply shows
	// up on the next ensure pass.
	s.forgetEnsure(episode.SeasonID)

	return scores, nil
}

func (s *ScoringService) ListEpisodeScores(ctx context.Context, episodeID string) ([]scoring.EpisodeScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ListEpisodeScores")
	defer span.End()

	episodeID = strings.TrimSpace(episodeID)
	if episodeID == "" {
		return nil, fmt.Errorf("%w: episode id is required", ErrInvalidInput)
	}

	scores, err := s.scoringRepo.ListScoresByEpisode(ctx, episodeID)
	if err != nil {
		return nil, fmt.Errorf("list episode scores: %w", err)
	}
	return scores, nil
}

func (s *ScoringService) ListSeasonRules(ctx context.Context, seasonID string) ([]scoring.Rule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ListSeasonRules")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	if _, exists, err := s.seasonRepo.GetSeasonByID(ctx, seasonID); err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: season %s", ErrNotFound, seasonID)
	}

	rules, err := s.scoringRepo.ListRulesBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list scoring rules: %w", err)
	}
	return rules, nil
}

// GetStandings returns the league table, refreshing locks, snapshots and
// points first so the table reflects every episode whose lock time passed.
func (s *ScoringService) GetStandings(ctx context.Context, leagueID, userID string) ([]scoring.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.GetStandings")
	defer span.End()

	item, err := s.requireMemberLeague(ctx, leagueID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.EnsureLeagueUpToDate(ctx, item.ID); err != nil {
		return nil, err
	}

	standings, err := s.scoringRepo.ListStandingsByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list league standings: %w", err)
	}
	return standings, nil
}

// EnsureLeagueUpToDate locks every past-due episode for the league,
// snapshotting starters and backfilling auto picks, then recomputes member
// points and standings. Concurrent calls for one league collapse into a
// single pass, and a league refreshed recently is skipped.
func (s *ScoringService) EnsureLeagueUpToDate(ctx context.Context, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.EnsureLeagueUpToDate")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if s.shouldSkipEnsure(leagueID) {
		return nil
	}

	_, err, _ := s.ensureGroup.Do("scoring:ensure:"+leagueID, func() (any, error) {
		if err := s.ensureLeague(ctx, leagueID); err != nil {
			return nil, err
		}
		s.markEnsured(leagueID)
		return nil, nil
	})
	return err
}

func (s *ScoringService) ensureLeague(ctx context.Context, leagueID string) error {
	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
	}
	if !item.DraftComplete() {
		return nil
	}

	members, err := s.leagueRepo.ListMembers(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list league members: %w", err)
	}
	episodes, err := s.seasonRepo.ListEpisodesBySeason(ctx, item.SeasonID)
	if err != nil {
		return fmt.Errorf("list season episodes: %w", err)
	}

	now := s.now().UTC()
	for _, episode := range episodes {
		if !episode.PicksLockedAt(now) {
			continue
		}
		if err := s.lockEpisode(ctx, item, members, episode); err != nil {
			return err
		}
	}

	return s.recomputeStandings(ctx, item, members, now)
}

// lockEpisode freezes starters for one past-due episode. The lock row makes
// the pass idempotent, and snapshot inserts keep the first write.
func (s *ScoringService) lockEpisode(ctx context.Context, item league.League, members []league.Membership, episode season.Episode) error {
	if _, locked, err := s.scoringRepo.GetEpisodeLock(ctx, item.ID, episode.ID); err != nil {
		return fmt.Errorf("get episode lock: %w", err)
	} else if locked {
		return nil
	}

	picks, err := s.pickRepo.ListByLeagueAndEpisode(ctx, item.ID, episode.ID)
	if err != nil {
		return fmt.Errorf("list episode picks: %w", err)
	}
	chosen := make(map[string]pick.WeeklyPick, len(picks))
	for _, p := range picks {
		chosen[p.UserID] = p
	}

	now := s.now().UTC()
	snapshots := make([]scoring.PickSnapshot, 0, len(members))
	for _, m := range members {
		if p, ok := chosen[m.UserID]; ok {
			snapshots = append(snapshots, scoring.PickSnapshot{
				LeagueID:   item.ID,
				EpisodeID:  episode.ID,
				UserID:     m.UserID,
				CastawayID: p.CastawayID,
				IsAuto:     p.IsAuto,
				LockedAt:   now,
			})
			continue
		}

		castawayID, err := s.autoPickCastaway(ctx, item.ID, m.UserID, episode.Number)
		if err != nil {
			return err
		}
		if castawayID == "" {
			continue
		}

		pickID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate pick id: %w", err)
		}
		auto := pick.WeeklyPick{
			ID:         pickID,
			LeagueID:   item.ID,
			UserID:     m.UserID,
			EpisodeID:  episode.ID,
			CastawayID: castawayID,
			IsAuto:     true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.pickRepo.Upsert(ctx, auto); err != nil {
			return fmt.Errorf("upsert auto pick: %w", err)
		}
		snapshots = append(snapshots, scoring.PickSnapshot{
			LeagueID:   item.ID,
			EpisodeID:  episode.ID,
			UserID:     m.UserID,
			CastawayID: castawayID,
			IsAuto:     true,
			LockedAt:   now,
		})
	}

	if err := s.scoringRepo.UpsertPickSnapshots(ctx, snapshots); err != nil {
		return fmt.Errorf("upsert pick snapshots: %w", err)
	}
	if err := s.scoringRepo.UpsertEpisodeLock(ctx, scoring.EpisodeLock{
		LeagueID:  item.ID,
		EpisodeID: episode.ID,
		LockedAt:  now,
	}); err != nil {
		return fmt.Errorf("upsert episode lock: %w", err)
	}
	return nil
}

// autoPickCastaway falls back to the member's earliest-drafted castaway still
// in the game. An empty result means the whole roster is out.
func (s *ScoringService) autoPickCastaway(ctx context.Context, leagueID, userID string, episodeNumber int) (string, error) {
	entries, err := s.rosterRepo.ListByLeagueAndUser(ctx, leagueID, userID)
	if err != nil {
		return "", fmt.Errorf("list member roster: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].DraftPick < entries[j].DraftPick })

	for _, e := range entries {
		contestant, exists, err := s.castawayRepo.GetByID(ctx, e.CastawayID)
		if err != nil {
			return "", fmt.Errorf("get castaway by id: %w", err)
		}
		if exists && contestant.InGameForEpisode(episodeNumber) {
			return e.CastawayID, nil
		}
	}
	return "", nil
}

func (s *ScoringService) recomputeStandings(ctx context.Context, item league.League, members []league.Membership, now time.Time) error {
	scores, err := s.scoringRepo.ListScoresBySeason(ctx, item.SeasonID)
	if err != nil {
		return fmt.Errorf("list season scores: %w", err)
	}
	scoreByEpisodeCastaway := make(map[string]int, len(scores))
	for _, sc := range scores {
		scoreByEpisodeCastaway[sc.EpisodeID+"::"+sc.CastawayID] = sc.Points
	}

	snapshots, err := s.scoringRepo.ListSnapshotsByLeague(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list pick snapshots: %w", err)
	}

	points := make([]scoring.UserEpisodePoints, 0, len(snapshots))
	totals := make(map[string]int, len(members))
	for _, m := range members {
		totals[m.UserID] = 0
	}
	for _, snap := range snapshots {
		earned := scoreByEpisodeCastaway[snap.EpisodeID+"::"+snap.CastawayID]
		points = append(points, scoring.UserEpisodePoints{
			LeagueID:  item.ID,
			EpisodeID: snap.EpisodeID,
			UserID:    snap.UserID,
			Points:    earned,
		})
		totals[snap.UserID] += earned
	}

	if err := s.scoringRepo.UpsertUserEpisodePoints(ctx, points); err != nil {
		return fmt.Errorf("upsert user episode points: %w", err)
	}

	standings := scoring.RankStandings(item.ID, totals, now)
	if err := s.scoringRepo.ReplaceStandings(ctx, item.ID, standings); err != nil {
		return fmt.Errorf("replace league standings: %w", err)
	}
	return nil
}

func (s *ScoringService) shouldSkipEnsure(leagueID string) bool {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()

	last, ok := s.ensuredAt[leagueID]
	return ok && s.now().Sub(last) < s.ensureEvery
}

func (s *ScoringService) markEnsured(leagueID string) {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	s.ensuredAt[leagueID] = s.now()
}

// forgetEnsure drops the freshness markers so the next standings read after a
// rescore recomputes immediately.
func (s *ScoringService) forgetEnsure(seasonID string) {
	_ = seasonID
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	s.ensuredAt = map[string]time.Time{}
}

func (s *ScoringService) requireMemberLeague(ctx context.Context, leagueID, userID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	userID = strings.TrimSpace(userID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if userID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
	}

	if _, isMember, err := s.leagueRepo.GetMember(ctx, leagueID, userID); err != nil {
		return league.League{}, fmt.Errorf("get league member: %w", err)
	} else if !isMember {
		return league.League{}, fmt.Errorf("%w: not a member of this league", ErrUnauthorized)
	}

	return item, nil
}
