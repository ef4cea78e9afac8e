package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/realitygames/fantasy-league/internal/domain/castaway"
	"github.com/realitygames/fantasy-league/internal/domain/league"
	"github.com/realitygames/fantasy-league/internal/domain/pick"
	"github.com/realitygames/fantasy-league/internal/domain/roster"
	"github.com/realitygames/fantasy-league/internal/domain/season"
	idgen "github.com/realitygames/fantasy-league/internal/platform/id"
)

type SubmitPickInput struct {
	LeagueID   string
	UserID     string
	EpisodeID  string
	CastawayID string
}

type PickService struct {
	leagueRepo   league.Repository
	seasonRepo   season.Repository
	castawayRepo castaway.Repository
	rosterRepo   roster.Repository
	pickRepo     pick.Repository
	idGen        idgen.Generator
	now          func() time.Time
}

func NewPickService(
	leagueRepo league.Repository,
	seasonRepo season.Repository,
	castawayRepo castaway.Repository,
	rosterRepo roster.Repository,
	pickRepo pick.Repository,
	idGen idgen.Generator,
) *PickService {
	return &PickService{
		leagueRepo:   leagueRepo,
		seasonRepo:   seasonRepo,
		castawayRepo: castawayRepo,
		rosterRepo:   rosterRepo,
		pickRepo:     pickRepo,
		idGen:        idGen,
		now:          time.Now,
	}
}

// SubmitPick sets or changes the caller's starter for an episode. Picks can
// be changed freely until the episode lock time passes.
func (s *PickService) SubmitPick(ctx context.Context, input SubmitPickInput) (pick.WeeklyPick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SubmitPick")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.UserID = strings.TrimSpace(input.UserID)
	input.EpisodeID = strings.TrimSpace(input.EpisodeID)
	input.CastawayID = strings.TrimSpace(input.CastawayID)
	if input.LeagueID == "" || input.UserID == "" {
		return pick.WeeklyPick{}, fmt.Errorf("%w: league id and user id are required", ErrInvalidInput)
	}
	if input.EpisodeID == "" {
		return pick.WeeklyPick{}, fmt.Errorf("%w: episode id is required", ErrInvalidInput)
	}
	if input.CastawayID == "" {
		return pick.WeeklyPick{}, fmt.Errorf("%w: castaway id is required", ErrInvalidInput)
	}

	item, err := s.requireMemberLeague(ctx, input.LeagueID, input.UserID)
	if err != nil {
		return pick.WeeklyPick{}, err
	}
	if !item.DraftComplete() {
		return pick.WeeklyPick{}, fmt.Errorf("%w: draft has not run yet", ErrInvalidInput)
	}

	episode, exists, err := s.seasonRepo.GetEpisodeByID(ctx, input.EpisodeID)
	if err != nil {
		return pick.WeeklyPick{}, fmt.Errorf("get episode by id: %w", err)
	}
	if !exists {
		return pick.WeeklyPick{}, fmt.Errorf("%w: episode %s", ErrNotFound, input.EpisodeID)
	}
	if episode.SeasonID != item.SeasonID {
		return pick.WeeklyPick{}, fmt.Errorf("%w: episode belongs to a different season", ErrInvalidInput)
	}
	if episode.PicksLockedAt(s.now().UTC()) {
		return pick.WeeklyPick{}, fmt.Errorf("%w: picks are locked for this episode", ErrInvalidInput)
	}

	entries, err := s.rosterRepo.ListByLeagueAndUser(ctx, input.LeagueID, input.UserID)
	if err != nil {
		return pick.WeeklyPick{}, fmt.Errorf("list member roster: %w", err)
	}
	onRoster := false
	for _, e := range entries {
		if e.CastawayID == input.CastawayID {
			onRoster = true
			break
		}
	}
	if !onRoster {
		return pick.WeeklyPick{}, fmt.Errorf("%w: castaway is not on your roster", ErrInvalidInput)
	}

	contestant, exists, err := s.castawayRepo.GetByID(ctx, input.CastawayID)
	if err != nil {
		return pick.WeeklyPick{}, fmt.Errorf("get castaway by id: %w", err)
	}
	if !exists {
		return pick.WeeklyPick{}, fmt.Errorf("%w: castaway %s", ErrNotFound, input.CastawayID)
	}
	if !contestant.InGameForEpisode(episode.Number) {
		return pick.WeeklyPick{}, fmt.Errorf("%w: castaway was eliminated before this episode", ErrInvalidInput)
	}

	pickID, err := s.idGen.NewID()
	if err != nil {
		return pick.WeeklyPick{}, fmt.Errorf("generate pick id: %w", err)
	}

	now := s.now().UTC()
	starter := pick.WeeklyPick{
		ID:         pickID,
		LeagueID:   input.LeagueID,
		UserID:     input.UserID,
		EpisodeID:  input.EpisodeID,
		CastawayID: input.CastawayID,
		IsAuto:     false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.pickRepo.Upsert(ctx, starter); err != nil {
		return pick.WeeklyPick{}, fmt.Errorf("upsert weekly pick: %w", err)
	}

	return starter, nil
}

func (s *PickService) GetPick(ctx context.Context, leagueID, userID, episodeID string) (pick.WeeklyPick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.GetPick")
	defer span.End()

	if _, err := s.requireMemberLeague(ctx, leagueID, userID); err != nil {
		return pick.WeeklyPick{}, err
	}

	episodeID = strings.TrimSpace(episodeID)
	if episodeID == "" {
		return pick.WeeklyPick{}, fmt.Errorf("%w: episode id is required", ErrInvalidInput)
	}

	starter, exists, err := s.pickRepo.Get(ctx, strings.TrimSpace(leagueID), strings.TrimSpace(userID), episodeID)
	if err != nil {
		return pick.WeeklyPick{}, fmt.Errorf("get weekly pick: %w", err)
	}
	if !exists {
		return pick.WeeklyPick{}, fmt.Errorf("%w: weekly pick", ErrNotFound)
	}
	return starter, nil
}

func (s *PickService) ListMyPicks(ctx context.Context, leagueID, userID string) ([]pick.WeeklyPick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListMyPicks")
	defer span.End()

	if _, err := s.requireMemberLeague(ctx, leagueID, userID); err != nil {
		return nil, err
	}

	items, err := s.pickRepo.ListByLeagueAndUser(ctx, strings.TrimSpace(leagueID), strings.TrimSpace(userID))
	if err != nil {
		return nil, fmt.Errorf("list weekly picks: %w", err)
	}
	return items, nil
}

func (s *PickService) requireMemberLeague(ctx context.Context, leagueID, userID string) (league.League, error) {
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
