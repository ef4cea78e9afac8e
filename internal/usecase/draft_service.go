package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/realitygames/fantasy-league/internal/domain/castaway"
	"github.com/realitygames/fantasy-league/internal/domain/draft"
	"github.com/realitygames/fantasy-league/internal/domain/league"
	"github.com/realitygames/fantasy-league/internal/domain/roster"
)

type SubmitRankingsInput struct {
	LeagueID    string
	UserID      string
	CastawayIDs []string
}

type DraftService struct {
	leagueRepo   league.Repository
	castawayRepo castaway.Repository
	draftRepo    draft.Repository
	rosterRepo   roster.Repository
	now          func() time.Time
}

func NewDraftService(
	leagueRepo league.Repository,
	castawayRepo castaway.Repository,
	draftRepo draft.Repository,
	rosterRepo roster.Repository,
) *DraftService {
	return &DraftService{
		leagueRepo:   leagueRepo,
		castawayRepo: castawayRepo,
		draftRepo:    draftRepo,
		rosterRepo:   rosterRepo,
		now:          time.Now,
	}
}

// SubmitRankings replaces the caller's full pre-draft wishlist. Rankings can
// be resubmitted any number of times until the draft runs.
func (s *DraftService) SubmitRankings(ctx context.Context, input SubmitRankingsInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.SubmitRankings")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.UserID = strings.TrimSpace(input.UserID)
	if input.LeagueID == "" || input.UserID == "" {
		return fmt.Errorf("%w: league id and user id are required", ErrInvalidInput)
	}
	if len(input.CastawayIDs) == 0 {
		return fmt.Errorf("%w: at least one ranked castaway is required", ErrInvalidInput)
	}

	item, err := s.requireMemberLeague(ctx, input.LeagueID, input.UserID)
	if err != nil {
		return err
	}
	if item.DraftComplete() {
		return fmt.Errorf("%w: draft already completed, rankings are frozen", ErrInvalidInput)
	}

	valid, err := s.seasonCastawaySet(ctx, item.SeasonID)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(input.CastawayIDs))
	rankings := make([]draft.Ranking, 0, len(input.CastawayIDs))
	now := s.now().UTC()
	for i, rawID := range input.CastawayIDs {
		castawayID := strings.TrimSpace(rawID)
		if castawayID == "" {
			return fmt.Errorf("%w: castaway id at rank %d is empty", ErrInvalidInput, i+1)
		}
		if !valid[castawayID] {
			return fmt.Errorf("%w: castaway %s is not part of this season", ErrInvalidInput, castawayID)
		}
		if seen[castawayID] {
			return fmt.Errorf("%w: castaway %s ranked more than once", ErrInvalidInput, castawayID)
		}
		seen[castawayID] = true
		rankings = append(rankings, draft.Ranking{
			LeagueID:   input.LeagueID,
			UserID:     input.UserID,
			CastawayID: castawayID,
			Rank:       i + 1,
			UpdatedAt:  now,
		})
	}

	if err := s.draftRepo.ReplaceRankings(ctx, input.LeagueID, input.UserID, rankings); err != nil {
		return fmt.Errorf("replace draft rankings: %w", err)
	}
	return nil
}

func (s *DraftService) GetMyRankings(ctx context.Context, leagueID, userID string) ([]draft.Ranking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.GetMyRankings")
	defer span.End()

	if _, err := s.requireMemberLeague(ctx, leagueID, userID); err != nil {
		return nil, err
	}

	items, err := s.draftRepo.ListByLeagueAndUser(ctx, strings.TrimSpace(leagueID), strings.TrimSpace(userID))
	if err != nil {
		return nil, fmt.Errorf("list draft rankings: %w", err)
	}
	return items, nil
}

// RunDraft executes the snake draft for a league. Only the owner may trigger
// it, and rerunning a completed draft returns the existing rosters unchanged.
func (s *DraftService) RunDraft(ctx context.Context, leagueID, callerUserID string) ([]roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.RunDraft")
	defer span.End()

	item, err := s.requireMemberLeague(ctx, leagueID, callerUserID)
	if err != nil {
		return nil, err
	}
	if item.OwnerUserID != strings.TrimSpace(callerUserID) {
		return nil, fmt.Errorf("%w: only the league owner can run the draft", ErrUnauthorized)
	}
	if item.DraftComplete() {
		entries, err := s.rosterRepo.ListByLeague(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("list league rosters: %w", err)
		}
		return entries, nil
	}

	members, err := s.leagueRepo.ListMembers(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list league members: %w", err)
	}
	if len(members) < 2 {
		return nil, fmt.Errorf("%w: draft requires at least two members", ErrInvalidInput)
	}
	memberIDs := make([]string, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.UserID)
	}

	rankings, err := s.draftRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list draft rankings: %w", err)
	}
	preferences := make(map[string][]string, len(members))
	for _, r := range rankings {
		preferences[r.UserID] = append(preferences[r.UserID], r.CastawayID)
	}

	castaways, err := s.castawayRepo.ListBySeason(ctx, item.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("list season castaways: %w", err)
	}
	fallback := make([]string, 0, len(castaways))
	for _, c := range castaways {
		fallback = append(fallback, c.ID)
	}

	assignments, err := draft.Run(memberIDs, item.RosterSize, preferences, fallback)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	now := s.now().UTC()
	entries := make([]roster.Entry, 0, len(assignments))
	for _, a := range assignments {
		entries = append(entries, roster.Entry{
			LeagueID:   item.ID,
			UserID:     a.UserID,
			CastawayID: a.CastawayID,
			DraftRound: a.Round,
			DraftPick:  a.Pick,
			CreatedAt:  now,
		})
	}

	if err := s.rosterRepo.ReplaceLeagueRosters(ctx, item.ID, entries); err != nil {
		return nil, fmt.Errorf("replace league rosters: %w", err)
	}
	if err := s.leagueRepo.SetDraftStatus(ctx, item.ID, league.DraftStatusComplete); err != nil {
		return nil, fmt.Errorf("set draft status: %w", err)
	}

	return entries, nil
}

func (s *DraftService) GetLeagueRosters(ctx context.Context, leagueID, userID string) ([]roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.GetLeagueRosters")
	defer span.End()

	item, err := s.requireMemberLeague(ctx, leagueID, userID)
	if err != nil {
		return nil, err
	}
	if !item.DraftComplete() {
		return nil, fmt.Errorf("%w: draft has not run yet", ErrInvalidInput)
	}

	entries, err := s.rosterRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list league rosters: %w", err)
	}
	return entries, nil
}

func (s *DraftService) requireMemberLeague(ctx context.Context, leagueID, userID string) (league.League, error) {
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

func (s *DraftService) seasonCastawaySet(ctx context.Context, seasonID string) (map[string]bool, error) {
	castaways, err := s.castawayRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season castaways: %w", err)
	}

	set := make(map[string]bool, len(castaways))
	for _, c := range castaways {
		set[c.ID] = true
	}
	return set, nil
}
