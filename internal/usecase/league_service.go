package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/realitygames/fantasy-league/internal/domain/league"
	"github.com/realitygames/fantasy-league/internal/domain/season"
	"github.com/realitygames/fantasy-league/internal/domain/user"
	idgen "github.com/realitygames/fantasy-league/internal/platform/id"
)

const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type CreateLeagueInput struct {
	OwnerUserID string
	SeasonID    string
	Name        string
	IsPublic    bool
	IsPaid      bool
	EntryFeeUSD int
	MaxMembers  int
}

type JoinLeagueByInviteInput struct {
	UserID     string
	InviteCode string
}

// CreateLeagueResult carries the new league plus the checkout URL the owner
// must complete when the league is paid.
type CreateLeagueResult struct {
	League      league.League
	CheckoutURL string
}

type LeagueMemberView struct {
	UserID      string
	DisplayName string
	IsOwner     bool
	IsPaid      bool
	JoinedAt    time.Time
}

type checkoutCreator interface {
	CreateCheckoutSession(ctx context.Context, leagueID, userID string, amountUSD int) (CheckoutSessionRef, error)
}

// CheckoutSessionRef points to a hosted payment page for a league entry fee.
type CheckoutSessionRef struct {
	ID  string
	URL string
}

type LeagueService struct {
	leagueRepo league.Repository
	seasonRepo season.Repository
	userRepo   user.Repository
	billing    checkoutCreator
	idGen      idgen.Generator
	now        func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	seasonRepo season.Repository,
	userRepo user.Repository,
	billing checkoutCreator,
	idGen idgen.Generator,
) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		seasonRepo: seasonRepo,
		userRepo:   userRepo,
		billing:    billing,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (CreateLeagueResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	input.OwnerUserID = strings.TrimSpace(input.OwnerUserID)
	input.SeasonID = strings.TrimSpace(input.SeasonID)
	input.Name = strings.TrimSpace(input.Name)
	if input.OwnerUserID == "" {
		return CreateLeagueResult{}, fmt.Errorf("%w: owner user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return CreateLeagueResult{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if input.IsPaid && input.EntryFeeUSD <= 0 {
		return CreateLeagueResult{}, fmt.Errorf("%w: paid league requires a positive entry fee", ErrInvalidInput)
	}

	activeSeason, err := s.resolveSeason(ctx, input.SeasonID)
	if err != nil {
		return CreateLeagueResult{}, err
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return CreateLeagueResult{}, fmt.Errorf("generate league id: %w", err)
	}
	inviteCode, err := generateInviteCode(ctx, 8)
	if err != nil {
		return CreateLeagueResult{}, fmt.Errorf("generate invite code: %w", err)
	}

	maxMembers := input.MaxMembers
	if maxMembers <= 0 {
		maxMembers = league.DefaultMaxMembers
	}

	now := s.now().UTC()
	item := league.League{
		ID:          leagueID,
		SeasonID:    activeSeason.ID,
		Name:        input.Name,
		OwnerUserID: input.OwnerUserID,
		InviteCode:  inviteCode,
		IsPublic:    input.IsPublic,
		IsPaid:      input.IsPaid,
		EntryFeeUSD: input.EntryFeeUSD,
		MaxMembers:  maxMembers,
		RosterSize:  league.DefaultRosterSize,
		DraftStatus: league.DraftStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := item.ValidateBasic(); err != nil {
		return CreateLeagueResult{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	if err := s.leagueRepo.Create(ctx, item); err != nil {
		if isDuplicateConstraintError(err) {
			return CreateLeagueResult{}, fmt.Errorf("%w: duplicate league name or invite code", ErrInvalidInput)
		}
		return CreateLeagueResult{}, fmt.Errorf("create league: %w", err)
	}

	membership := league.Membership{
		LeagueID: item.ID,
		UserID:   input.OwnerUserID,
		IsPaid:   !item.IsPaid,
		JoinedAt: now,
	}
	if err := s.leagueRepo.AddMember(ctx, membership); err != nil {
		return CreateLeagueResult{}, fmt.Errorf("add league owner membership: %w", err)
	}

	result := CreateLeagueResult{League: item}
	if item.IsPaid && s.billing != nil {
		session, err := s.billing.CreateCheckoutSession(ctx, item.ID, input.OwnerUserID, item.EntryFeeUSD)
		if err != nil {
			return CreateLeagueResult{}, fmt.Errorf("%w: create entry fee checkout: %v", ErrDependencyUnavailable, err)
		}
		result.CheckoutURL = session.URL
	}

	return result, nil
}

func (s *LeagueService) JoinByInviteCode(ctx context.Context, input JoinLeagueByInviteInput) (CreateLeagueResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinByInviteCode")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.InviteCode = strings.ToUpper(strings.TrimSpace(input.InviteCode))
	if input.UserID == "" {
		return CreateLeagueResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.InviteCode == "" {
		return CreateLeagueResult{}, fmt.Errorf("%w: invite code is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByInviteCode(ctx, input.InviteCode)
	if err != nil {
		return CreateLeagueResult{}, fmt.Errorf("get league by invite code: %w", err)
	}
	if !exists {
		return CreateLeagueResult{}, fmt.Errorf("%w: league for invite code", ErrNotFound)
	}

	if item.DraftComplete() {
		return CreateLeagueResult{}, fmt.Errorf("%w: league draft already completed", ErrInvalidInput)
	}

	if _, isMember, err := s.leagueRepo.GetMember(ctx, item.ID, input.UserID); err != nil {
		return CreateLeagueResult{}, fmt.Errorf("get league member: %w", err)
	} else if isMember {
		return CreateLeagueResult{}, fmt.Errorf("%w: already a member of this league", ErrInvalidInput)
	}

	members, err := s.leagueRepo.ListMembers(ctx, item.ID)
	if err != nil {
		return CreateLeagueResult{}, fmt.Errorf("list league members: %w", err)
	}
	if item.MaxMembers > 0 && len(members) >= item.MaxMembers {
		return CreateLeagueResult{}, fmt.Errorf("%w: league is full", ErrInvalidInput)
	}

	membership := league.Membership{
		LeagueID: item.ID,
		UserID:   input.UserID,
		IsPaid:   !item.IsPaid,
		JoinedAt: s.now().UTC(),
	}
	if err := s.leagueRepo.AddMember(ctx, membership); err != nil {
		if isDuplicateConstraintError(err) {
			return CreateLeagueResult{}, fmt.Errorf("%w: already a member of this league", ErrInvalidInput)
		}
		return CreateLeagueResult{}, fmt.Errorf("add league member: %w", err)
	}

	result := CreateLeagueResult{League: item}
	if item.IsPaid && s.billing != nil {
		session, err := s.billing.CreateCheckoutSession(ctx, item.ID, input.UserID, item.EntryFeeUSD)
		if err != nil {
			return CreateLeagueResult{}, fmt.Errorf("%w: create entry fee checkout: %v", ErrDependencyUnavailable, err)
		}
		result.CheckoutURL = session.URL
	}

	return result, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID, userID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	item, err := s.requireMemberLeague(ctx, leagueID, userID)
	if err != nil {
		return league.League{}, err
	}
	return item, nil
}

func (s *LeagueService) ListMyLeagues(ctx context.Context, userID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMyLeagues")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.leagueRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list leagues by user: %w", err)
	}
	return items, nil
}

func (s *LeagueService) ListMembers(ctx context.Context, leagueID, userID string) ([]LeagueMemberView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMembers")
	defer span.End()

	item, err := s.requireMemberLeague(ctx, leagueID, userID)
	if err != nil {
		return nil, err
	}

	members, err := s.leagueRepo.ListMembers(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list league members: %w", err)
	}

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	users, err := s.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list member profiles: %w", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}

	out := make([]LeagueMemberView, 0, len(members))
	for _, m := range members {
		out = append(out, LeagueMemberView{
			UserID:      m.UserID,
			DisplayName: names[m.UserID],
			IsOwner:     m.UserID == item.OwnerUserID,
			IsPaid:      m.IsPaid,
			JoinedAt:    m.JoinedAt,
		})
	}
	return out, nil
}

// MarkEntryFeePaid records a settled entry fee, normally driven by the
// billing provider webhook.
func (s *LeagueService) MarkEntryFeePaid(ctx context.Context, leagueID, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.MarkEntryFeePaid")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	userID = strings.TrimSpace(userID)
	if leagueID == "" || userID == "" {
		return fmt.Errorf("%w: league id and user id are required", ErrInvalidInput)
	}

	if _, exists, err := s.leagueRepo.GetMember(ctx, leagueID, userID); err != nil {
		return fmt.Errorf("get league member: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: league member", ErrNotFound)
	}

	if err := s.leagueRepo.SetMemberPaid(ctx, leagueID, userID, true); err != nil {
		if isNotFoundText(err) {
			return fmt.Errorf("%w: league member", ErrNotFound)
		}
		return fmt.Errorf("mark entry fee paid: %w", err)
	}
	return nil
}

func (s *LeagueService) requireMemberLeague(ctx context.Context, leagueID, userID string) (league.League, error) {
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

func (s *LeagueService) resolveSeason(ctx context.Context, seasonID string) (season.Season, error) {
	if seasonID != "" {
		item, exists, err := s.seasonRepo.GetSeasonByID(ctx, seasonID)
		if err != nil {
			return season.Season{}, fmt.Errorf("get season by id: %w", err)
		}
		if !exists {
			return season.Season{}, fmt.Errorf("%w: season %s", ErrNotFound, seasonID)
		}
		return item, nil
	}

	item, exists, err := s.seasonRepo.GetActiveSeason(ctx)
	if err != nil {
		return season.Season{}, fmt.Errorf("get active season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: no active season", ErrNotFound)
	}
	return item, nil
}

func generateInviteCode(ctx context.Context, length int) (string, error) {
	_ = ctx
	if length < 6 {
		length = 6
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes for invite code: %w", err)
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(out), nil
}

func isDuplicateConstraintError(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "duplicate key value violates unique constraint")
}

func isNotFoundText(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
