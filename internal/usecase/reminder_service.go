package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/realitygames/fantasy-league/internal/domain/league"
	"github.com/realitygames/fantasy-league/internal/domain/pick"
	"github.com/realitygames/fantasy-league/internal/domain/season"
	"github.com/realitygames/fantasy-league/internal/domain/user"
	"github.com/realitygames/fantasy-league/internal/platform/logging"
)

type SendPickRemindersInput struct {
	SeasonID   string
	MaxWorkers int
	// DryRun resolves recipients without sending anything.
	DryRun bool
}

type SendPickRemindersResult struct {
	EpisodeID      string `json:"episode_id"`
	EpisodeNumber  int    `json:"episode_number"`
	LeagueCount    int    `json:"league_count"`
	RecipientCount int    `json:"recipient_count"`
	SentCount      int    `json:"sent_count"`
	FailedCount    int    `json:"failed_count"`
	SkippedCount   int    `json:"skipped_count"`
	WorkerCount    int    `json:"worker_count"`
}

type smsSender interface {
	SendSMS(ctx context.Context, phone, message string) error
}

type reminderTarget struct {
	leagueID   string
	leagueName string
	userID     string
}

// ReminderService texts members who have not set a starter for the next
// episode once its lock time is near.
type ReminderService struct {
	leagueRepo league.Repository
	seasonRepo season.Repository
	pickRepo   pick.Repository
	userRepo   user.Repository
	sender     smsSender
	logger     *logging.Logger
	// reminderLead is how far before lock the reminder window opens.
	reminderLead time.Duration
	now          func() time.Time
}

func NewReminderService(
	leagueRepo league.Repository,
	seasonRepo season.Repository,
	pickRepo pick.Repository,
	userRepo user.Repository,
	sender smsSender,
	reminderLead time.Duration,
	logger *logging.Logger,
) *ReminderService {
	if logger == nil {
		logger = logging.Default()
	}
	if reminderLead <= 0 {
		reminderLead = 24 * time.Hour
	}
	return &ReminderService{
		leagueRepo:   leagueRepo,
		seasonRepo:   seasonRepo,
		pickRepo:     pickRepo,
		userRepo:     userRepo,
		sender:       sender,
		logger:       logger,
		reminderLead: reminderLead,
		now:          time.Now,
	}
}

// SendPickReminders finds the next episode inside the reminder window and
// texts every league member without a pick for it. Members without a phone
// number on file are counted as skipped.
func (s *ReminderService) SendPickReminders(ctx context.Context, input SendPickRemindersInput) (SendPickRemindersResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReminderService.SendPickReminders")
	defer span.End()

	if s.sender == nil && !input.DryRun {
		return SendPickRemindersResult{}, fmt.Errorf("%w: sms sender is not configured", ErrDependencyUnavailable)
	}

	seasonID, err := s.resolveSeasonID(ctx, input.SeasonID)
	if err != nil {
		return SendPickRemindersResult{}, err
	}

	episode, found, err := s.nextEpisodeInWindow(ctx, seasonID)
	if err != nil {
		return SendPickRemindersResult{}, err
	}
	if !found {
		return SendPickRemindersResult{}, nil
	}

	targets, leagueCount, err := s.collectTargets(ctx, seasonID, episode.ID)
	if err != nil {
		return SendPickRemindersResult{}, err
	}

	result := SendPickRemindersResult{
		EpisodeID:      episode.ID,
		EpisodeNumber:  episode.Number,
		LeagueCount:    leagueCount,
		RecipientCount: len(targets),
	}
	if len(targets) == 0 {
		return result, nil
	}

	phones, err := s.memberPhones(ctx, targets)
	if err != nil {
		return SendPickRemindersResult{}, err
	}

	workerCount := normalizeReminderWorkerCount(input.MaxWorkers, len(targets))
	result.WorkerCount = workerCount

	var sentCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SendPickRemindersResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	message := fmt.Sprintf(
		"Your starter for episode %d is not set. Picks lock at %s UTC.",
		episode.Number,
		episode.PicksLockAt.UTC().Format("Jan 2 15:04"),
	)

	var workers sync.WaitGroup
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			phone := phones[target.userID]
			if phone == "" {
				skippedCount.Add(1)
				return
			}
			if input.DryRun {
				sentCount.Add(1)
				return
			}

			if err := s.sender.SendSMS(ctx, phone, message); err != nil {
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "pick reminder send failed",
					"league_id", target.leagueID,
					"user_id", target.userID,
					"error", err.Error(),
				)
				return
			}
			sentCount.Add(1)
		}); err != nil {
			workers.Done()
			return SendPickRemindersResult{}, fmt.Errorf("submit reminder to worker pool: %w", err)
		}
	}
	workers.Wait()

	result.SentCount = int(sentCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	return result, nil
}

func (s *ReminderService) resolveSeasonID(ctx context.Context, seasonID string) (string, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID != "" {
		return seasonID, nil
	}

	active, exists, err := s.seasonRepo.GetActiveSeason(ctx)
	if err != nil {
		return "", fmt.Errorf("get active season: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: no active season", ErrNotFound)
	}
	return active.ID, nil
}

// nextEpisodeInWindow picks the earliest episode whose lock is still ahead
// but closer than the reminder lead.
func (s *ReminderService) nextEpisodeInWindow(ctx context.Context, seasonID string) (season.Episode, bool, error) {
	episodes, err := s.seasonRepo.ListEpisodesBySeason(ctx, seasonID)
	if err != nil {
		return season.Episode{}, false, fmt.Errorf("list season episodes: %w", err)
	}

	now := s.now().UTC()
	sort.Slice(episodes, func(i, j int) bool { return episodes[i].Number < episodes[j].Number })
	for _, e := range episodes {
		if e.PicksLockAt.IsZero() || e.PicksLockedAt(now) {
			continue
		}
		if e.PicksLockAt.Sub(now) <= s.reminderLead {
			return e, true, nil
		}
		break
	}
	return season.Episode{}, false, nil
}

func (s *ReminderService) collectTargets(ctx context.Context, seasonID, episodeID string) ([]reminderTarget, int, error) {
	leagues, err := s.leagueRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, 0, fmt.Errorf("list leagues by season: %w", err)
	}

	targets := make([]reminderTarget, 0)
	leagueCount := 0
	for _, item := range leagues {
		if !item.DraftComplete() {
			continue
		}
		leagueCount++

		members, err := s.leagueRepo.ListMembers(ctx, item.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("list league members: %w", err)
		}
		picks, err := s.pickRepo.ListByLeagueAndEpisode(ctx, item.ID, episodeID)
		if err != nil {
			return nil, 0, fmt.Errorf("list episode picks: %w", err)
		}
		picked := make(map[string]bool, len(picks))
		for _, p := range picks {
			picked[p.UserID] = true
		}

		for _, m := range members {
			if picked[m.UserID] {
				continue
			}
			targets = append(targets, reminderTarget{
				leagueID:   item.ID,
				leagueName: item.Name,
				userID:     m.UserID,
			})
		}
	}
	return targets, leagueCount, nil
}

func (s *ReminderService) memberPhones(ctx context.Context, targets []reminderTarget) (map[string]string, error) {
	seen := make(map[string]bool, len(targets))
	userIDs := make([]string, 0, len(targets))
	for _, t := range targets {
		if seen[t.userID] {
			continue
		}
		seen[t.userID] = true
		userIDs = append(userIDs, t.userID)
	}

	users, err := s.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list reminder profiles: %w", err)
	}

	phones := make(map[string]string, len(users))
	for _, u := range users {
		phones[u.ID] = strings.TrimSpace(u.Phone)
	}
	return phones, nil
}

func normalizeReminderWorkerCount(value int, targetCount int) int {
	if targetCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 4
	}
	if value > 8 {
		value = 8
	}
	if value > targetCount {
		value = targetCount
	}
	return value
}
