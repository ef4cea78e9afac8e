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
	"github.com/realitygames/fantasy-league/internal/domain/season"
)

type RecalcInput struct {
	SeasonID   string
	LeagueID   string
	MaxWorkers int
}

type RecalcResult struct {
	LeagueCount  int               `json:"league_count"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	WorkerCount  int               `json:"worker_count"`
	Leagues      []RecalcRowResult `json:"leagues"`
}

type RecalcRowResult struct {
	LeagueID   string `json:"league_id"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	recalcStatusSuccess = "success"
	recalcStatusFailed  = "failed"
)

// RecalcService fans standings recomputation out across every league of a
// season, for the post-scoring internal job.
type RecalcService struct {
	leagueRepo league.Repository
	seasonRepo season.Repository
	ensurer    leagueEnsurer
}

func NewRecalcService(leagueRepo league.Repository, seasonRepo season.Repository, ensurer leagueEnsurer) *RecalcService {
	return &RecalcService{
		leagueRepo: leagueRepo,
		seasonRepo: seasonRepo,
		ensurer:    ensurer,
	}
}

func (s *RecalcService) Recalc(ctx context.Context, input RecalcInput) (RecalcResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalcService.Recalc")
	defer span.End()

	leagueIDs, err := s.resolveRecalcTargets(ctx, input)
	if err != nil {
		return RecalcResult{}, err
	}

	workerCount := normalizeRecalcWorkerCount(input.MaxWorkers, len(leagueIDs))
	result := RecalcResult{
		LeagueCount: len(leagueIDs),
		WorkerCount: workerCount,
		Leagues:     make([]RecalcRowResult, 0, len(leagueIDs)),
	}
	if len(leagueIDs) == 0 {
		return result, nil
	}

	rows := make(chan RecalcRowResult, len(leagueIDs))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalcResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, leagueID := range leagueIDs {
		leagueID := leagueID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RecalcRowResult{LeagueID: leagueID}

			if err := s.ensurer.EnsureLeagueUpToDate(ctx, leagueID); err != nil {
				row.Status = recalcStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = recalcStatusSuccess
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			rows <- row
		}); err != nil {
			workers.Done()
			return RecalcResult{}, fmt.Errorf("submit league to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Leagues = append(result.Leagues, row)
	}
	sort.SliceStable(result.Leagues, func(i, j int) bool {
		return result.Leagues[i].LeagueID < result.Leagues[j].LeagueID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func (s *RecalcService) resolveRecalcTargets(ctx context.Context, input RecalcInput) ([]string, error) {
	leagueID := strings.TrimSpace(input.LeagueID)
	if leagueID != "" {
		if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
			return nil, fmt.Errorf("get league by id: %w", err)
		} else if !exists {
			return nil, fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
		}
		return []string{leagueID}, nil
	}

	seasonID := strings.TrimSpace(input.SeasonID)
	if seasonID == "" {
		active, exists, err := s.seasonRepo.GetActiveSeason(ctx)
		if err != nil {
			return nil, fmt.Errorf("get active season: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: no active season", ErrNotFound)
		}
		seasonID = active.ID
	}

	leagueIDs, err := s.leagueRepo.ListIDsBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list league ids by season: %w", err)
	}
	return leagueIDs, nil
}

func normalizeRecalcWorkerCount(value int, leagueCount int) int {
	if leagueCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 4
	}
	if value > 8 {
		value = 8
	}
	if value > leagueCount {
		value = leagueCount
	}
	return value
}
