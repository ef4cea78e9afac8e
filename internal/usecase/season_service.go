package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/realitygames/fantasy-league/internal/domain/castaway"
	"github.com/realitygames/fantasy-league/internal/domain/season"
)

// SeasonService serves the public show catalog: seasons, episodes and
// castaways need no authentication.
type SeasonService struct {
	seasonRepo   season.Repository
	castawayRepo castaway.Repository
}

func NewSeasonService(seasonRepo season.Repository, castawayRepo castaway.Repository) *SeasonService {
	return &SeasonService{
		seasonRepo:   seasonRepo,
		castawayRepo: castawayRepo,
	}
}

func (s *SeasonService) ListSeasons(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListSeasons")
	defer span.End()

	items, err := s.seasonRepo.ListSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return items, nil
}

func (s *SeasonService) GetActiveSeason(ctx context.Context) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.GetActiveSeason")
	defer span.End()

	item, exists, err := s.seasonRepo.GetActiveSeason(ctx)
	if err != nil {
		return season.Season{}, fmt.Errorf("get active season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: no active season", ErrNotFound)
	}
	return item, nil
}

func (s *SeasonService) ListEpisodes(ctx context.Context, seasonID string) ([]season.Episode, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListEpisodes")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if _, exists, err := s.seasonRepo.GetSeasonByID(ctx, seasonID); err != nil {
		return nil, fmt.Errorf("get season by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: season %s", ErrNotFound, seasonID)
	}

	items, err := s.seasonRepo.ListEpisodesBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season episodes: %w", err)
	}
	return items, nil
}

func (s *SeasonService) ListCastaways(ctx context.Context, seasonID string) ([]castaway.Castaway, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListCastaways")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if _, exists, err := s.seasonRepo.GetSeasonByID(ctx, seasonID); err != nil {
		return nil, fmt.Errorf("get season by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: season %s", ErrNotFound, seasonID)
	}

	items, err := s.castawayRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season castaways: %w", err)
	}
	return items, nil
}

// UpsertCastaways replaces contestant facts from the show data feed,
// eliminations included. Driven by the internal job surface.
func (s *SeasonService) UpsertCastaways(ctx context.Context, seasonID string, items []castaway.Castaway) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.UpsertCastaways")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one castaway is required", ErrInvalidInput)
	}
	if _, exists, err := s.seasonRepo.GetSeasonByID(ctx, seasonID); err != nil {
		return fmt.Errorf("get season by id: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: season %s", ErrNotFound, seasonID)
	}

	for i := range items {
		items[i].ID = strings.TrimSpace(items[i].ID)
		items[i].SeasonID = seasonID
		items[i].Status = castaway.NormalizeStatus(items[i].Status)
		if items[i].ID == "" || strings.TrimSpace(items[i].Name) == "" {
			return fmt.Errorf("%w: castaway %d is missing an id or name", ErrInvalidInput, i+1)
		}
	}

	if err := s.castawayRepo.UpsertCastaways(ctx, items); err != nil {
		return fmt.Errorf("upsert castaways: %w", err)
	}
	return nil
}
