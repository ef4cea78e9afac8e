package usecase

import (
	"errors"
	"testing"

	"github.com/realitygames/fantasy-league/internal/domain/castaway"
	"github.com/realitygames/fantasy-league/internal/infrastructure/repository/memory"
)

func newSeasonService() *SeasonService {
	return NewSeasonService(
		memory.NewSeasonRepository(memory.SeedSeasons(), memory.SeedEpisodes()),
		memory.NewCastawayRepository(memory.SeedCastaways()),
	)
}

func TestSeasonService_GetActiveSeason(t *testing.T) {
	t.Parallel()

	svc := newSeasonService()

	got, err := svc.GetActiveSeason(t.Context())
	if err != nil {
		t.Fatalf("get active season: %v", err)
	}
	if got.ID != memory.SeasonIDIslandTrials48 || got.Number != 48 {
		t.Fatalf("unexpected season: %+v", got)
	}
}

func TestSeasonService_ListEpisodes(t *testing.T) {
	t.Parallel()

	svc := newSeasonService()

	episodes, err := svc.ListEpisodes(t.Context(), memory.SeasonIDIslandTrials48)
	if err != nil {
		t.Fatalf("list episodes: %v", err)
	}
	if len(episodes) != 6 {
		t.Fatalf("unexpected episode count: %d", len(episodes))
	}
	for _, e := range episodes {
		if !e.PicksLockAt.Before(e.AirsAt) {
			t.Fatalf("episode %d lock must precede air time", e.Number)
		}
	}

	if _, err := svc.ListEpisodes(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSeasonService_ListCastaways(t *testing.T) {
	t.Parallel()

	svc := newSeasonService()

	castaways, err := svc.ListCastaways(t.Context(), memory.SeasonIDIslandTrials48)
	if err != nil {
		t.Fatalf("list castaways: %v", err)
	}
	if len(castaways) != 12 {
		t.Fatalf("unexpected castaway count: %d", len(castaways))
	}
}

func TestSeasonService_UpsertCastaways_NormalizesStatus(t *testing.T) {
	t.Parallel()

	svc := newSeasonService()

	err := svc.UpsertCastaways(t.Context(), memory.SeasonIDIslandTrials48, []castaway.Castaway{
		{ID: "cast-48-theo", Name: "Theo Vance", Status: "eliminated", EliminatedEpisode: 1},
	})
	if err != nil {
		t.Fatalf("upsert castaways: %v", err)
	}

	castaways, err := svc.ListCastaways(t.Context(), memory.SeasonIDIslandTrials48)
	if err != nil {
		t.Fatalf("list castaways: %v", err)
	}
	for _, c := range castaways {
		if c.ID != "cast-48-theo" {
			continue
		}
		if c.Status != castaway.StatusEliminated || c.EliminatedEpisode != 1 {
			t.Fatalf("unexpected castaway: %+v", c)
		}
		if c.InGameForEpisode(2) {
			t.Fatalf("eliminated castaway must be out for later episodes")
		}
		return
	}
	t.Fatalf("updated castaway not found")
}

func TestSeasonService_UpsertCastaways_Validation(t *testing.T) {
	t.Parallel()

	svc := newSeasonService()

	if err := svc.UpsertCastaways(t.Context(), memory.SeasonIDIslandTrials48, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty list, got %v", err)
	}
	err := svc.UpsertCastaways(t.Context(), memory.SeasonIDIslandTrials48, []castaway.Castaway{{ID: "cast-x"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
}
