package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/realitygames/fantasy-league/internal/domain/season"
	qb "github.com/realitygames/fantasy-league/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) ListSeasons(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.NotDeleted()).
		OrderBy("number DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}
	return out, nil
}

func (r *SeasonRepository) GetSeasonByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("public_id", seasonID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season by id query: %w", err)
	}
	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season by id: %w", err)
	}

	return seasonFromRow(row), true, nil
}

func (r *SeasonRepository) GetActiveSeason(ctx context.Context) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("is_active", true),
			qb.NotDeleted(),
		).
		OrderBy("number DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get active season query: %w", err)
	}
	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get active season: %w", err)
	}

	return seasonFromRow(row), true, nil
}

func (r *SeasonRepository) ListEpisodesBySeason(ctx context.Context, seasonID string) ([]season.Episode, error) {
	query, args, err := qb.Select("*").From("episodes").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.NotDeleted(),
		).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list episodes by season query: %w", err)
	}

	var rows []episodeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list episodes by season: %w", err)
	}

	out := make([]season.Episode, 0, len(rows))
	for _, row := range rows {
		out = append(out, episodeFromRow(row))
	}
	return out, nil
}

func (r *SeasonRepository) GetEpisodeByID(ctx context.Context, episodeID string) (season.Episode, bool, error) {
	query, args, err := qb.Select("*").From("episodes").
		Where(
			qb.Eq("public_id", episodeID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return season.Episode{}, false, fmt.Errorf("build get episode by id query: %w", err)
	}
	var row episodeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Episode{}, false, nil
		}
		return season.Episode{}, false, fmt.Errorf("get episode by id: %w", err)
	}

	return episodeFromRow(row), true, nil
}

func (r *SeasonRepository) MarkEpisodeScored(ctx context.Context, episodeID string) error {
	query, args, err := qb.Update("episodes").
		Set("is_scored", true).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", episodeID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark episode scored query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark episode scored: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected mark episode scored: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("mark episode scored: not found")
	}

	return nil
}

func seasonFromRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:       row.PublicID,
		Name:     row.Name,
		Number:   row.Number,
		IsActive: row.IsActive,
	}
}

func episodeFromRow(row episodeTableModel) season.Episode {
	return season.Episode{
		ID:          row.PublicID,
		SeasonID:    row.SeasonID,
		Number:      row.Number,
		Title:       row.Title,
		AirsAt:      row.AirsAt,
		PicksLockAt: row.PicksLockAt,
		IsScored:    row.IsScored,
	}
}
