package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/realitygames/fantasy-league/internal/domain/castaway"
	qb "github.com/realitygames/fantasy-league/internal/platform/querybuilder"
)

type CastawayRepository struct {
	db *sqlx.DB
}

func NewCastawayRepository(db *sqlx.DB) *CastawayRepository {
	return &CastawayRepository{db: db}
}

func (r *CastawayRepository) ListBySeason(ctx context.Context, seasonID string) ([]castaway.Castaway, error) {
	query, args, err := qb.Select("*").From("castaways").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.NotDeleted(),
		).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list castaways by season query: %w", err)
	}

	var rows []castawayTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list castaways by season: %w", err)
	}

	out := make([]castaway.Castaway, 0, len(rows))
	for _, row := range rows {
		out = append(out, castawayFromRow(row))
	}
	return out, nil
}

func (r *CastawayRepository) GetByID(ctx context.Context, castawayID string) (castaway.Castaway, bool, error) {
	query, args, err := qb.Select("*").From("castaways").
		Where(
			qb.Eq("public_id", castawayID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return castaway.Castaway{}, false, fmt.Errorf("build get castaway by id query: %w", err)
	}
	var row castawayTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return castaway.Castaway{}, false, nil
		}
		return castaway.Castaway{}, false, fmt.Errorf("get castaway by id: %w", err)
	}

	return castawayFromRow(row), true, nil
}

func (r *CastawayRepository) UpsertCastaways(ctx context.Context, items []castaway.Castaway) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert castaways: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := castawayInsertModel{
			PublicID:          item.ID,
			SeasonID:          item.SeasonID,
			Name:              item.Name,
			Tribe:             item.Tribe,
			Occupation:        item.Occupation,
			Status:            castaway.NormalizeStatus(item.Status),
			EliminatedEpisode: intToNullInt64(item.EliminatedEpisode),
		}
		query, args, err := qb.InsertModel("castaways", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    name = EXCLUDED.name,
    tribe = EXCLUDED.tribe,
    occupation = EXCLUDED.occupation,
    status = EXCLUDED.status,
    eliminated_episode = EXCLUDED.eliminated_episode,
    updated_at = NOW(),
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert castaway query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert castaway: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert castaways tx: %w", err)
	}

	return nil
}

func castawayFromRow(row castawayTableModel) castaway.Castaway {
	return castaway.Castaway{
		ID:                row.PublicID,
		SeasonID:          row.SeasonID,
		Name:              row.Name,
		Tribe:             row.Tribe,
		Occupation:        row.Occupation,
		Status:            row.Status,
		EliminatedEpisode: nullInt64ToInt(row.EliminatedEpisode),
	}
}
