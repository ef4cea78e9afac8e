package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/realitygames/fantasy-league/internal/domain/pick"
	qb "github.com/realitygames/fantasy-league/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) Upsert(ctx context.Context, item pick.WeeklyPick) error {
	insertModel := weeklyPickInsertModel{
		PublicID:   item.ID,
		LeagueID:   item.LeagueID,
		UserID:     item.UserID,
		EpisodeID:  item.EpisodeID,
		CastawayID: item.CastawayID,
		IsAuto:     item.IsAuto,
	}
	query, args, err := qb.InsertModel("weekly_picks", insertModel, `ON CONFLICT (league_public_id, user_id, episode_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    castaway_public_id = EXCLUDED.castaway_public_id,
    is_auto = EXCLUDED.is_auto,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert weekly pick query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert weekly pick: %w", err)
	}

	return nil
}

func (r *PickRepository) Get(ctx context.Context, leagueID, userID, episodeID string) (pick.WeeklyPick, bool, error) {
	query, args, err := qb.Select("*").From("weekly_picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.Eq("episode_public_id", episodeID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return pick.WeeklyPick{}, false, fmt.Errorf("build get weekly pick query: %w", err)
	}
	var row weeklyPickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.WeeklyPick{}, false, nil
		}
		return pick.WeeklyPick{}, false, fmt.Errorf("get weekly pick: %w", err)
	}

	return weeklyPickFromRow(row), true, nil
}

func (r *PickRepository) ListByLeagueAndEpisode(ctx context.Context, leagueID, episodeID string) ([]pick.WeeklyPick, error) {
	query, args, err := qb.Select("*").From("weekly_picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("episode_public_id", episodeID),
			qb.NotDeleted(),
		).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weekly picks by episode query: %w", err)
	}

	var rows []weeklyPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weekly picks by episode: %w", err)
	}

	out := make([]pick.WeeklyPick, 0, len(rows))
	for _, row := range rows {
		out = append(out, weeklyPickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) ListByLeagueAndUser(ctx context.Context, leagueID, userID string) ([]pick.WeeklyPick, error) {
	query, args, err := qb.Select("*").From("weekly_picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.NotDeleted(),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weekly picks by user query: %w", err)
	}

	var rows []weeklyPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weekly picks by user: %w", err)
	}

	out := make([]pick.WeeklyPick, 0, len(rows))
	for _, row := range rows {
		out = append(out, weeklyPickFromRow(row))
	}
	return out, nil
}

func weeklyPickFromRow(row weeklyPickTableModel) pick.WeeklyPick {
	return pick.WeeklyPick{
		ID:         row.PublicID,
		LeagueID:   row.LeagueID,
		UserID:     row.UserID,
		EpisodeID:  row.EpisodeID,
		CastawayID: row.CastawayID,
		IsAuto:     row.IsAuto,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
