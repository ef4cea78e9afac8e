package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/realitygames/fantasy-league/internal/domain/draft"
	qb "github.com/realitygames/fantasy-league/internal/platform/querybuilder"
)

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) ReplaceRankings(ctx context.Context, leagueID, userID string, items []draft.Ranking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace draft rankings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.Update("draft_rankings").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear draft rankings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("clear draft rankings: %w", err)
	}

	for _, item := range items {
		insertModel := draftRankingInsertModel{
			LeagueID:   leagueID,
			UserID:     userID,
			CastawayID: item.CastawayID,
			Rank:       item.Rank,
		}
		query, args, err := qb.InsertModel("draft_rankings", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert draft ranking query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert draft ranking: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace draft rankings tx: %w", err)
	}

	return nil
}

func (r *DraftRepository) ListByLeagueAndUser(ctx context.Context, leagueID, userID string) ([]draft.Ranking, error) {
	query, args, err := qb.Select("*").From("draft_rankings").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.NotDeleted(),
		).
		OrderBy("rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list draft rankings by user query: %w", err)
	}

	var rows []draftRankingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list draft rankings by user: %w", err)
	}

	out := make([]draft.Ranking, 0, len(rows))
	for _, row := range rows {
		out = append(out, draftRankingFromRow(row))
	}
	return out, nil
}

func (r *DraftRepository) ListByLeague(ctx context.Context, leagueID string) ([]draft.Ranking, error) {
	query, args, err := qb.Select("*").From("draft_rankings").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.NotDeleted(),
		).
		OrderBy("user_id", "rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list draft rankings by league query: %w", err)
	}

	var rows []draftRankingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list draft rankings by league: %w", err)
	}

	out := make([]draft.Ranking, 0, len(rows))
	for _, row := range rows {
		out = append(out, draftRankingFromRow(row))
	}
	return out, nil
}

func draftRankingFromRow(row draftRankingTableModel) draft.Ranking {
	return draft.Ranking{
		LeagueID:   row.LeagueID,
		UserID:     row.UserID,
		CastawayID: row.CastawayID,
		Rank:       row.Rank,
		UpdatedAt:  row.UpdatedAt,
	}
}
