package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/realitygames/fantasy-league/internal/domain/roster"
	qb "github.com/realitygames/fantasy-league/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ReplaceLeagueRosters(ctx context.Context, leagueID string, entries []roster.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace league rosters: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.Update("rosters").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear league rosters query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("clear league rosters: %w", err)
	}

	for _, entry := range entries {
		insertModel := rosterEntryInsertModel{
			LeagueID:   leagueID,
			UserID:     entry.UserID,
			CastawayID: entry.CastawayID,
			DraftRound: entry.DraftRound,
			DraftPick:  entry.DraftPick,
		}
		query, args, err := qb.InsertModel("rosters", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert roster entry query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert roster entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace league rosters tx: %w", err)
	}

	return nil
}

func (r *RosterRepository) ListByLeague(ctx context.Context, leagueID string) ([]roster.Entry, error) {
	query, args, err := qb.Select("*").From("rosters").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.NotDeleted(),
		).
		OrderBy("draft_pick").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rosters by league query: %w", err)
	}

	var rows []rosterEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rosters by league: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterEntryFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) ListByLeagueAndUser(ctx context.Context, leagueID, userID string) ([]roster.Entry, error) {
	query, args, err := qb.Select("*").From("rosters").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.NotDeleted(),
		).
		OrderBy("draft_pick").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rosters by user query: %w", err)
	}

	var rows []rosterEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rosters by user: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterEntryFromRow(row))
	}
	return out, nil
}

func rosterEntryFromRow(row rosterEntryTableModel) roster.Entry {
	return roster.Entry{
		LeagueID:   row.LeagueID,
		UserID:     row.UserID,
		CastawayID: row.CastawayID,
		DraftRound: row.DraftRound,
		DraftPick:  row.DraftPick,
		CreatedAt:  row.CreatedAt,
	}
}
