package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/realitygames/fantasy-league/internal/domain/league"
	qb "github.com/realitygames/fantasy-league/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	insertModel := leagueInsertModel{
		PublicID:    item.ID,
		SeasonID:    item.SeasonID,
		Name:        item.Name,
		OwnerUserID: item.OwnerUserID,
		InviteCode:  item.InviteCode,
		IsPublic:    item.IsPublic,
		IsPaid:      item.IsPaid,
		EntryFeeUSD: item.EntryFeeUSD,
		MaxMembers:  item.MaxMembers,
		RosterSize:  item.RosterSize,
		DraftStatus: item.DraftStatus,
	}
	query, args, err := qb.InsertModel("leagues", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create league: %w", err)
	}

	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("public_id", leagueID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}
	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) GetByInviteCode(ctx context.Context, inviteCode string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("invite_code", inviteCode),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by invite code query: %w", err)
	}
	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by invite code: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) ListByUser(ctx context.Context, userID string) ([]league.League, error) {
	query, args, err := qb.Select("l.*").
		From("leagues l JOIN league_members lm ON lm.league_public_id = l.public_id").
		Where(
			qb.Eq("lm.user_id", userID),
			qb.IsNull("lm.deleted_at"),
			qb.IsNull("l.deleted_at"),
		).
		OrderBy("l.created_at DESC", "l.id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues by user query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leagues by user: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) ListBySeason(ctx context.Context, seasonID string) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.NotDeleted(),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues by season query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leagues by season: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) ListIDsBySeason(ctx context.Context, seasonID string) ([]string, error) {
	query, args, err := qb.Select("public_id").From("leagues").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.NotDeleted(),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league ids by season query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list league ids by season: %w", err)
	}
	return ids, nil
}

func (r *LeagueRepository) SetDraftStatus(ctx context.Context, leagueID, status string) error {
	query, args, err := qb.Update("leagues").
		Set("draft_status", status).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", leagueID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set league draft status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set league draft status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected set league draft status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set league draft status: not found")
	}

	return nil
}

func (r *LeagueRepository) AddMember(ctx context.Context, item league.Membership) error {
	insertModel := leagueMemberInsertModel{
		LeagueID: item.LeagueID,
		UserID:   item.UserID,
		IsPaid:   item.IsPaid,
		JoinedAt: item.JoinedAt,
	}
	query, args, err := qb.InsertModel("league_members", insertModel, "")
	if err != nil {
		return fmt.Errorf("build add league member query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add league member: %w", err)
	}

	return nil
}

func (r *LeagueRepository) GetMember(ctx context.Context, leagueID, userID string) (league.Membership, bool, error) {
	query, args, err := qb.Select("*").From("league_members").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return league.Membership{}, false, fmt.Errorf("build get league member query: %w", err)
	}
	var row leagueMemberTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Membership{}, false, nil
		}
		return league.Membership{}, false, fmt.Errorf("get league member: %w", err)
	}

	return leagueMemberFromRow(row), true, nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Membership, error) {
	query, args, err := qb.Select("*").From("league_members").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.NotDeleted(),
		).
		OrderBy("joined_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league members query: %w", err)
	}

	var rows []leagueMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list league members: %w", err)
	}

	out := make([]league.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueMemberFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) SetMemberPaid(ctx context.Context, leagueID, userID string, paid bool) error {
	query, args, err := qb.Update("league_members").
		Set("is_paid", paid).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set league member paid query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set league member paid: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected set league member paid: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set league member paid: not found")
	}

	return nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:          row.PublicID,
		SeasonID:    row.SeasonID,
		Name:        row.Name,
		OwnerUserID: row.OwnerUserID,
		InviteCode:  row.InviteCode,
		IsPublic:    row.IsPublic,
		IsPaid:      row.IsPaid,
		EntryFeeUSD: row.EntryFeeUSD,
		MaxMembers:  row.MaxMembers,
		RosterSize:  row.RosterSize,
		DraftStatus: row.DraftStatus,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func leagueMemberFromRow(row leagueMemberTableModel) league.Membership {
	return league.Membership{
		LeagueID: row.LeagueID,
		UserID:   row.UserID,
		IsPaid:   row.IsPaid,
		JoinedAt: row.JoinedAt,
	}
}
