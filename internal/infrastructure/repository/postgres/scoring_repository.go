package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/realitygames/fantasy-league/internal/domain/scoring"
	qb "github.com/realitygames/fantasy-league/internal/platform/querybuilder"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) ListRulesBySeason(ctx context.Context, seasonID string) ([]scoring.Rule, error) {
	query, args, err := qb.Select("*").From("scoring_rules").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.NotDeleted(),
		).
		OrderBy("code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scoring rules query: %w", err)
	}

	var rows []scoringRuleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scoring rules: %w", err)
	}

	out := make([]scoring.Rule, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.Rule{
			ID:        row.PublicID,
			SeasonID:  row.SeasonID,
			Code:      row.Code,
			Label:     row.Label,
			Points:    row.Points,
			IsEnabled: row.IsEnabled,
		})
	}
	return out, nil
}

func (r *ScoringRepository) UpsertRules(ctx context.Context, items []scoring.Rule) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert scoring rules: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := scoringRuleInsertModel{
			PublicID:  item.ID,
			SeasonID:  item.SeasonID,
			Code:      item.Code,
			Label:     item.Label,
			Points:    item.Points,
			IsEnabled: item.IsEnabled,
		}
		query, args, err := qb.InsertModel("scoring_rules", insertModel, `ON CONFLICT (season_public_id, code) WHERE deleted_at IS NULL
DO UPDATE SET
    label = EXCLUDED.label,
    points = EXCLUDED.points,
    is_enabled = EXCLUDED.is_enabled,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert scoring rule query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert scoring rule: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert scoring rules tx: %w", err)
	}

	return nil
}

func (r *ScoringRepository) ReplaceEpisodeEvents(ctx context.Context, episodeID string, items []scoring.EpisodeEvent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace episode events: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.Update("episode_events").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("episode_public_id", episodeID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear episode events query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("clear episode events: %w", err)
	}

	for _, item := range items {
		insertModel := episodeEventInsertModel{
			PublicID:   item.ID,
			EpisodeID:  episodeID,
			CastawayID: item.CastawayID,
			RuleCode:   item.RuleCode,
			EventCount: item.Count,
		}
		query, args, err := qb.InsertModel("episode_events", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert episode event query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert episode event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace episode events tx: %w", err)
	}

	return nil
}

func (r *ScoringRepository) ListEventsByEpisode(ctx context.Context, episodeID string) ([]scoring.EpisodeEvent, error) {
	query, args, err := qb.Select("*").From("episode_events").
		Where(
			qb.Eq("episode_public_id", episodeID),
			qb.NotDeleted(),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list episode events query: %w", err)
	}

	var rows []episodeEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list episode events: %w", err)
	}

	out := make([]scoring.EpisodeEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.EpisodeEvent{
			ID:         row.PublicID,
			EpisodeID:  row.EpisodeID,
			CastawayID: row.CastawayID,
			RuleCode:   row.RuleCode,
			Count:      row.EventCount,
		})
	}
	return out, nil
}

func (r *ScoringRepository) UpsertEpisodeScores(ctx context.Context, items []scoring.EpisodeScore) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert episode scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := episodeScoreInsertModel{
			EpisodeID:  item.EpisodeID,
			CastawayID: item.CastawayID,
			Points:     item.Points,
			ComputedAt: item.ComputedAt,
		}
		query, args, err := qb.InsertModel("episode_scores", insertModel, `ON CONFLICT (episode_public_id, castaway_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    points = EXCLUDED.points,
    computed_at = EXCLUDED.computed_at,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert episode score query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert episode score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert episode scores tx: %w", err)
	}

	return nil
}

func (r *ScoringRepository) ListScoresByEpisode(ctx context.Context, episodeID string) ([]scoring.EpisodeScore, error) {
	query, args, err := qb.Select("*").From("episode_scores").
		Where(
			qb.Eq("episode_public_id", episodeID),
			qb.NotDeleted(),
		).
		OrderBy("castaway_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list episode scores query: %w", err)
	}

	var rows []episodeScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list episode scores: %w", err)
	}

	return episodeScoresFromRows(rows), nil
}

func (r *ScoringRepository) ListScoresBySeason(ctx context.Context, seasonID string) ([]scoring.EpisodeScore, error) {
	query, args, err := qb.Select("es.*").
		From("episode_scores es JOIN episodes e ON e.public_id = es.episode_public_id").
		Where(
			qb.Eq("e.season_public_id", seasonID),
			qb.IsNull("es.deleted_at"),
			qb.IsNull("e.deleted_at"),
		).
		OrderBy("e.number", "es.castaway_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season scores query: %w", err)
	}

	var rows []episodeScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season scores: %w", err)
	}

	return episodeScoresFromRows(rows), nil
}

func (r *ScoringRepository) UpsertPickSnapshots(ctx context.Context, items []scoring.PickSnapshot) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert pick snapshots: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := pickSnapshotInsertModel{
			LeagueID:   item.LeagueID,
			EpisodeID:  item.EpisodeID,
			UserID:     item.UserID,
			CastawayID: item.CastawayID,
			IsAuto:     item.IsAuto,
			LockedAt:   item.LockedAt,
		}
		query, args, err := qb.InsertModel("pick_snapshots", insertModel, `ON CONFLICT (league_public_id, episode_public_id, user_id) WHERE deleted_at IS NULL
DO NOTHING`)
		if err != nil {
			return fmt.Errorf("build upsert pick snapshot query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert pick snapshot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert pick snapshots tx: %w", err)
	}

	return nil
}

func (r *ScoringRepository) ListSnapshotsByLeagueAndEpisode(ctx context.Context, leagueID, episodeID string) ([]scoring.PickSnapshot, error) {
	query, args, err := qb.Select("*").From("pick_snapshots").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("episode_public_id", episodeID),
			qb.NotDeleted(),
		).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pick snapshots by episode query: %w", err)
	}

	var rows []pickSnapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pick snapshots by episode: %w", err)
	}

	return pickSnapshotsFromRows(rows), nil
}

func (r *ScoringRepository) ListSnapshotsByLeague(ctx context.Context, leagueID string) ([]scoring.PickSnapshot, error) {
	query, args, err := qb.Select("*").From("pick_snapshots").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.NotDeleted(),
		).
		OrderBy("episode_public_id", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pick snapshots by league query: %w", err)
	}

	var rows []pickSnapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pick snapshots by league: %w", err)
	}

	return pickSnapshotsFromRows(rows), nil
}

func (r *ScoringRepository) UpsertEpisodeLock(ctx context.Context, item scoring.EpisodeLock) error {
	insertModel := episodeLockInsertModel{
		LeagueID:  item.LeagueID,
		EpisodeID: item.EpisodeID,
		LockedAt:  item.LockedAt,
	}
	query, args, err := qb.InsertModel("episode_locks", insertModel, `ON CONFLICT (league_public_id, episode_public_id) WHERE deleted_at IS NULL
DO NOTHING`)
	if err != nil {
		return fmt.Errorf("build upsert episode lock query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert episode lock: %w", err)
	}

	return nil
}

func (r *ScoringRepository) GetEpisodeLock(ctx context.Context, leagueID, episodeID string) (scoring.EpisodeLock, bool, error) {
	query, args, err := qb.Select("*").From("episode_locks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("episode_public_id", episodeID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return scoring.EpisodeLock{}, false, fmt.Errorf("build get episode lock query: %w", err)
	}
	var row episodeLockTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.EpisodeLock{}, false, nil
		}
		return scoring.EpisodeLock{}, false, fmt.Errorf("get episode lock: %w", err)
	}

	return scoring.EpisodeLock{
		LeagueID:  row.LeagueID,
		EpisodeID: row.EpisodeID,
		LockedAt:  row.LockedAt,
	}, true, nil
}

func (r *ScoringRepository) UpsertUserEpisodePoints(ctx context.Context, items []scoring.UserEpisodePoints) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert user episode points: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := userEpisodePointsInsertModel{
			LeagueID:  item.LeagueID,
			EpisodeID: item.EpisodeID,
			UserID:    item.UserID,
			Points:    item.Points,
		}
		query, args, err := qb.InsertModel("user_episode_points", insertModel, `ON CONFLICT (league_public_id, episode_public_id, user_id) WHERE deleted_at IS NULL
DO UPDATE SET
    points = EXCLUDED.points,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert user episode points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert user episode points: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert user episode points tx: %w", err)
	}

	return nil
}

func (r *ScoringRepository) ListUserEpisodePointsByLeague(ctx context.Context, leagueID string) ([]scoring.UserEpisodePoints, error) {
	query, args, err := qb.Select("*").From("user_episode_points").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.NotDeleted(),
		).
		OrderBy("episode_public_id", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list user episode points query: %w", err)
	}

	var rows []userEpisodePointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list user episode points: %w", err)
	}

	out := make([]scoring.UserEpisodePoints, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.UserEpisodePoints{
			LeagueID:  row.LeagueID,
			EpisodeID: row.EpisodeID,
			UserID:    row.UserID,
			Points:    row.Points,
		})
	}
	return out, nil
}

func (r *ScoringRepository) ReplaceStandings(ctx context.Context, leagueID string, items []scoring.Standing) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace league standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.Update("league_standings").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.NotDeleted(),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear league standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("clear league standings: %w", err)
	}

	for _, item := range items {
		insertModel := leagueStandingInsertModel{
			LeagueID:    leagueID,
			UserID:      item.UserID,
			TotalPoints: item.TotalPoints,
			Rank:        item.Rank,
			ComputedAt:  item.ComputedAt,
		}
		query, args, err := qb.InsertModel("league_standings", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert league standing query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert league standing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace league standings tx: %w", err)
	}

	return nil
}

func (r *ScoringRepository) ListStandingsByLeague(ctx context.Context, leagueID string) ([]scoring.Standing, error) {
	query, args, err := qb.Select("*").From("league_standings").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.NotDeleted(),
		).
		OrderBy("rank", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league standings query: %w", err)
	}

	var rows []leagueStandingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list league standings: %w", err)
	}

	out := make([]scoring.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.Standing{
			LeagueID:    row.LeagueID,
			UserID:      row.UserID,
			TotalPoints: row.TotalPoints,
			Rank:        row.Rank,
			ComputedAt:  row.ComputedAt,
		})
	}
	return out, nil
}

func episodeScoresFromRows(rows []episodeScoreTableModel) []scoring.EpisodeScore {
	out := make([]scoring.EpisodeScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.EpisodeScore{
			EpisodeID:  row.EpisodeID,
			CastawayID: row.CastawayID,
			Points:     row.Points,
			ComputedAt: row.ComputedAt,
		})
	}
	return out
}

func pickSnapshotsFromRows(rows []pickSnapshotTableModel) []scoring.PickSnapshot {
	out := make([]scoring.PickSnapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.PickSnapshot{
			LeagueID:   row.LeagueID,
			EpisodeID:  row.EpisodeID,
			UserID:     row.UserID,
			CastawayID: row.CastawayID,
			IsAuto:     row.IsAuto,
			LockedAt:   row.LockedAt,
		})
	}
	return out
}
