package postgres

import "time"

type draftRankingTableModel struct {
	ID         int64      `db:"id"`
	LeagueID   string     `db:"league_public_id"`
	UserID     string     `db:"user_id"`
	CastawayID string     `db:"castaway_public_id"`
	Rank       int        `db:"rank"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type draftRankingInsertModel struct {
	LeagueID   string `db:"league_public_id"`
	UserID     string `db:"user_id"`
	CastawayID string `db:"castaway_public_id"`
	Rank       int    `db:"rank"`
}
