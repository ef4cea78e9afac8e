package postgres

import "time"

type rosterEntryTableModel struct {
	ID         int64      `db:"id"`
	LeagueID   string     `db:"league_public_id"`
	UserID     string     `db:"user_id"`
	CastawayID string     `db:"castaway_public_id"`
	DraftRound int        `db:"draft_round"`
	DraftPick  int        `db:"draft_pick"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type rosterEntryInsertModel struct {
	LeagueID   string `db:"league_public_id"`
	UserID     string `db:"user_id"`
	CastawayID string `db:"castaway_public_id"`
	DraftRound int    `db:"draft_round"`
	DraftPick  int    `db:"draft_pick"`
}
