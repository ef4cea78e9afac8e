package roster

import "time"

// Entry records one drafted castaway on one member's roster, with the snake
// draft position that produced it.
type Entry struct {
	LeagueID   string
	UserID     string
	CastawayID string
	DraftRound int
	DraftPick  int
	CreatedAt  time.Time
}
