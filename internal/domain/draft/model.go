package draft

import "time"

// Ranking is one member's ordered wishlist over the season's castaways,
// submitted before the draft runs. Rank 1 is the most wanted.
type Ranking struct {
	LeagueID   string
	UserID     string
	CastawayID string
	Rank       int
	UpdatedAt  time.Time
}

// Assignment is the draft output for a single pick slot.
type Assignment struct {
	UserID     string
	CastawayID string
	Round      int
	Pick       int
}
