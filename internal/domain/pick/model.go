package pick

import "time"

// WeeklyPick is the single starter a member fields from their roster for one
// episode. IsAuto marks picks filled in at lock time because the member never
// chose.
type WeeklyPick struct {
	ID         string
	LeagueID   string
	UserID     string
	EpisodeID  string
	CastawayID string
	IsAuto     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
