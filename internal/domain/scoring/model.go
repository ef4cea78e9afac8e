package scoring

import "time"

// Rule maps an in-show event code to the points it awards. Rules belong to a
// season so scoring can change between seasons.
type Rule struct {
	ID        string
	SeasonID  string
	Code      string
	Label     string
	Points    int
	IsEnabled bool
}

// EpisodeEvent is one observed in-show occurrence: a castaway did the thing a
// rule code names, Count times, in one episode.
type EpisodeEvent struct {
	ID         string
	EpisodeID  string
	CastawayID string
	RuleCode   string
	Count      int
}

// EpisodeScore is the computed total for one castaway in one episode.
type EpisodeScore struct {
	EpisodeID  string
	CastawayID string
	Points     int
	ComputedAt time.Time
}

// PickSnapshot freezes a member's starter at episode lock so later roster or
// pick edits cannot rewrite history.
type PickSnapshot struct {
	LeagueID   string
	EpisodeID  string
	UserID     string
	CastawayID string
	IsAuto     bool
	LockedAt   time.Time
}

// EpisodeLock records that an episode's picks were frozen for a league.
type EpisodeLock struct {
	LeagueID  string
	EpisodeID string
	LockedAt  time.Time
}

// UserEpisodePoints is the points one member earned in one episode, derived
// from their snapshotted pick.
type UserEpisodePoints struct {
	LeagueID  string
	EpisodeID string
	UserID    string
	Points    int
}

// Standing is one row of a league table.
type Standing struct {
	LeagueID    string
	UserID      string
	TotalPoints int
	Rank        int
	ComputedAt  time.Time
}
