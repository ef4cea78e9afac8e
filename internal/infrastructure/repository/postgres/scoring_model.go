package postgres

import "time"

type scoringRuleTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	SeasonID  string     `db:"season_public_id"`
	Code      string     `db:"code"`
	Label     string     `db:"label"`
	Points    int        `db:"points"`
	IsEnabled bool       `db:"is_enabled"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type scoringRuleInsertModel struct {
	PublicID  string `db:"public_id"`
	SeasonID  string `db:"season_public_id"`
	Code      string `db:"code"`
	Label     string `db:"label"`
	Points    int    `db:"points"`
	IsEnabled bool   `db:"is_enabled"`
}

type episodeEventTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	EpisodeID  string     `db:"episode_public_id"`
	CastawayID string     `db:"castaway_public_id"`
	RuleCode   string     `db:"rule_code"`
	EventCount int        `db:"event_count"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type episodeEventInsertModel struct {
	PublicID   string `db:"public_id"`
	EpisodeID  string `db:"episode_public_id"`
	CastawayID string `db:"castaway_public_id"`
	RuleCode   string `db:"rule_code"`
	EventCount int    `db:"event_count"`
}

type episodeScoreTableModel struct {
	ID         int64      `db:"id"`
	EpisodeID  string     `db:"episode_public_id"`
	CastawayID string     `db:"castaway_public_id"`
	Points     int        `db:"points"`
	ComputedAt time.Time  `db:"computed_at"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type episodeScoreInsertModel struct {
	EpisodeID  string    `db:"episode_public_id"`
	CastawayID string    `db:"castaway_public_id"`
	Points     int       `db:"points"`
	ComputedAt time.Time `db:"computed_at"`
}

type pickSnapshotTableModel struct {
	ID         int64      `db:"id"`
	LeagueID   string     `db:"league_public_id"`
	EpisodeID  string     `db:"episode_public_id"`
	UserID     string     `db:"user_id"`
	CastawayID string     `db:"castaway_public_id"`
	IsAuto     bool       `db:"is_auto"`
	LockedAt   time.Time  `db:"locked_at"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type pickSnapshotInsertModel struct {
	LeagueID   string    `db:"league_public_id"`
	EpisodeID  string    `db:"episode_public_id"`
	UserID     string    `db:"user_id"`
	CastawayID string    `db:"castaway_public_id"`
	IsAuto     bool      `db:"is_auto"`
	LockedAt   time.Time `db:"locked_at"`
}

type episodeLockTableModel struct {
	ID        int64      `db:"id"`
	LeagueID  string     `db:"league_public_id"`
	EpisodeID string     `db:"episode_public_id"`
	LockedAt  time.Time  `db:"locked_at"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type episodeLockInsertModel struct {
	LeagueID  string    `db:"league_public_id"`
	EpisodeID string    `db:"episode_public_id"`
	LockedAt  time.Time `db:"locked_at"`
}

type userEpisodePointsTableModel struct {
	ID        int64      `db:"id"`
	LeagueID  string     `db:"league_public_id"`
	EpisodeID string     `db:"episode_public_id"`
	UserID    string     `db:"user_id"`
	Points    int        `db:"points"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type userEpisodePointsInsertModel struct {
	LeagueID  string `db:"league_public_id"`
	EpisodeID string `db:"episode_public_id"`
	UserID    string `db:"user_id"`
	Points    int    `db:"points"`
}

type leagueStandingTableModel struct {
	ID          int64      `db:"id"`
	LeagueID    string     `db:"league_public_id"`
	UserID      string     `db:"user_id"`
	TotalPoints int        `db:"total_points"`
	Rank        int        `db:"rank"`
	ComputedAt  time.Time  `db:"computed_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type leagueStandingInsertModel struct {
	LeagueID    string    `db:"league_public_id"`
	UserID      string    `db:"user_id"`
	TotalPoints int       `db:"total_points"`
	Rank        int       `db:"rank"`
	ComputedAt  time.Time `db:"computed_at"`
}
