package postgres

import "time"

type seasonTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	Number    int        `db:"number"`
	IsActive  bool       `db:"is_active"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type episodeTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	SeasonID    string     `db:"season_public_id"`
	Number      int        `db:"number"`
	Title       string     `db:"title"`
	AirsAt      time.Time  `db:"airs_at"`
	PicksLockAt time.Time  `db:"picks_lock_at"`
	IsScored    bool       `db:"is_scored"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}
