package postgres

import (
	"database/sql"
	"time"
)

type castawayTableModel struct {
	ID                int64         `db:"id"`
	PublicID          string        `db:"public_id"`
	SeasonID          string        `db:"season_public_id"`
	Name              string        `db:"name"`
	Tribe             string        `db:"tribe"`
	Occupation        string        `db:"occupation"`
	Status            string        `db:"status"`
	EliminatedEpisode sql.NullInt64 `db:"eliminated_episode"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
	DeletedAt         *time.Time    `db:"deleted_at"`
}

type castawayInsertModel struct {
	PublicID          string        `db:"public_id"`
	SeasonID          string        `db:"season_public_id"`
	Name              string        `db:"name"`
	Tribe             string        `db:"tribe"`
	Occupation        string        `db:"occupation"`
	Status            string        `db:"status"`
	EliminatedEpisode sql.NullInt64 `db:"eliminated_episode"`
}
