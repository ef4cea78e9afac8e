package season

import "time"

// Season is one aired season of the show.
type Season struct {
	ID       string
	Name     string
	Number   int
	IsActive bool
}

// Episode is one aired episode inside a season. Picks lock at PicksLockAt,
// which is at or before AirsAt.
type Episode struct {
	ID          string
	SeasonID    string
	Number      int
	Title       string
	AirsAt      time.Time
	PicksLockAt time.Time
	IsScored    bool
}

// PicksLockedAt reports whether pick submissions are closed at the given instant.
func (e Episode) PicksLockedAt(now time.Time) bool {
	if e.PicksLockAt.IsZero() {
		return false
	}
	return !now.Before(e.PicksLockAt)
}
