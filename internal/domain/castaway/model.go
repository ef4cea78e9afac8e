package castaway

import "strings"

const (
	StatusActive     = "ACTIVE"
	StatusEliminated = "ELIMINATED"
	StatusWinner     = "WINNER"
)

// Castaway is one contestant of a season, the draftable fantasy asset.
type Castaway struct {
	ID         string
	SeasonID   string
	Name       string
	Tribe      string
	Occupation string
	Status     string
	// EliminatedEpisode holds the episode number the castaway was voted out in,
	// zero while still in the game.
	EliminatedEpisode int
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusActive
	}
	return status
}

// InGameForEpisode reports whether the castaway was still playing when the
// given episode aired. Eliminations take effect for episodes after the boot.
func (c Castaway) InGameForEpisode(episodeNumber int) bool {
	if NormalizeStatus(c.Status) != StatusEliminated {
		return true
	}
	if c.EliminatedEpisode <= 0 {
		return true
	}
	return episodeNumber <= c.EliminatedEpisode
}
