package league

import (
	"fmt"
	"strings"
	"time"
)

const (
	DraftStatusPending  = "PENDING"
	DraftStatusComplete = "COMPLETE"
)

const (
	// DefaultRosterSize is the number of castaways each member drafts.
	DefaultRosterSize = 2

	// DefaultMaxMembers caps a league when the creator does not choose a limit.
	DefaultMaxMembers = 12
)

// League is a private or public group of players competing over one season.
type League struct {
	ID          string
	SeasonID    string
	Name        string
	OwnerUserID string
	InviteCode  string
	IsPublic    bool
	IsPaid      bool
	EntryFeeUSD int
	MaxMembers  int
	RosterSize  int
	DraftStatus string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Membership joins a user to a league. JoinedAt ordering drives the draft order.
type Membership struct {
	LeagueID string
	UserID   string
	IsPaid   bool
	JoinedAt time.Time
}

func (l League) ValidateBasic() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if strings.TrimSpace(l.SeasonID) == "" {
		return fmt.Errorf("league season is required")
	}
	if strings.TrimSpace(l.OwnerUserID) == "" {
		return fmt.Errorf("league owner is required")
	}
	if l.MaxMembers < 2 {
		return fmt.Errorf("league max members must be at least 2")
	}
	if l.RosterSize < 1 {
		return fmt.Errorf("league roster size must be at least 1")
	}
	if l.IsPaid && l.EntryFeeUSD <= 0 {
		return fmt.Errorf("paid league requires a positive entry fee")
	}

	return nil
}

func (l League) DraftComplete() bool {
	return strings.EqualFold(l.DraftStatus, DraftStatusComplete)
}
