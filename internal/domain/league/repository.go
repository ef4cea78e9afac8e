package league

import "context"

// Repository exposes league and membership operations.
type Repository interface {
	Create(ctx context.Context, item League) error
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (League, bool, error)
	ListByUser(ctx context.Context, userID string) ([]League, error)
	ListBySeason(ctx context.Context, seasonID string) ([]League, error)
	ListIDsBySeason(ctx context.Context, seasonID string) ([]string, error)
	SetDraftStatus(ctx context.Context, leagueID, status string) error

	AddMember(ctx context.Context, item Membership) error
	GetMember(ctx context.Context, leagueID, userID string) (Membership, bool, error)
	ListMembers(ctx context.Context, leagueID string) ([]Membership, error)
	SetMemberPaid(ctx context.Context, leagueID, userID string, paid bool) error
}
