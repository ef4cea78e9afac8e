package user

import "context"

// Repository exposes user profile operations.
type Repository interface {
	GetByID(ctx context.Context, userID string) (User, bool, error)
	Upsert(ctx context.Context, item User) error
	ListByIDs(ctx context.Context, userIDs []string) ([]User, error)
}
