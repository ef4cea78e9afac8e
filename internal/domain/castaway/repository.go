package castaway

import "context"

// Repository exposes castaway read operations.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Castaway, error)
	GetByID(ctx context.Context, castawayID string) (Castaway, bool, error)
	UpsertCastaways(ctx context.Context, items []Castaway) error
}
