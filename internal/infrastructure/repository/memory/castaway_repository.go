package memory

import (
	"context"
	"sync"

	"github.com/realitygames/fantasy-league/internal/domain/castaway"
)

type CastawayRepository struct {
	mu     sync.RWMutex
	items  map[string]castaway.Castaway
	orders []string
}

func NewCastawayRepository(castaways []castaway.Castaway) *CastawayRepository {
	r := &CastawayRepository{items: make(map[string]castaway.Castaway, len(castaways))}
	for _, c := range castaways {
		r.items[c.ID] = c
		r.orders = append(r.orders, c.ID)
	}
	return r
}

func (r *CastawayRepository) ListBySeason(_ context.Context, seasonID string) ([]castaway.Castaway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]castaway.Castaway, 0, len(r.orders))
	for _, id := range r.orders {
		if c := r.items[id]; c.SeasonID == seasonID {
			out = append(out, c)
		}
	}

	return out, nil
}

func (r *CastawayRepository) GetByID(_ context.Context, castawayID string) (castaway.Castaway, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[castawayID]
	if !ok {
		return castaway.Castaway{}, false, nil
	}

	return c, true, nil
}

func (r *CastawayRepository) UpsertCastaways(_ context.Context, items []castaway.Castaway) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range items {
		if _, ok := r.items[c.ID]; !ok {
			r.orders = append(r.orders, c.ID)
		}
		c.Status = castaway.NormalizeStatus(c.Status)
		r.items[c.ID] = c
	}

	return nil
}
