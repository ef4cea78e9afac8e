package memory

import (
	"context"
	"sync"

	"github.com/realitygames/fantasy-league/internal/domain/league"
)

type LeagueRepository struct {
	mu      sync.RWMutex
	items   map[string]league.League
	members map[string][]league.Membership
	orders  []string
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	r := &LeagueRepository{
		items:   make(map[string]league.League, len(leagues)),
		members: make(map[string][]league.Membership),
	}
	for _, l := range leagues {
		r.items[l.ID] = l
		r.orders = append(r.orders, l.ID)
	}
	return r
}

func (r *LeagueRepository) Create(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = item

	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return l, true, nil
}

func (r *LeagueRepository) GetByInviteCode(_ context.Context, inviteCode string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		if l := r.items[id]; l.InviteCode == inviteCode {
			return l, true, nil
		}
	}

	return league.League{}, false, nil
}

func (r *LeagueRepository) ListByUser(_ context.Context, userID string) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []league.League
	for _, id := range r.orders {
		for _, m := range r.members[id] {
			if m.UserID == userID {
				out = append(out, r.items[id])
				break
			}
		}
	}

	return out, nil
}

func (r *LeagueRepository) ListBySeason(_ context.Context, seasonID string) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []league.League
	for _, id := range r.orders {
		if l := r.items[id]; l.SeasonID == seasonID {
			out = append(out, l)
		}
	}

	return out, nil
}

func (r *LeagueRepository) ListIDsBySeason(_ context.Context, seasonID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, id := range r.orders {
		if l := r.items[id]; l.SeasonID == seasonID {
			out = append(out, id)
		}
	}

	return out, nil
}

func (r *LeagueRepository) SetDraftStatus(_ context.Context, leagueID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.items[leagueID]
	if !ok {
		return nil
	}
	l.DraftStatus = status
	r.items[leagueID] = l

	return nil
}

func (r *LeagueRepository) AddMember(_ context.Context, item league.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.members[item.LeagueID] = append(r.members[item.LeagueID], item)
	return nil
}

func (r *LeagueRepository) GetMember(_ context.Context, leagueID, userID string) (league.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members[leagueID] {
		if m.UserID == userID {
			return m, true, nil
		}
	}

	return league.Membership{}, false, nil
}

func (r *LeagueRepository) ListMembers(_ context.Context, leagueID string) ([]league.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]league.Membership(nil), r.members[leagueID]...), nil
}

func (r *LeagueRepository) SetMemberPaid(_ context.Context, leagueID, userID string, paid bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.members[leagueID]
	for i, m := range members {
		if m.UserID == userID {
			members[i].IsPaid = paid
			break
		}
	}

	return nil
}
