package draft

import "fmt"

// SnakeOrder returns the pick sequence of user IDs for a snake draft.
// Members must be given in join order. Odd rounds run forward, even rounds
// run in reverse, so the member picking last in one round picks first in the
// next.
func SnakeOrder(memberIDs []string, rounds int) []string {
	order := make([]string, 0, len(memberIDs)*rounds)
	for round := 1; round <= rounds; round++ {
		if round%2 == 1 {
			order = append(order, memberIDs...)
			continue
		}
		for i := len(memberIDs) - 1; i >= 0; i-- {
			order = append(order, memberIDs[i])
		}
	}
	return order
}

// Run executes a snake draft and assigns exactly `rounds` castaways to every
// member. Each slot takes the highest preference the member ranked that is
// still available; members with no remaining ranked castaway fall back to
// `fallback`, the season's castaway list order.
func Run(memberIDs []string, rounds int, preferences map[string][]string, fallback []string) ([]Assignment, error) {
	if len(memberIDs) == 0 {
		return nil, fmt.Errorf("draft requires at least one member")
	}
	if rounds < 1 {
		return nil, fmt.Errorf("draft requires at least one round")
	}
	if need := len(memberIDs) * rounds; len(fallback) < need {
		return nil, fmt.Errorf("draft needs %d castaways, season has %d", need, len(fallback))
	}

	taken := make(map[string]bool, len(memberIDs)*rounds)
	assignments := make([]Assignment, 0, len(memberIDs)*rounds)

	order := SnakeOrder(memberIDs, rounds)
	for i, userID := range order {
		castawayID := nextAvailable(preferences[userID], fallback, taken)
		if castawayID == "" {
			return nil, fmt.Errorf("draft ran out of castaways at pick %d", i+1)
		}
		taken[castawayID] = true
		assignments = append(assignments, Assignment{
			UserID:     userID,
			CastawayID: castawayID,
			Round:      i/len(memberIDs) + 1,
			Pick:       i + 1,
		})
	}

	return assignments, nil
}

func nextAvailable(preferred, fallback []string, taken map[string]bool) string {
	for _, id := range preferred {
		if !taken[id] {
			return id
		}
	}
	for _, id := range fallback {
		if !taken[id] {
			return id
		}
	}
	return ""
}
