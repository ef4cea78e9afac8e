package draft

import "testing"

func TestSnakeOrderReversesEvenRounds(t *testing.T) {
	order := SnakeOrder([]string{"a", "b", "c"}, 2)

	want := []string{"a", "b", "c", "c", "b", "a"}
	if len(order) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestRunAssignsExactlyRoundsPerMember(t *testing.T) {
	members := []string{"u1", "u2", "u3"}
	fallback := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"}

	assignments, err := Run(members, 2, nil, fallback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := map[string]int{}
	seen := map[string]bool{}
	for _, a := range assignments {
		counts[a.UserID]++
		if seen[a.CastawayID] {
			t.Fatalf("castaway %s assigned twice", a.CastawayID)
		}
		seen[a.CastawayID] = true
	}
	for _, id := range members {
		if counts[id] != 2 {
			t.Fatalf("member %s drafted %d castaways, expected 2", id, counts[id])
		}
	}
}

func TestRunHonoursPreferences(t *testing.T) {
	members := []string{"u1", "u2"}
	fallback := []string{"c1", "c2", "c3", "c4"}
	preferences := map[string][]string{
		"u1": {"c3", "c1"},
		"u2": {"c3", "c4"},
	}

	assignments, err := Run(members, 2, preferences, fallback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// u1 picks first and takes its top choice c3, u2 falls through to c4.
	if assignments[0].UserID != "u1" || assignments[0].CastawayID != "c3" {
		t.Fatalf("pick 1: expected u1/c3, got %s/%s", assignments[0].UserID, assignments[0].CastawayID)
	}
	if assignments[1].UserID != "u2" || assignments[1].CastawayID != "c4" {
		t.Fatalf("pick 2: expected u2/c4, got %s/%s", assignments[1].UserID, assignments[1].CastawayID)
	}
	// Snake reversal puts u2 on pick 3.
	if assignments[2].UserID != "u2" {
		t.Fatalf("pick 3: expected u2, got %s", assignments[2].UserID)
	}
}

func TestRunRejectsShortPool(t *testing.T) {
	if _, err := Run([]string{"u1", "u2"}, 2, nil, []string{"c1", "c2", "c3"}); err == nil {
		t.Fatal("expected error for undersized castaway pool")
	}
}
