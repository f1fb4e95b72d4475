package learner

import "testing"

func TestComputeRankTierBounds(t *testing.T) {
	cases := []struct {
		xp      int
		name    string
		percent int
	}{
		{0, "Beginner", 0},
		{150, "Beginner", 50},
		{299, "Beginner", 99},
		{300, "Intermediate", 0},
		{500, "Intermediate", 50},
		{699, "Intermediate", 99},
		{700, "Advanced", 0},
		{950, "Advanced", 50},
		{1199, "Advanced", 99},
		{1200, "Pro", 100},
		{50000, "Pro", 100},
	}
	for _, tc := range cases {
		r := ComputeRank(tc.xp)
		if r.Name != tc.name {
			t.Fatalf("xp=%d: expected rank %q, got %q", tc.xp, tc.name, r.Name)
		}
		if r.PercentToNext != tc.percent {
			t.Fatalf("xp=%d: expected percent %d, got %d", tc.xp, tc.percent, r.PercentToNext)
		}
	}
}

func TestComputeRankTopTierHasNoCeiling(t *testing.T) {
	r := ComputeRank(1200)
	if !r.Top {
		t.Fatalf("expected top tier at 1200 xp")
	}
	if r.Ceiling != 0 {
		t.Fatalf("expected zero ceiling on top tier, got %d", r.Ceiling)
	}
}

func TestComputeRankMonotonic(t *testing.T) {
	order := map[string]int{"Beginner": 0, "Intermediate": 1, "Advanced": 2, "Pro": 3}
	prev := -1
	for xp := 0; xp <= 2000; xp += 7 {
		r := ComputeRank(xp)
		idx, ok := order[r.Name]
		if !ok {
			t.Fatalf("xp=%d: unknown tier %q", xp, r.Name)
		}
		if idx < prev {
			t.Fatalf("xp=%d: tier regressed from %d to %d", xp, prev, idx)
		}
		prev = idx
	}
}

func TestComputeRankNegativeTreatedAsZero(t *testing.T) {
	r := ComputeRank(-10)
	if r.Name != "Beginner" || r.PercentToNext != 0 {
		t.Fatalf("expected Beginner at 0%%, got %+v", r)
	}
}
