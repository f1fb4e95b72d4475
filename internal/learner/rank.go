package learner

// Rank describes the tier an XP total falls into. Top tiers have no ceiling;
// PercentToNext is pinned at 100 for them.
type Rank struct {
	Name          string
	Floor         int
	Ceiling       int
	Top           bool
	PercentToNext int
}

type tier struct {
	name  string
	floor int
}

// Ordered ascending by floor. ComputeRank picks the highest tier whose floor
// is <= xp, so the same total maps to the same rank at every call site.
var tiers = []tier{
	{name: "Beginner", floor: 0},
	{name: "Intermediate", floor: 300},
	{name: "Advanced", floor: 700},
	{name: "Pro", floor: 1200},
}

func ComputeRank(xp int) Rank {
	if xp < 0 {
		xp = 0
	}
	idx := 0
	for i, t := range tiers {
		if xp >= t.floor {
			idx = i
		}
	}
	r := Rank{Name: tiers[idx].name, Floor: tiers[idx].floor}
	if idx == len(tiers)-1 {
		r.Top = true
		r.PercentToNext = 100
		return r
	}
	r.Ceiling = tiers[idx+1].floor
	span := r.Ceiling - r.Floor
	r.PercentToNext = clampPercent(100 * (xp - r.Floor) / span)
	return r
}
