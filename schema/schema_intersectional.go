package schema

// IntersectionalGroup is one subgroup defined by a combination of sensitive
// attribute values, e.g. gender=Female x age_group=50+.
type IntersectionalGroup struct {
	Combination    []string `json:"combination"` // Attribute names, configured order
	Key            string   `json:"key"`         // Attribute values joined with "_"
	Values         []string `json:"values"`
	SelectionRate  float64  `json:"selection_rate"`
	Count          int      `json:"count"`
	DisparityRatio float64  `json:"disparity_ratio"` // Rate / best rate within the combination
	Violation      bool     `json:"violation"`
}

// Leaderboard ranks every surviving intersectional group ascending by
// disparity ratio, so the most disadvantaged groups come first.
type Leaderboard struct {
	Entries      []IntersectionalGroup `json:"entries"`
	Combinations int                   `json:"combinations"` // Attribute combinations evaluated
	Score        int                   `json:"score"`
}

// WorstGroups returns up to n entries from the top of the leaderboard.
func (l *Leaderboard) WorstGroups(n int) []IntersectionalGroup {
	if n > len(l.Entries) {
		n = len(l.Entries)
	}
	out := make([]IntersectionalGroup, n)
	copy(out, l.Entries[:n])
	return out
}

// Violations returns the number of entries flagged as violations.
func (l *Leaderboard) Violations() int {
	n := 0
	for _, e := range l.Entries {
		if e.Violation {
			n++
		}
	}
	return n
}
