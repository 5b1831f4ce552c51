package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// IntersectionalAnalyzer extends group fairness to combinations of
// sensitive attributes, surfacing subgroups (e.g. gender x age_group) whose
// selection rate lags the best subgroup of the same combination.
type IntersectionalAnalyzer struct {
	cfg   *contract.Config
	attrs []string
}

// NewIntersectionalAnalyzer creates an analyzer over the given sensitive
// attributes, honoring cfg.MaxCombinationSize.
func NewIntersectionalAnalyzer(cfg *contract.Config, sensitiveAttrs []string) (*IntersectionalAnalyzer, error) {
	if cfg == nil {
		cfg = contract.DefaultConfig()
	}
	if len(sensitiveAttrs) == 0 {
		return nil, fmt.Errorf("%w: at least one sensitive attribute is required", schema.ErrInputValidation)
	}
	return &IntersectionalAnalyzer{cfg: cfg, attrs: append([]string(nil), sensitiveAttrs...)}, nil
}

// Evaluate groups predictions by every attribute combination and ranks the
// surviving subgroups ascending by disparity ratio. minGroupSize <= 0
// selects the configured default. With MaxCombinationSize of 1 the
// analysis degenerates to single attributes and reproduces BiasAnalyzer's
// selection rates.
func (a *IntersectionalAnalyzer) Evaluate(yPred []int, sensitive *schema.Frame, minGroupSize int) (*schema.Leaderboard, error) {
	if len(yPred) == 0 {
		return nil, fmt.Errorf("%w: predictions are empty", schema.ErrInputValidation)
	}
	if sensitive.Len() == 0 {
		return nil, fmt.Errorf("%w: sensitive frame is empty", schema.ErrInputValidation)
	}
	if sensitive.Len() != len(yPred) {
		return nil, fmt.Errorf("%w: %d predictions but %d sensitive rows",
			schema.ErrInputValidation, len(yPred), sensitive.Len())
	}
	if minGroupSize <= 0 {
		minGroupSize = a.cfg.MinGroupSize
	}

	maxSize := a.cfg.MaxCombinationSize
	if maxSize > len(a.attrs) {
		maxSize = len(a.attrs)
	}
	loSize := 2
	if maxSize < loSize {
		loSize = maxSize
	}

	board := &schema.Leaderboard{}
	violatedCombos := 0
	for size := loSize; size <= maxSize; size++ {
		for _, combo := range combinations(a.attrs, size) {
			entries, ok := a.evaluateCombination(combo, yPred, sensitive, minGroupSize)
			if !ok {
				continue
			}
			board.Combinations++
			for _, e := range entries {
				if e.Violation {
					violatedCombos++
					break
				}
			}
			board.Entries = append(board.Entries, entries...)
		}
	}

	sort.SliceStable(board.Entries, func(i, j int) bool {
		if board.Entries[i].DisparityRatio != board.Entries[j].DisparityRatio {
			return board.Entries[i].DisparityRatio < board.Entries[j].DisparityRatio
		}
		return board.Entries[i].Key < board.Entries[j].Key
	})

	board.Score = compositeScore(violatedCombos, a.cfg.ScorePenalty)
	return board, nil
}

// evaluateCombination groups rows by the joined attribute values and keeps
// groups meeting the size floor. Returns false when an attribute is absent
// from the frame or no group survives.
func (a *IntersectionalAnalyzer) evaluateCombination(combo []string, yPred []int, sensitive *schema.Frame, minGroupSize int) ([]schema.IntersectionalGroup, bool) {
	cols := make([][]string, len(combo))
	for i, attr := range combo {
		labels, ok := sensitive.Labels(attr)
		if !ok {
			return nil, false
		}
		cols[i] = labels
	}

	type groupAgg struct {
		positives int
		total     int
		values    []string
	}
	groups := make(map[string]*groupAgg)
	for row := range yPred {
		values := make([]string, len(cols))
		for i := range cols {
			values[i] = cols[i][row]
		}
		key := strings.Join(values, "_")
		g := groups[key]
		if g == nil {
			g = &groupAgg{values: values}
			groups[key] = g
		}
		g.total++
		if yPred[row] == 1 {
			g.positives++
		}
	}

	var kept []string
	for key, g := range groups {
		if g.total >= minGroupSize {
			kept = append(kept, key)
		}
	}
	if len(kept) == 0 {
		return nil, false
	}
	sort.Strings(kept)

	maxRate := 0.0
	for _, key := range kept {
		g := groups[key]
		rate := float64(g.positives) / float64(g.total)
		if rate > maxRate {
			maxRate = rate
		}
	}

	entries := make([]schema.IntersectionalGroup, 0, len(kept))
	for _, key := range kept {
		g := groups[key]
		rate := float64(g.positives) / float64(g.total)
		ratio := 1.0
		if maxRate > 0 {
			ratio = rate / maxRate
		}
		entries = append(entries, schema.IntersectionalGroup{
			Combination:    append([]string(nil), combo...),
			Key:            key,
			Values:         g.values,
			SelectionRate:  rate,
			Count:          g.total,
			DisparityRatio: ratio,
			Violation:      ratio < a.cfg.Thresholds.DisparateImpact,
		})
	}
	return entries, true
}

// combinations enumerates size-k subsets of attrs, preserving the
// configured attribute order within each combination.
func combinations(attrs []string, k int) [][]string {
	if k <= 0 || k > len(attrs) {
		return nil
	}
	var out [][]string
	combo := make([]string, 0, k)
	var walk func(start int)
	walk = func(start int) {
		if len(combo) == k {
			out = append(out, append([]string(nil), combo...))
			return
		}
		for i := start; i <= len(attrs)-(k-len(combo)); i++ {
			combo = append(combo, attrs[i])
			walk(i + 1)
			combo = combo[:len(combo)-1]
		}
	}
	walk(0)
	return out
}
