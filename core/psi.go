package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/stattest"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// psiEpsilon floors bin proportions so empty bins cannot produce infinite
// PSI terms.
const psiEpsilon = 1e-4

// populationStabilityIndex measures distribution shift of current against
// baseline over equal-frequency baseline bins. Current values outside the
// baseline range are clipped into the edge bins so every row counts.
func populationStabilityIndex(baseline, current []float64, bins int) (float64, error) {
	if len(current) == 0 {
		return 0, fmt.Errorf("%w: current sample is empty", schema.ErrInsufficientData)
	}
	edges := stattest.QuantileEdges(baseline, bins)
	if edges == nil {
		return 0, fmt.Errorf("%w: baseline sample cannot be binned", schema.ErrInsufficientData)
	}

	basePct := binProportions(baseline, edges)
	curPct := binProportions(current, edges)

	var psi float64
	for i := range basePct {
		b := math.Max(basePct[i], psiEpsilon)
		c := math.Max(curPct[i], psiEpsilon)
		psi += (c - b) * math.Log(c/b)
	}
	return psi, nil
}

// binProportions counts values per bin and normalizes to proportions.
func binProportions(values []float64, edges []float64) []float64 {
	counts := make([]float64, len(edges)-1)
	for _, v := range values {
		counts[binIndex(v, edges)]++
	}
	total := float64(len(values))
	for i := range counts {
		counts[i] /= total
	}
	return counts
}

// binIndex places v into a bin, clipping out-of-range values to the
// nearest edge bin.
func binIndex(v float64, edges []float64) int {
	if v <= edges[0] {
		return 0
	}
	if v >= edges[len(edges)-1] {
		return len(edges) - 2
	}
	// Smallest i with edges[i] >= v; v falls in bin i-1.
	i := sort.SearchFloat64s(edges, v)
	return i - 1
}
