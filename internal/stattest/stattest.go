// Package stattest provides the statistical tests behind drift detection:
// a two-sample Kolmogorov-Smirnov test, a chi-square goodness-of-fit test,
// and quantile bin edges for PSI.
package stattest

import (
	"fmt"
	"math"
	"sort"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ksSeriesTerms bounds the Kolmogorov distribution series expansion. The
// terms decay as exp(-2k^2), so this is far past float64 precision.
const ksSeriesTerms = 100

// KolmogorovSmirnov runs the two-sample KS test and returns the D statistic
// with its asymptotic two-sided p-value.
func KolmogorovSmirnov(x, y []float64) (statistic, pValue float64, err error) {
	if len(x) == 0 || len(y) == 0 {
		return 0, 0, fmt.Errorf("%w: KS test needs non-empty samples (got %d and %d)",
			schema.ErrInsufficientData, len(x), len(y))
	}

	xs := sortedCopy(x)
	ys := sortedCopy(y)

	// Walk both sorted samples, tracking the max gap between empirical CDFs.
	var d float64
	i, j := 0, 0
	n, m := len(xs), len(ys)
	for i < n && j < m {
		v := math.Min(xs[i], ys[j])
		for i < n && xs[i] <= v {
			i++
		}
		for j < m && ys[j] <= v {
			j++
		}
		gap := math.Abs(float64(i)/float64(n) - float64(j)/float64(m))
		if gap > d {
			d = gap
		}
	}

	return d, ksPValue(d, n, m), nil
}

// ksPValue approximates the two-sided p-value for the two-sample KS
// statistic using the Kolmogorov distribution with the standard
// small-sample correction.
func ksPValue(d float64, n, m int) float64 {
	if d <= 0 {
		return 1
	}
	en := math.Sqrt(float64(n) * float64(m) / float64(n+m))
	lambda := (en + 0.12 + 0.11/en) * d

	sum := 0.0
	sign := 1.0
	for k := 1; k <= ksSeriesTerms; k++ {
		term := sign * math.Exp(-2*float64(k)*float64(k)*lambda*lambda)
		sum += term
		sign = -sign
		if math.Abs(term) < 1e-12 {
			break
		}
	}
	p := 2 * sum
	return math.Max(0, math.Min(1, p))
}

// ChiSquareGOF runs a goodness-of-fit test of observed counts against
// expected counts. Expected counts are renormalized to the observed total,
// degrees of freedom are len-1.
func ChiSquareGOF(observed, expected []float64) (statistic, pValue float64, err error) {
	if len(observed) != len(expected) {
		return 0, 0, fmt.Errorf("%w: observed and expected lengths differ (%d vs %d)",
			schema.ErrInputValidation, len(observed), len(expected))
	}
	if len(observed) < 2 {
		return 0, 0, fmt.Errorf("%w: chi-square needs at least 2 categories (got %d)",
			schema.ErrInsufficientData, len(observed))
	}

	var obsTotal, expTotal float64
	for i := range observed {
		obsTotal += observed[i]
		expTotal += expected[i]
	}
	if obsTotal == 0 || expTotal == 0 {
		return 0, 0, fmt.Errorf("%w: chi-square needs non-zero counts", schema.ErrInsufficientData)
	}

	scale := obsTotal / expTotal
	var chi float64
	for i := range observed {
		exp := expected[i] * scale
		if exp == 0 {
			return 0, 0, fmt.Errorf("%w: zero expected count in category %d", schema.ErrInsufficientData, i)
		}
		diff := observed[i] - exp
		chi += diff * diff / exp
	}

	df := float64(len(observed) - 1)
	dist := distuv.ChiSquared{K: df}
	p := 1 - dist.CDF(chi)
	return chi, math.Max(0, math.Min(1, p)), nil
}

// QuantileEdges returns bins+1 equal-frequency bin edges over values,
// deduplicated so constant or heavily tied samples do not produce
// zero-width bins. Fewer than 2 distinct edges means the sample cannot
// be binned.
func QuantileEdges(values []float64, bins int) []float64 {
	if len(values) == 0 || bins < 1 {
		return nil
	}
	sorted := sortedCopy(values)

	edges := make([]float64, 0, bins+1)
	for i := 0; i <= bins; i++ {
		q := float64(i) / float64(bins)
		edges = append(edges, stat.Quantile(q, stat.LinInterp, sorted, nil))
	}

	// Drop duplicate edges from ties.
	dedup := edges[:1]
	for _, e := range edges[1:] {
		if e > dedup[len(dedup)-1] {
			dedup = append(dedup, e)
		}
	}
	if len(dedup) < 2 {
		return nil
	}
	return dedup
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}
