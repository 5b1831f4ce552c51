package core

import (
	"fmt"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// BiasAnalyzer computes group fairness metrics over binary predictions,
// one sensitive attribute at a time.
type BiasAnalyzer struct {
	cfg   *contract.Config
	attrs []string
}

// NewBiasAnalyzer creates an analyzer for the given sensitive attributes.
func NewBiasAnalyzer(cfg *contract.Config, sensitiveAttrs []string) (*BiasAnalyzer, error) {
	if cfg == nil {
		cfg = contract.DefaultConfig()
	}
	if len(sensitiveAttrs) == 0 {
		return nil, fmt.Errorf("%w: at least one sensitive attribute is required", schema.ErrInputValidation)
	}
	return &BiasAnalyzer{cfg: cfg, attrs: append([]string(nil), sensitiveAttrs...)}, nil
}

// Evaluate computes fairness metrics per sensitive attribute. yTrue may be
// nil, in which case equalized odds and per-group accuracy are skipped.
// Attributes absent from the sensitive frame are skipped inline; the call
// fails only when no attribute yields a single group.
func (b *BiasAnalyzer) Evaluate(yPred, yTrue []int, sensitive *schema.Frame) (*schema.FairnessReport, error) {
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
	if yTrue != nil && len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("%w: %d predictions but %d true labels",
			schema.ErrInputValidation, len(yPred), len(yTrue))
	}

	report := &schema.FairnessReport{}
	groupsSeen := 0
	for _, attr := range b.attrs {
		labels, ok := sensitive.Labels(attr)
		if !ok {
			continue
		}
		af := b.evaluateAttribute(attr, yPred, yTrue, labels)
		groupsSeen += len(af.GroupCounts)
		report.Attributes = append(report.Attributes, af)
	}
	if groupsSeen == 0 {
		return nil, fmt.Errorf("%w: no sensitive attribute produced any group", schema.ErrInputValidation)
	}

	report.Score = compositeScore(report.FailedMetrics(), b.cfg.ScorePenalty)
	return report, nil
}

// evaluateAttribute computes all metrics for one sensitive attribute.
func (b *BiasAnalyzer) evaluateAttribute(attr string, yPred, yTrue []int, groups []string) schema.AttributeFairness {
	rates, counts := selectionRates(yPred, groups)
	af := schema.AttributeFairness{
		Attribute:         attr,
		SelectionRates:    rates,
		GroupCounts:       counts,
		DisparateImpact:   schema.MetricResult{Status: schema.MetricNotApplicable},
		DemographicParity: schema.MetricResult{Status: schema.MetricNotApplicable},
		EqualizedOdds:     schema.MetricResult{Status: schema.MetricNotApplicable},
	}

	th := b.cfg.Thresholds
	if len(rates) >= 2 {
		minRate, maxRate := rateExtremes(rates)

		di := 1.0
		if maxRate > 0 {
			di = minRate / maxRate
		}
		af.DisparateImpact = metricResult(di, di >= th.DisparateImpact)

		diff := maxRate - minRate
		af.DemographicParity = metricResult(diff, diff <= th.ParityDiff)
	}

	if yTrue != nil {
		af.AccuracyByGroup = accuracyByGroup(yPred, yTrue, groups)
		if spread, ok := equalizedOddsSpread(yPred, yTrue, groups); ok {
			af.EqualizedOdds = metricResult(spread, spread <= th.EqOddsDiff)
		}
	}
	return af
}

// selectionRates returns the positive-prediction rate and member count per
// group. Groups are keyed by their label value.
func selectionRates(yPred []int, groups []string) (map[string]float64, map[string]int) {
	positives := make(map[string]int)
	counts := make(map[string]int)
	for i, g := range groups {
		counts[g]++
		if yPred[i] == 1 {
			positives[g]++
		}
	}
	rates := make(map[string]float64, len(counts))
	for g, n := range counts {
		rates[g] = float64(positives[g]) / float64(n)
	}
	return rates, counts
}

// accuracyByGroup returns the fraction of correct predictions per group.
func accuracyByGroup(yPred, yTrue []int, groups []string) map[string]float64 {
	correct := make(map[string]int)
	counts := make(map[string]int)
	for i, g := range groups {
		counts[g]++
		if yPred[i] == yTrue[i] {
			correct[g]++
		}
	}
	acc := make(map[string]float64, len(counts))
	for g, n := range counts {
		acc[g] = float64(correct[g]) / float64(n)
	}
	return acc
}

// equalizedOddsSpread returns max(FPR spread, TPR spread) across groups.
// Groups whose FPR or TPR is undefined (no negatives / no positives) are
// excluded from the respective spread; a spread needs at least two rated
// groups. Returns false when neither spread can be computed.
func equalizedOddsSpread(yPred, yTrue []int, groups []string) (float64, bool) {
	type confusion struct {
		fp, tn, tp, fn int
	}
	byGroup := make(map[string]*confusion)
	for i, g := range groups {
		c := byGroup[g]
		if c == nil {
			c = &confusion{}
			byGroup[g] = c
		}
		switch {
		case yTrue[i] == 1 && yPred[i] == 1:
			c.tp++
		case yTrue[i] == 1:
			c.fn++
		case yPred[i] == 1:
			c.fp++
		default:
			c.tn++
		}
	}

	var fprs, tprs []float64
	for _, c := range byGroup {
		if c.fp+c.tn > 0 {
			fprs = append(fprs, float64(c.fp)/float64(c.fp+c.tn))
		}
		if c.tp+c.fn > 0 {
			tprs = append(tprs, float64(c.tp)/float64(c.tp+c.fn))
		}
	}

	spread := -1.0
	if len(fprs) >= 2 {
		lo, hi := extremes(fprs)
		spread = hi - lo
	}
	if len(tprs) >= 2 {
		lo, hi := extremes(tprs)
		if hi-lo > spread {
			spread = hi - lo
		}
	}
	if spread < 0 {
		return 0, false
	}
	return spread, true
}

// rateExtremes returns the minimum and maximum rate across groups.
func rateExtremes(rates map[string]float64) (minRate, maxRate float64) {
	first := true
	for _, r := range rates {
		if first {
			minRate, maxRate = r, r
			first = false
			continue
		}
		if r < minRate {
			minRate = r
		}
		if r > maxRate {
			maxRate = r
		}
	}
	return minRate, maxRate
}

func extremes(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func metricResult(value float64, pass bool) schema.MetricResult {
	status := schema.MetricFail
	if pass {
		status = schema.MetricPass
	}
	return schema.MetricResult{Value: value, Status: status}
}

// compositeScore turns a failure count into a 0-100 score, deducting the
// configured penalty per failure.
func compositeScore(failures, penalty int) int {
	score := 100 - failures*penalty
	if score < 0 {
		return 0
	}
	return score
}
