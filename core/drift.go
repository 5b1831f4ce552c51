package core

import (
	"fmt"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/stattest"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// DriftDetector compares current batches against a registered baseline.
// Numerical features run through a two-sample KS test plus PSI; categorical
// features run through a chi-square goodness-of-fit test. The detector is
// stateless across detection calls: every call produces a fresh report.
type DriftDetector struct {
	cfg      *contract.Config
	features schema.FeatureSchema
	baseline *schema.Frame
}

// NewDriftDetector creates a detector. A nil config selects the defaults.
func NewDriftDetector(cfg *contract.Config) *DriftDetector {
	if cfg == nil {
		cfg = contract.DefaultConfig()
	}
	return &DriftDetector{cfg: cfg}
}

// Register stores the feature schema and baseline frame. The baseline is
// deep-copied so later mutation by the caller cannot skew detection.
func (d *DriftDetector) Register(features schema.FeatureSchema, baseline *schema.Frame) error {
	if baseline.Len() == 0 {
		return fmt.Errorf("%w: baseline frame is empty", schema.ErrInputValidation)
	}
	if features.IsEmpty() {
		return fmt.Errorf("%w: feature schema declares no features", schema.ErrInputValidation)
	}
	for _, name := range features.Numerical {
		if _, ok := baseline.Floats(name); !ok {
			return fmt.Errorf("%w: numerical feature %q is missing from the baseline or not numeric",
				schema.ErrInputValidation, name)
		}
	}
	for _, name := range features.Categorical {
		if !baseline.Has(name) {
			return fmt.Errorf("%w: categorical feature %q is missing from the baseline",
				schema.ErrInputValidation, name)
		}
	}

	d.features = schema.FeatureSchema{
		Numerical:   append([]string(nil), features.Numerical...),
		Categorical: append([]string(nil), features.Categorical...),
	}
	d.baseline = baseline.Clone()
	return nil
}

// Registered reports whether a baseline has been registered.
func (d *DriftDetector) Registered() bool {
	return d.baseline != nil
}

// Baseline returns the registered baseline frame.
func (d *DriftDetector) Baseline() *schema.Frame {
	return d.baseline
}

// Features returns the registered feature schema.
func (d *DriftDetector) Features() schema.FeatureSchema {
	return d.features
}

// Detect tests every declared feature of the current batch against the
// baseline. Untestable features (missing column, wrong value type) degrade
// to inline skip entries; they never fail the whole call.
func (d *DriftDetector) Detect(current *schema.Frame) (schema.DriftReport, error) {
	var report schema.DriftReport
	if d.baseline == nil {
		return report, fmt.Errorf("%w: no baseline registered", schema.ErrInputValidation)
	}
	if current.Len() == 0 {
		return report, fmt.Errorf("%w: current batch is empty", schema.ErrInputValidation)
	}

	for _, name := range d.features.Numerical {
		report.Results = append(report.Results, d.detectNumerical(name, current))
	}
	for _, name := range d.features.Categorical {
		report.Results = append(report.Results, d.detectCategorical(name, current))
	}
	return report, nil
}

// detectNumerical runs the KS test and PSI for one numerical feature.
func (d *DriftDetector) detectNumerical(name string, current *schema.Frame) schema.DriftResult {
	res := schema.DriftResult{
		Feature:  name,
		Kind:     schema.NumericalKind,
		Metric:   schema.KSPSIMetric,
		Severity: schema.SeverityNone,
	}
	if !current.Has(name) {
		res.Metric = schema.MissingMetric
		res.Note = "feature missing from current batch"
		return res
	}
	cur, ok := current.Floats(name)
	if !ok {
		res.Metric = schema.SkippedMetric
		res.Note = "non-numeric values in declared numerical feature"
		return res
	}
	base, _ := d.baseline.Floats(name)

	ksStat, pValue, err := stattest.KolmogorovSmirnov(base, cur)
	if err != nil {
		res.Metric = schema.SkippedMetric
		res.Note = err.Error()
		return res
	}
	res.Score = ksStat
	res.PValue = &pValue

	psi, err := populationStabilityIndex(base, cur, d.cfg.PSIBins)
	if err != nil {
		res.Note = "psi unavailable: " + err.Error()
	}
	res.PSI = psi

	th := d.cfg.Thresholds
	switch {
	case psi > th.PSIMajor:
		res.Severity = schema.SeverityMajor
	case psi > th.PSIMinor:
		res.Severity = schema.SeverityMinor
	}
	res.Alert = psi > th.PSIMinor || pValue < th.PValue
	if res.Alert && res.Severity == schema.SeverityNone {
		// KS-only alert: the shape shifted even though PSI stayed low.
		res.Severity = schema.SeverityMinor
	}
	return res
}

// detectCategorical runs the chi-square goodness-of-fit test for one
// categorical feature. Category sets are aligned across baseline and
// current; cells with expected count <= 5 are dropped before testing.
func (d *DriftDetector) detectCategorical(name string, current *schema.Frame) schema.DriftResult {
	res := schema.DriftResult{
		Feature:  name,
		Kind:     schema.CategoricalKind,
		Metric:   schema.ChiSquareMetric,
		Severity: schema.SeverityNone,
	}
	if !current.Has(name) {
		res.Metric = schema.MissingMetric
		res.Note = "feature missing from current batch"
		return res
	}
	cur, _ := current.Labels(name)
	base, _ := d.baseline.Labels(name)

	baseCounts := countLabels(base)
	curCounts := countLabels(cur)
	baseN := float64(len(base))
	curN := float64(len(cur))

	var observed, expected []float64
	for _, cat := range sortedKeys(baseCounts) {
		exp := baseCounts[cat] / baseN * curN
		if exp <= 5 {
			continue
		}
		observed = append(observed, curCounts[cat])
		expected = append(expected, exp)
	}

	one := 1.0
	if len(observed) < 2 {
		res.PValue = &one
		res.Note = "too few well-populated categories to test"
		return res
	}

	chi, pValue, err := stattest.ChiSquareGOF(observed, expected)
	if err != nil {
		res.PValue = &one
		res.Note = err.Error()
		return res
	}
	res.Score = chi
	res.PValue = &pValue
	if pValue < d.cfg.Thresholds.PValue {
		res.Alert = true
		res.Severity = schema.SeverityMajor
	}
	return res
}

func countLabels(labels []string) map[string]float64 {
	counts := make(map[string]float64, 8)
	for _, l := range labels {
		counts[l]++
	}
	return counts
}
