package schema

// MetricResult is one fairness metric's value and verdict.
type MetricResult struct {
	Value  float64      `json:"value"`
	Status MetricStatus `json:"status"`
}

// Applicable reports whether the metric could be computed at all.
func (m MetricResult) Applicable() bool {
	return m.Status != MetricNotApplicable
}

// Failed reports whether the metric was computed and failed its threshold.
func (m MetricResult) Failed() bool {
	return m.Status == MetricFail
}

// AttributeFairness holds per-group rates and metric verdicts for a single
// sensitive attribute.
type AttributeFairness struct {
	Attribute         string             `json:"attribute"`
	SelectionRates    map[string]float64 `json:"selection_rates"`
	GroupCounts       map[string]int     `json:"group_counts"`
	AccuracyByGroup   map[string]float64 `json:"accuracy_by_group,omitempty"`
	DisparateImpact   MetricResult       `json:"disparate_impact"`
	DemographicParity MetricResult       `json:"demographic_parity"`
	EqualizedOdds     MetricResult       `json:"equalized_odds"`
}

// FairnessReport aggregates fairness verdicts across all configured
// sensitive attributes, plus a 0-100 composite score.
type FairnessReport struct {
	Attributes []AttributeFairness `json:"attributes"`
	Score      int                 `json:"score"`
}

// Attribute returns the results for a single sensitive attribute.
func (r *FairnessReport) Attribute(name string) (*AttributeFairness, bool) {
	for i := range r.Attributes {
		if r.Attributes[i].Attribute == name {
			return &r.Attributes[i], true
		}
	}
	return nil, false
}

// FailedMetrics returns the number of failed metrics across all attributes.
func (r *FairnessReport) FailedMetrics() int {
	n := 0
	for _, a := range r.Attributes {
		for _, m := range []MetricResult{a.DisparateImpact, a.DemographicParity, a.EqualizedOdds} {
			if m.Failed() {
				n++
			}
		}
	}
	return n
}
