package schema

// DriftResult is the drift verdict for a single feature. One result is
// produced per declared feature on every detection pass, including features
// that were missing or skipped, so reports are positionally comparable
// across batches.
type DriftResult struct {
	Feature  string      `json:"feature"`
	Kind     FeatureKind `json:"kind"`
	Metric   DriftMetric `json:"metric"`
	Score    float64     `json:"score"`             // KS statistic or chi-square statistic
	PValue   *float64    `json:"p_value,omitempty"` // Nil for missing/skipped entries
	PSI      float64     `json:"psi"`               // Zero for categorical features
	Alert    bool        `json:"alert"`
	Severity Severity    `json:"severity"`
	Note     string      `json:"note,omitempty"`
}

// DriftReport is the ordered per-feature drift verdict for one batch.
// Reports are regenerated fresh on every detection pass.
type DriftReport struct {
	Results []DriftResult `json:"results"`
}

// HasAlerts reports whether any feature alerted.
func (r *DriftReport) HasAlerts() bool {
	for _, res := range r.Results {
		if res.Alert {
			return true
		}
	}
	return false
}

// AlertCount returns the number of alerting features.
func (r *DriftReport) AlertCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Alert {
			n++
		}
	}
	return n
}

// AlertedFeatures returns the names of alerting features in report order.
func (r *DriftReport) AlertedFeatures() []string {
	var out []string
	for _, res := range r.Results {
		if res.Alert {
			out = append(out, res.Feature)
		}
	}
	return out
}
