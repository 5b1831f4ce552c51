package schema

// AttributionDrift compares one feature's mean absolute attribution between
// the baseline sample and the current sample.
type AttributionDrift struct {
	Feature         string  `json:"feature"`
	BaselineMeanAbs float64 `json:"baseline_mean_abs_attribution"`
	CurrentMeanAbs  float64 `json:"current_mean_abs_attribution"`
	Delta           float64 `json:"delta"`
}

// AttributionDriftReport ranks features by how much their attribution
// changed between baseline and current data. Available is false when the
// attribution engine could not run; the rest of an analysis never depends
// on this report.
type AttributionDriftReport struct {
	Available   bool               `json:"available"`
	Reason      string             `json:"reason,omitempty"`
	SampleSize  int                `json:"sample_size"`
	Features    []AttributionDrift `json:"features,omitempty"`     // Descending by |Delta|
	TopFeatures []string           `json:"top_features,omitempty"` // First TopK feature names
}

// UnavailableRootCause builds the degraded report used whenever attribution
// cannot be computed.
func UnavailableRootCause(reason string) *AttributionDriftReport {
	return &AttributionDriftReport{Available: false, Reason: reason}
}
