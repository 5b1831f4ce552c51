package schema

import "time"

// MonitorReport bundles the outputs of one full analysis pass over a
// model's observation window. RootCause is nil when no drift alerted or no
// model was attached; Fairness and Intersectional are nil when no sensitive
// attributes are configured.
type MonitorReport struct {
	Drift          *DriftReport            `json:"drift"`
	Fairness       *FairnessReport         `json:"fairness,omitempty"`
	Intersectional *Leaderboard            `json:"intersectional,omitempty"`
	RootCause      *AttributionDriftReport `json:"root_cause,omitempty"`
	Observations   int                     `json:"observations"`
	GeneratedAt    time.Time               `json:"generated_at"`
}
