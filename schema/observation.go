package schema

// Observation is one logged prediction event for a monitored model.
type Observation struct {
	Numeric     map[string]float64 `json:"numeric"`
	Categorical map[string]string  `json:"categorical"`
	Prediction  int                `json:"prediction"`
	TrueLabel   *int               `json:"true_label,omitempty"`
	Sensitive   map[string]string  `json:"sensitive"`
}

// StoreStatus describes an observation store's backend and contents.
type StoreStatus struct {
	Backend      DatabaseBackend `json:"backend"`
	Connected    bool            `json:"connected"`
	Observations int64           `json:"observations"`
}
