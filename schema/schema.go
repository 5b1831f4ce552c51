// Package schema holds the shared data model for the bias and drift
// analytics engine: feature schemas, frames, observations, report types,
// enums and the sentinel error taxonomy.
package schema

// FeatureSchema declares which features a model consumes and how each one
// should be tested. Order is preserved in drift reports.
type FeatureSchema struct {
	Numerical   []string `json:"numerical"`
	Categorical []string `json:"categorical"`
}

// IsEmpty reports whether the schema declares no features at all.
func (s FeatureSchema) IsEmpty() bool {
	return len(s.Numerical) == 0 && len(s.Categorical) == 0
}

// Features returns all declared feature names, numerical first.
func (s FeatureSchema) Features() []string {
	out := make([]string, 0, len(s.Numerical)+len(s.Categorical))
	out = append(out, s.Numerical...)
	out = append(out, s.Categorical...)
	return out
}

// Kind returns the declared kind of the named feature.
func (s FeatureSchema) Kind(name string) (FeatureKind, bool) {
	for _, n := range s.Numerical {
		if n == name {
			return NumericalKind, true
		}
	}
	for _, n := range s.Categorical {
		if n == name {
			return CategoricalKind, true
		}
	}
	return "", false
}
