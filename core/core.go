// Package core implements the analytics engine: drift detection, group
// fairness, intersectional fairness, attribution-based root cause analysis,
// and the per-model Monitor that orchestrates them over an observation log.
//
// Analyzers are pure over immutable inputs. The Monitor does not lock;
// keeping a single analysis in flight per model is the caller's contract.
package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/obslog"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// Monitor owns one model's feature schema, baseline, analyzers and
// observation store. There is no process-wide registry: embed one Monitor
// per monitored model.
type Monitor struct {
	cfg       *contract.Config
	attrs     []string
	drift     *DriftDetector
	bias      *BiasAnalyzer
	inter     *IntersectionalAnalyzer
	rootCause *RootCauseAnalyzer
	store     contract.ObservationStore
	engine    contract.AttributionEngine
	model     any
}

// MonitorOption customizes a Monitor at construction time.
type MonitorOption func(*Monitor)

// WithModel attaches the model whose drift should be explained. Without a
// model, root cause analysis is skipped.
func WithModel(model any) MonitorOption {
	return func(m *Monitor) { m.model = model }
}

// WithAttributionEngine injects the attribution capability.
func WithAttributionEngine(engine contract.AttributionEngine) MonitorOption {
	return func(m *Monitor) { m.engine = engine }
}

// WithStore injects the observation store. Defaults to an in-memory store.
func WithStore(store contract.ObservationStore) MonitorOption {
	return func(m *Monitor) { m.store = store }
}

// NewMonitor builds a monitor. sensitiveAttrs may be empty, which disables
// the fairness analyzers.
func NewMonitor(cfg *contract.Config, sensitiveAttrs []string, opts ...MonitorOption) (*Monitor, error) {
	if cfg == nil {
		cfg = contract.DefaultConfig()
	}
	m := &Monitor{
		cfg:   cfg,
		attrs: append([]string(nil), sensitiveAttrs...),
		drift: NewDriftDetector(cfg),
	}
	if len(sensitiveAttrs) > 0 {
		bias, err := NewBiasAnalyzer(cfg, sensitiveAttrs)
		if err != nil {
			return nil, err
		}
		inter, err := NewIntersectionalAnalyzer(cfg, sensitiveAttrs)
		if err != nil {
			return nil, err
		}
		m.bias = bias
		m.inter = inter
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = obslog.NewMemoryStore()
	}
	m.rootCause = NewRootCauseAnalyzer(cfg, m.engine)
	return m, nil
}

// Store exposes the observation store, e.g. for export commands.
func (m *Monitor) Store() contract.ObservationStore {
	return m.store
}

// RegisterBaseline declares the feature schema and stores the reference
// frame used by all later detection passes.
func (m *Monitor) RegisterBaseline(features schema.FeatureSchema, baseline *schema.Frame) error {
	return m.drift.Register(features, baseline)
}

// LogObservation validates one prediction event against the registered
// schema and appends it to the store.
func (m *Monitor) LogObservation(obs schema.Observation) error {
	features := m.drift.Features()
	if features.IsEmpty() {
		return fmt.Errorf("%w: no baseline registered", schema.ErrInputValidation)
	}
	for _, name := range features.Numerical {
		if _, ok := obs.Numeric[name]; !ok {
			return fmt.Errorf("%w: observation is missing numerical feature %q", schema.ErrInputValidation, name)
		}
	}
	for _, name := range features.Categorical {
		if _, ok := obs.Categorical[name]; !ok {
			return fmt.Errorf("%w: observation is missing categorical feature %q", schema.ErrInputValidation, name)
		}
	}
	if obs.Prediction != 0 && obs.Prediction != 1 {
		return fmt.Errorf("%w: prediction must be 0 or 1 (received %d)", schema.ErrInputValidation, obs.Prediction)
	}
	if obs.TrueLabel != nil && *obs.TrueLabel != 0 && *obs.TrueLabel != 1 {
		return fmt.Errorf("%w: true label must be 0 or 1 (received %d)", schema.ErrInputValidation, *obs.TrueLabel)
	}
	return m.store.Append(obs)
}

// Analyze builds the current window frame from the observation log and
// runs every configured analyzer. Root cause runs only when drift alerted
// and a model is attached; its failure never voids the other sections.
func (m *Monitor) Analyze(ctx context.Context) (*schema.MonitorReport, error) {
	observations, err := m.store.Window(m.cfg.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read observation window: %w", err)
	}
	if len(observations) == 0 {
		return nil, fmt.Errorf("%w: no observations logged", schema.ErrInputValidation)
	}

	current := frameFromObservations(m.drift.Features(), observations)
	report := &schema.MonitorReport{
		Observations: len(observations),
		GeneratedAt:  time.Now().UTC(),
	}

	driftReport, err := m.drift.Detect(current)
	if err != nil {
		return nil, err
	}
	report.Drift = &driftReport

	if m.bias != nil {
		yPred, yTrue := labelsFromObservations(observations)
		sensitive := sensitiveFrame(m.attrs, observations)
		if len(sensitive.Names()) > 0 {
			fairness, err := m.bias.Evaluate(yPred, yTrue, sensitive)
			if err != nil {
				return nil, err
			}
			report.Fairness = fairness

			board, err := m.inter.Evaluate(yPred, sensitive, 0)
			if err != nil {
				return nil, err
			}
			report.Intersectional = board
		}
	}

	if report.Drift.HasAlerts() && m.model != nil {
		rc, err := m.rootCause.ExplainDrift(ctx, m.model, m.drift.Baseline(), current)
		if err != nil {
			contract.LogWarn("root cause analysis skipped", err)
		} else {
			report.RootCause = rc
		}
	}
	return report, nil
}

// frameFromObservations assembles the current batch frame in schema order.
// LogObservation guarantees every observation carries every feature.
func frameFromObservations(features schema.FeatureSchema, observations []schema.Observation) *schema.Frame {
	frame := schema.NewFrame()
	for _, name := range features.Numerical {
		values := make([]float64, len(observations))
		for i, obs := range observations {
			values[i] = obs.Numeric[name]
		}
		_ = frame.AddNumeric(name, values)
	}
	for _, name := range features.Categorical {
		values := make([]string, len(observations))
		for i, obs := range observations {
			values[i] = obs.Categorical[name]
		}
		_ = frame.AddCategorical(name, values)
	}
	return frame
}

// labelsFromObservations extracts predictions and, when every observation
// carries one, true labels.
func labelsFromObservations(observations []schema.Observation) (yPred, yTrue []int) {
	yPred = make([]int, len(observations))
	yTrue = make([]int, len(observations))
	haveTruth := true
	for i, obs := range observations {
		yPred[i] = obs.Prediction
		if obs.TrueLabel == nil {
			haveTruth = false
			continue
		}
		yTrue[i] = *obs.TrueLabel
	}
	if !haveTruth {
		return yPred, nil
	}
	return yPred, yTrue
}

// sensitiveFrame builds a frame of the sensitive attributes that every
// observation carries. Partially logged attributes are dropped.
func sensitiveFrame(attrs []string, observations []schema.Observation) *schema.Frame {
	frame := schema.NewFrame()
	for _, attr := range attrs {
		values := make([]string, len(observations))
		complete := true
		for i, obs := range observations {
			v, ok := obs.Sensitive[attr]
			if !ok {
				complete = false
				break
			}
			values[i] = v
		}
		if complete {
			_ = frame.AddCategorical(attr, values)
		}
	}
	return frame
}

// sortedKeys returns map keys in ascending order for deterministic output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
