package core_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/core"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/attrib"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine returns canned attributions per call, in call order.
type stubEngine struct {
	calls    int
	values   [][][]float64
	features [][]string
	err      error
	samples  []*schema.Frame
}

func (s *stubEngine) Attributions(_ context.Context, _ any, sample *schema.Frame) ([][]float64, []string, error) {
	s.samples = append(s.samples, sample)
	if s.err != nil {
		return nil, nil, s.err
	}
	i := s.calls
	s.calls++
	return s.values[i], s.features[i], nil
}

func attributionFrames(t *testing.T, rows int) (baseline, current *schema.Frame) {
	t.Helper()
	baseline = schema.NewFrame()
	require.NoError(t, baseline.AddNumeric("age", uniformSeq(20, 60, rows)))
	require.NoError(t, baseline.AddNumeric("income", uniformSeq(1000, 5000, rows)))
	current = schema.NewFrame()
	require.NoError(t, current.AddNumeric("age", uniformSeq(30, 70, rows)))
	require.NoError(t, current.AddNumeric("income", uniformSeq(1000, 5000, rows)))
	return baseline, current
}

func constantAttributions(rows int, perFeature ...float64) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = append([]float64(nil), perFeature...)
	}
	return out
}

func TestExplainDriftRanksByDelta(t *testing.T) {
	baseline, current := attributionFrames(t, 50)
	features := []string{"age", "income"}
	engine := &stubEngine{
		// Baseline |attribution|: age 0.1, income 0.3
		// Current: age 0.6, income 0.2 -> deltas +0.5 and -0.1
		values: [][][]float64{
			constantAttributions(50, 0.1, 0.3),
			constantAttributions(50, 0.6, -0.2),
		},
		features: [][]string{features, features},
	}

	analyzer := core.NewRootCauseAnalyzer(nil, engine)
	report, err := analyzer.ExplainDrift(context.Background(), struct{}{}, baseline, current)
	require.NoError(t, err)

	require.True(t, report.Available)
	assert.Equal(t, 50, report.SampleSize)
	require.Len(t, report.Features, 2)

	age := report.Features[0]
	assert.Equal(t, "age", age.Feature)
	assert.InDelta(t, 0.1, age.BaselineMeanAbs, 1e-9)
	assert.InDelta(t, 0.6, age.CurrentMeanAbs, 1e-9)
	assert.InDelta(t, 0.5, age.Delta, 1e-9)

	income := report.Features[1]
	assert.Equal(t, "income", income.Feature)
	assert.InDelta(t, -0.1, income.Delta, 1e-9)

	assert.Equal(t, []string{"age", "income"}, report.TopFeatures)
}

func TestExplainDriftTopKBound(t *testing.T) {
	cfg := contract.DefaultConfig()
	cfg.TopK = 1

	baseline, current := attributionFrames(t, 20)
	features := []string{"age", "income"}
	engine := &stubEngine{
		values: [][][]float64{
			constantAttributions(20, 0.1, 0.3),
			constantAttributions(20, 0.6, 0.3),
		},
		features: [][]string{features, features},
	}

	analyzer := core.NewRootCauseAnalyzer(cfg, engine)
	report, err := analyzer.ExplainDrift(context.Background(), struct{}{}, baseline, current)
	require.NoError(t, err)
	assert.Equal(t, []string{"age"}, report.TopFeatures)
}

func TestExplainDriftSamplingIsBoundedAndSeeded(t *testing.T) {
	baseline, current := attributionFrames(t, 500)
	features := []string{"age", "income"}
	engine := &stubEngine{
		values: [][][]float64{
			constantAttributions(100, 0.1, 0.1),
			constantAttributions(100, 0.1, 0.1),
		},
		features: [][]string{features, features},
	}

	analyzer := core.NewRootCauseAnalyzer(nil, engine)
	report, err := analyzer.ExplainDrift(context.Background(), struct{}{}, baseline, current)
	require.NoError(t, err)

	assert.Equal(t, 100, report.SampleSize)
	require.Len(t, engine.samples, 2)
	assert.Equal(t, 100, engine.samples[0].Len())
	assert.Equal(t, 100, engine.samples[1].Len())

	// A second run with a fresh analyzer draws the same rows
	second := &stubEngine{
		values: [][][]float64{
			constantAttributions(100, 0.1, 0.1),
			constantAttributions(100, 0.1, 0.1),
		},
		features: [][]string{features, features},
	}
	_, err = core.NewRootCauseAnalyzer(nil, second).ExplainDrift(context.Background(), struct{}{}, baseline, current)
	require.NoError(t, err)
	firstAges, _ := engine.samples[0].Floats("age")
	secondAges, _ := second.samples[0].Floats("age")
	assert.Equal(t, firstAges, secondAges)
}

func TestExplainDriftUnavailableWithoutEngineOrModel(t *testing.T) {
	baseline, current := attributionFrames(t, 10)

	report, err := core.NewRootCauseAnalyzer(nil, nil).ExplainDrift(context.Background(), struct{}{}, baseline, current)
	require.NoError(t, err)
	assert.False(t, report.Available)
	assert.Contains(t, report.Reason, "no attribution engine")

	engine := &stubEngine{}
	report, err = core.NewRootCauseAnalyzer(nil, engine).ExplainDrift(context.Background(), nil, baseline, current)
	require.NoError(t, err)
	assert.False(t, report.Available)
	assert.Contains(t, report.Reason, "no model attached")
}

func TestExplainDriftEngineFailureDegrades(t *testing.T) {
	baseline, current := attributionFrames(t, 10)

	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{"unsupported model", fmt.Errorf("%w: bad model", schema.ErrUnsupportedModel), "attribution unavailable"},
		{"generic failure", errors.New("engine exploded"), "attribution failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &stubEngine{err: tt.err}
			report, err := core.NewRootCauseAnalyzer(nil, engine).ExplainDrift(context.Background(), struct{}{}, baseline, current)
			require.NoError(t, err, "engine failures must not become errors")
			assert.False(t, report.Available)
			assert.Contains(t, report.Reason, tt.reason)
		})
	}
}

func TestExplainDriftWithRealEngine(t *testing.T) {
	baseline, current := attributionFrames(t, 200)
	model := &attrib.LinearModel{Weights: map[string]float64{"age": 0.1}}

	analyzer := core.NewRootCauseAnalyzer(nil, attrib.NewEngine())
	report, err := analyzer.ExplainDrift(context.Background(), model, baseline, current)
	require.NoError(t, err)

	require.True(t, report.Available)
	assert.Equal(t, 100, report.SampleSize)
	require.NotEmpty(t, report.TopFeatures)
	// income carries no weight, so the shift must be pinned on age
	assert.Equal(t, "age", report.TopFeatures[0])

	// A model the default engine cannot drive degrades, never errors
	report, err = analyzer.ExplainDrift(context.Background(), "not a model", baseline, current)
	require.NoError(t, err)
	assert.False(t, report.Available)
	assert.Contains(t, report.Reason, "attribution unavailable")
}

func TestExplainDriftValidation(t *testing.T) {
	baseline, current := attributionFrames(t, 10)
	analyzer := core.NewRootCauseAnalyzer(nil, &stubEngine{})

	_, err := analyzer.ExplainDrift(context.Background(), struct{}{}, schema.NewFrame(), current)
	assert.ErrorIs(t, err, schema.ErrInputValidation)

	_, err = analyzer.ExplainDrift(context.Background(), struct{}{}, baseline, schema.NewFrame())
	assert.ErrorIs(t, err, schema.ErrInputValidation)
}
