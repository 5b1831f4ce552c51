package core_test

import (
	"testing"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/core"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// biasedScenario builds 10 male rows at a 0.8 selection rate and 10 female
// rows at 0.6.
func biasedScenario(t *testing.T) (yPred []int, sensitive *schema.Frame) {
	t.Helper()
	var groups []string
	for i := 0; i < 10; i++ {
		groups = append(groups, "M")
		if i < 8 {
			yPred = append(yPred, 1)
		} else {
			yPred = append(yPred, 0)
		}
	}
	for i := 0; i < 10; i++ {
		groups = append(groups, "F")
		if i < 6 {
			yPred = append(yPred, 1)
		} else {
			yPred = append(yPred, 0)
		}
	}
	sensitive = schema.NewFrame()
	require.NoError(t, sensitive.AddCategorical("gender", groups))
	return yPred, sensitive
}

func TestNewBiasAnalyzerRequiresAttrs(t *testing.T) {
	_, err := core.NewBiasAnalyzer(nil, nil)
	assert.ErrorIs(t, err, schema.ErrInputValidation)
}

func TestEvaluateBiasedRates(t *testing.T) {
	analyzer, err := core.NewBiasAnalyzer(nil, []string{"gender"})
	require.NoError(t, err)

	yPred, sensitive := biasedScenario(t)
	report, err := analyzer.Evaluate(yPred, nil, sensitive)
	require.NoError(t, err)

	attr, ok := report.Attribute("gender")
	require.True(t, ok)
	assert.InDelta(t, 0.8, attr.SelectionRates["M"], 1e-9)
	assert.InDelta(t, 0.6, attr.SelectionRates["F"], 1e-9)
	assert.Equal(t, 10, attr.GroupCounts["M"])

	// 0.6/0.8 = 0.75 < 0.8: disparate impact fails
	assert.InDelta(t, 0.75, attr.DisparateImpact.Value, 1e-9)
	assert.True(t, attr.DisparateImpact.Failed())

	// 0.8-0.6 = 0.2 > 0.1: parity fails
	assert.InDelta(t, 0.2, attr.DemographicParity.Value, 1e-9)
	assert.True(t, attr.DemographicParity.Failed())

	// No ground truth: equalized odds not applicable
	assert.False(t, attr.EqualizedOdds.Applicable())
	assert.Nil(t, attr.AccuracyByGroup)

	// Two failed metrics at the default penalty
	assert.Equal(t, 60, report.Score)
}

func TestEvaluateEqualRates(t *testing.T) {
	analyzer, err := core.NewBiasAnalyzer(nil, []string{"gender"})
	require.NoError(t, err)

	yPred := []int{1, 0, 1, 0}
	sensitive := schema.NewFrame()
	require.NoError(t, sensitive.AddCategorical("gender", []string{"M", "M", "F", "F"}))

	report, err := analyzer.Evaluate(yPred, nil, sensitive)
	require.NoError(t, err)

	attr, _ := report.Attribute("gender")
	// Equal rates: disparate impact is exactly 1 and passes
	assert.Equal(t, 1.0, attr.DisparateImpact.Value)
	assert.Equal(t, schema.MetricPass, attr.DisparateImpact.Status)
	assert.Equal(t, 0.0, attr.DemographicParity.Value)
	assert.Equal(t, 100, report.Score)
}

func TestEvaluateAllNegativePredictions(t *testing.T) {
	analyzer, err := core.NewBiasAnalyzer(nil, []string{"gender"})
	require.NoError(t, err)

	yPred := []int{0, 0, 0, 0}
	sensitive := schema.NewFrame()
	require.NoError(t, sensitive.AddCategorical("gender", []string{"M", "M", "F", "F"}))

	report, err := analyzer.Evaluate(yPred, nil, sensitive)
	require.NoError(t, err)

	attr, _ := report.Attribute("gender")
	// All-zero rates are equal by definition, never a division by zero
	assert.Equal(t, 1.0, attr.DisparateImpact.Value)
	assert.Equal(t, schema.MetricPass, attr.DisparateImpact.Status)
}

func TestEvaluateSingleGroupNotApplicable(t *testing.T) {
	analyzer, err := core.NewBiasAnalyzer(nil, []string{"gender"})
	require.NoError(t, err)

	yPred := []int{1, 0, 1}
	sensitive := schema.NewFrame()
	require.NoError(t, sensitive.AddCategorical("gender", []string{"M", "M", "M"}))

	report, err := analyzer.Evaluate(yPred, nil, sensitive)
	require.NoError(t, err)

	attr, _ := report.Attribute("gender")
	// Ratio metrics are undefined with one group: not_applicable, never 0 or 1
	assert.Equal(t, schema.MetricNotApplicable, attr.DisparateImpact.Status)
	assert.Equal(t, schema.MetricNotApplicable, attr.DemographicParity.Status)
	assert.Equal(t, 100, report.Score)
}

func TestEvaluateEqualizedOddsWithTruth(t *testing.T) {
	analyzer, err := core.NewBiasAnalyzer(nil, []string{"gender"})
	require.NoError(t, err)

	// Group M: perfect classifier (TPR 1, FPR 0)
	// Group F: inverted classifier (TPR 0, FPR 1)
	yTrue := []int{1, 1, 0, 0, 1, 1, 0, 0}
	yPred := []int{1, 1, 0, 0, 0, 0, 1, 1}
	sensitive := schema.NewFrame()
	require.NoError(t, sensitive.AddCategorical("gender",
		[]string{"M", "M", "M", "M", "F", "F", "F", "F"}))

	report, err := analyzer.Evaluate(yPred, yTrue, sensitive)
	require.NoError(t, err)

	attr, _ := report.Attribute("gender")
	assert.Equal(t, 1.0, attr.EqualizedOdds.Value)
	assert.True(t, attr.EqualizedOdds.Failed())
	assert.InDelta(t, 1.0, attr.AccuracyByGroup["M"], 1e-9)
	assert.InDelta(t, 0.0, attr.AccuracyByGroup["F"], 1e-9)
}

func TestScoreMonotoneInFailures(t *testing.T) {
	analyzer, err := core.NewBiasAnalyzer(nil, []string{"gender"})
	require.NoError(t, err)

	fairPred := []int{1, 0, 1, 0}
	sensitive := schema.NewFrame()
	require.NoError(t, sensitive.AddCategorical("gender", []string{"M", "M", "F", "F"}))
	fair, err := analyzer.Evaluate(fairPred, nil, sensitive)
	require.NoError(t, err)

	biasedPred, biasedSensitive := biasedScenario(t)
	biased, err := analyzer.Evaluate(biasedPred, nil, biasedSensitive)
	require.NoError(t, err)

	assert.Greater(t, fair.Score, biased.Score)
	assert.GreaterOrEqual(t, biased.Score, 0)
}

func TestScoreFloorsAtZero(t *testing.T) {
	cfg := contract.DefaultConfig()
	cfg.ScorePenalty = 60

	analyzer, err := core.NewBiasAnalyzer(cfg, []string{"gender"})
	require.NoError(t, err)

	yPred, sensitive := biasedScenario(t)
	report, err := analyzer.Evaluate(yPred, nil, sensitive)
	require.NoError(t, err)
	// Two failures at penalty 60 would be -20 without the floor
	assert.Equal(t, 0, report.Score)
}

func TestEvaluateValidation(t *testing.T) {
	analyzer, err := core.NewBiasAnalyzer(nil, []string{"gender"})
	require.NoError(t, err)

	sensitive := schema.NewFrame()
	require.NoError(t, sensitive.AddCategorical("gender", []string{"M", "F"}))

	tests := []struct {
		name  string
		yPred []int
		yTrue []int
		frame *schema.Frame
	}{
		{"empty predictions", nil, nil, sensitive},
		{"empty sensitive frame", []int{1, 0}, nil, schema.NewFrame()},
		{"length mismatch", []int{1, 0, 1}, nil, sensitive},
		{"true label mismatch", []int{1, 0}, []int{1}, sensitive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzer.Evaluate(tt.yPred, tt.yTrue, tt.frame)
			assert.ErrorIs(t, err, schema.ErrInputValidation)
		})
	}
}

func TestEvaluateSkipsMissingAttributes(t *testing.T) {
	analyzer, err := core.NewBiasAnalyzer(nil, []string{"gender", "race"})
	require.NoError(t, err)

	yPred, sensitive := biasedScenario(t)

	// race is not in the frame: skipped inline, gender still evaluated
	report, err := analyzer.Evaluate(yPred, nil, sensitive)
	require.NoError(t, err)
	assert.Len(t, report.Attributes, 1)

	// Every configured attribute missing fails the whole call
	missing, err := core.NewBiasAnalyzer(nil, []string{"race"})
	require.NoError(t, err)
	_, err = missing.Evaluate(yPred, nil, sensitive)
	assert.ErrorIs(t, err, schema.ErrInputValidation)
}
