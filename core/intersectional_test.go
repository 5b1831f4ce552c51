package core_test

import (
	"testing"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/core"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intersectionalScenario builds four gender x age_group subgroups of 20 rows
// each with selection rates 0.7, 0.8, 0.6 and 0.4.
func intersectionalScenario(t *testing.T) (yPred []int, sensitive *schema.Frame) {
	t.Helper()
	subgroups := []struct {
		gender    string
		ageGroup  string
		positives int
	}{
		{"M", "30-49", 14},
		{"M", "50+", 16},
		{"F", "30-49", 12},
		{"F", "50+", 8},
	}

	var genders, ages []string
	for _, sg := range subgroups {
		for i := 0; i < 20; i++ {
			genders = append(genders, sg.gender)
			ages = append(ages, sg.ageGroup)
			if i < sg.positives {
				yPred = append(yPred, 1)
			} else {
				yPred = append(yPred, 0)
			}
		}
	}
	sensitive = schema.NewFrame()
	require.NoError(t, sensitive.AddCategorical("gender", genders))
	require.NoError(t, sensitive.AddCategorical("age_group", ages))
	return yPred, sensitive
}

func TestNewIntersectionalAnalyzerRequiresAttrs(t *testing.T) {
	_, err := core.NewIntersectionalAnalyzer(nil, nil)
	assert.ErrorIs(t, err, schema.ErrInputValidation)
}

func TestEvaluateIntersections(t *testing.T) {
	analyzer, err := core.NewIntersectionalAnalyzer(nil, []string{"gender", "age_group"})
	require.NoError(t, err)

	yPred, sensitive := intersectionalScenario(t)
	board, err := analyzer.Evaluate(yPred, sensitive, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, board.Combinations)
	require.Len(t, board.Entries, 4)

	// Ascending disparity ratio against the best subgroup (M_50+ at 0.8)
	worst := board.Entries[0]
	assert.Equal(t, "F_50+", worst.Key)
	assert.Equal(t, []string{"gender", "age_group"}, worst.Combination)
	assert.Equal(t, []string{"F", "50+"}, worst.Values)
	assert.Equal(t, 20, worst.Count)
	assert.InDelta(t, 0.4, worst.SelectionRate, 1e-9)
	assert.InDelta(t, 0.5, worst.DisparityRatio, 1e-9)
	assert.True(t, worst.Violation)

	assert.Equal(t, "F_30-49", board.Entries[1].Key)
	assert.InDelta(t, 0.75, board.Entries[1].DisparityRatio, 1e-9)
	assert.True(t, board.Entries[1].Violation)

	assert.Equal(t, "M_30-49", board.Entries[2].Key)
	assert.InDelta(t, 0.875, board.Entries[2].DisparityRatio, 1e-9)
	assert.False(t, board.Entries[2].Violation)

	best := board.Entries[3]
	assert.Equal(t, "M_50+", best.Key)
	assert.Equal(t, 1.0, best.DisparityRatio)
	assert.False(t, best.Violation)

	// One combination with violations at the default penalty
	assert.Equal(t, 80, board.Score)
	assert.Equal(t, 2, board.Violations())
	assert.Equal(t, []schema.IntersectionalGroup{worst, board.Entries[1]}, board.WorstGroups(2))
}

func TestEvaluateSingleAttributeMatchesBiasRates(t *testing.T) {
	cfg := contract.DefaultConfig()
	cfg.MaxCombinationSize = 1

	analyzer, err := core.NewIntersectionalAnalyzer(cfg, []string{"gender"})
	require.NoError(t, err)

	yPred, sensitive := biasedScenario(t)
	board, err := analyzer.Evaluate(yPred, sensitive, 0)
	require.NoError(t, err)

	require.Len(t, board.Entries, 2)
	// Same selection rates the single-attribute analyzer reports
	assert.Equal(t, "F", board.Entries[0].Key)
	assert.InDelta(t, 0.6, board.Entries[0].SelectionRate, 1e-9)
	assert.InDelta(t, 0.75, board.Entries[0].DisparityRatio, 1e-9)
	assert.True(t, board.Entries[0].Violation)
	assert.Equal(t, "M", board.Entries[1].Key)
	assert.InDelta(t, 0.8, board.Entries[1].SelectionRate, 1e-9)
}

func TestEvaluateMinGroupSizeFilter(t *testing.T) {
	analyzer, err := core.NewIntersectionalAnalyzer(nil, []string{"gender", "age_group"})
	require.NoError(t, err)

	yPred, sensitive := intersectionalScenario(t)

	// A floor above every subgroup size leaves nothing to rank
	board, err := analyzer.Evaluate(yPred, sensitive, 50)
	require.NoError(t, err)
	assert.Empty(t, board.Entries)
	assert.Zero(t, board.Combinations)
	assert.Equal(t, 100, board.Score)

	// A floor of exactly the subgroup size keeps everything
	board, err = analyzer.Evaluate(yPred, sensitive, 20)
	require.NoError(t, err)
	assert.Len(t, board.Entries, 4)
}

func TestEvaluateZeroSelectionRates(t *testing.T) {
	cfg := contract.DefaultConfig()
	cfg.MaxCombinationSize = 1

	analyzer, err := core.NewIntersectionalAnalyzer(cfg, []string{"gender"})
	require.NoError(t, err)

	yPred := make([]int, 24)
	var genders []string
	for i := 0; i < 12; i++ {
		genders = append(genders, "M")
	}
	for i := 0; i < 12; i++ {
		genders = append(genders, "F")
	}
	sensitive := schema.NewFrame()
	require.NoError(t, sensitive.AddCategorical("gender", genders))

	board, err := analyzer.Evaluate(yPred, sensitive, 0)
	require.NoError(t, err)
	// Nothing selected anywhere: ratios stay 1, no violations
	for _, entry := range board.Entries {
		assert.Equal(t, 1.0, entry.DisparityRatio)
		assert.False(t, entry.Violation)
	}
	assert.Equal(t, 100, board.Score)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	analyzer, err := core.NewIntersectionalAnalyzer(nil, []string{"gender", "age_group"})
	require.NoError(t, err)

	yPred, sensitive := intersectionalScenario(t)
	first, err := analyzer.Evaluate(yPred, sensitive, 0)
	require.NoError(t, err)
	second, err := analyzer.Evaluate(yPred, sensitive, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEvaluateIntersectionalValidation(t *testing.T) {
	analyzer, err := core.NewIntersectionalAnalyzer(nil, []string{"gender"})
	require.NoError(t, err)

	sensitive := schema.NewFrame()
	require.NoError(t, sensitive.AddCategorical("gender", []string{"M", "F"}))

	_, err = analyzer.Evaluate(nil, sensitive, 0)
	assert.ErrorIs(t, err, schema.ErrInputValidation)

	_, err = analyzer.Evaluate([]int{1, 0}, schema.NewFrame(), 0)
	assert.ErrorIs(t, err, schema.ErrInputValidation)

	_, err = analyzer.Evaluate([]int{1, 0, 1}, sensitive, 0)
	assert.ErrorIs(t, err, schema.ErrInputValidation)
}
