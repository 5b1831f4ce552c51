package attrib_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/attrib"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearModelPredict(t *testing.T) {
	model := &attrib.LinearModel{
		Weights:   map[string]float64{"age": 2},
		Intercept: 0,
	}

	// Zero input hits the intercept: sigmoid(0) = 0.5
	assert.InDelta(t, 0.5, model.Predict(map[string]float64{"age": 0}), 1e-9)

	// Monotone in the weighted feature
	low := model.Predict(map[string]float64{"age": -3})
	high := model.Predict(map[string]float64{"age": 3})
	assert.Less(t, low, 0.01)
	assert.Greater(t, high, 0.99)

	// Unweighted features contribute nothing
	withExtra := model.Predict(map[string]float64{"age": 3, "income": 1e6})
	assert.Equal(t, high, withExtra)
}

func TestLoadLinearModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	payload, err := json.Marshal(attrib.LinearModel{
		Weights:   map[string]float64{"age": 0.5, "income": -0.2},
		Intercept: 1.5,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	model, err := attrib.LoadLinearModel(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, model.Intercept)
	assert.Equal(t, 0.5, model.Weights["age"])
}

func TestLoadLinearModelErrors(t *testing.T) {
	_, err := attrib.LoadLinearModel(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	dir := t.TempDir()
	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte("{not json"), 0o644))
	_, err = attrib.LoadLinearModel(badPath)
	assert.ErrorIs(t, err, schema.ErrInputValidation)

	emptyPath := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(emptyPath, []byte(`{"weights":{},"intercept":0}`), 0o644))
	_, err = attrib.LoadLinearModel(emptyPath)
	assert.ErrorIs(t, err, schema.ErrInputValidation)
}

func TestEngineAttributions(t *testing.T) {
	model := &attrib.LinearModel{
		Weights:   map[string]float64{"age": 1, "income": 0},
		Intercept: 0,
	}

	frame := schema.NewFrame()
	require.NoError(t, frame.AddNumeric("age", []float64{0, 2, 4}))
	require.NoError(t, frame.AddNumeric("income", []float64{100, 200, 300}))
	require.NoError(t, frame.AddCategorical("education", []string{"a", "b", "c"}))

	values, features, err := attrib.NewEngine().Attributions(context.Background(), model, frame)
	require.NoError(t, err)

	// Only numeric columns are attributed, in frame order
	assert.Equal(t, []string{"age", "income"}, features)
	require.Len(t, values, 3)

	// The mean row attributes zero for age; zero-weight income is always zero
	assert.InDelta(t, 0, values[1][0], 1e-9)
	for _, row := range values {
		assert.InDelta(t, 0, row[1], 1e-9)
	}
	// Off-mean rows move the prediction
	assert.NotZero(t, values[0][0])
	assert.NotZero(t, values[2][0])
}

func TestEngineUnsupportedModel(t *testing.T) {
	frame := schema.NewFrame()
	require.NoError(t, frame.AddNumeric("age", []float64{1, 2}))

	_, _, err := attrib.NewEngine().Attributions(context.Background(), "not a model", frame)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnsupportedModel)
}

func TestEngineInputErrors(t *testing.T) {
	model := &attrib.LinearModel{Weights: map[string]float64{"age": 1}}

	empty := schema.NewFrame()
	_, _, err := attrib.NewEngine().Attributions(context.Background(), model, empty)
	assert.ErrorIs(t, err, schema.ErrInputValidation)

	noNumeric := schema.NewFrame()
	require.NoError(t, noNumeric.AddCategorical("education", []string{"a"}))
	_, _, err = attrib.NewEngine().Attributions(context.Background(), model, noNumeric)
	assert.ErrorIs(t, err, schema.ErrInputValidation)
}

func TestEngineHonorsContext(t *testing.T) {
	model := &attrib.LinearModel{Weights: map[string]float64{"age": 1}}
	frame := schema.NewFrame()
	require.NoError(t, frame.AddNumeric("age", []float64{1, 2, 3}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := attrib.NewEngine().Attributions(ctx, model, frame)
	assert.ErrorIs(t, err, context.Canceled)
}
