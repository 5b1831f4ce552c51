// Package attrib provides the default attribution engine: a model-agnostic
// perturbation method that scores each numeric feature by how much the
// prediction moves when the feature is replaced with its sample mean.
package attrib

import (
	"context"
	"fmt"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// Engine implements contract.AttributionEngine for any model that
// implements contract.Predictor.
type Engine struct{}

var _ contract.AttributionEngine = &Engine{} // Compile-time check

// NewEngine creates a perturbation attribution engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Attributions computes one attribution row per sample row over the
// sample's numeric columns. Each attribution is the prediction delta when
// the feature is reset to its column mean, so features the model ignores
// attribute exactly zero.
func (e *Engine) Attributions(ctx context.Context, model any, sample *schema.Frame) ([][]float64, []string, error) {
	predictor, ok := model.(contract.Predictor)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %T does not implement the Predictor interface", schema.ErrUnsupportedModel, model)
	}
	if sample.Len() == 0 {
		return nil, nil, fmt.Errorf("%w: sample frame is empty", schema.ErrInputValidation)
	}

	var features []string
	for _, name := range sample.Names() {
		if _, ok := sample.Floats(name); ok {
			features = append(features, name)
		}
	}
	if len(features) == 0 {
		return nil, nil, fmt.Errorf("%w: sample has no numeric columns", schema.ErrInputValidation)
	}

	means := make(map[string]float64, len(features))
	for _, name := range features {
		col, _ := sample.Floats(name)
		var sum float64
		for _, v := range col {
			sum += v
		}
		means[name] = sum / float64(len(col))
	}

	values := make([][]float64, sample.Len())
	for row := 0; row < sample.Len(); row++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		instance := make(map[string]float64, len(features))
		for _, name := range features {
			col, _ := sample.Floats(name)
			instance[name] = col[row]
		}
		base := predictor.Predict(instance)

		attributions := make([]float64, len(features))
		for j, name := range features {
			original := instance[name]
			instance[name] = means[name]
			attributions[j] = base - predictor.Predict(instance)
			instance[name] = original
		}
		values[row] = attributions
	}
	return values, features, nil
}
