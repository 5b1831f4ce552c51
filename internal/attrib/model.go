package attrib

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// LinearModel is a logistic scorer over named numeric features, loadable
// from a JSON file. It stands in for externally trained classifiers in the
// CLI and demos.
type LinearModel struct {
	Weights   map[string]float64 `json:"weights"`
	Intercept float64            `json:"intercept"`
}

// Predict returns the positive-class probability for one instance.
// Features without a weight contribute nothing.
func (m *LinearModel) Predict(features map[string]float64) float64 {
	z := m.Intercept
	for name, w := range m.Weights {
		z += w * features[name]
	}
	return 1 / (1 + math.Exp(-z))
}

// LoadLinearModel reads a LinearModel from a JSON file.
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	var model LinearModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("%w: failed to parse model file %q: %v", schema.ErrInputValidation, path, err)
	}
	if len(model.Weights) == 0 {
		return nil, fmt.Errorf("%w: model file %q declares no weights", schema.ErrInputValidation, path)
	}
	return &model, nil
}
