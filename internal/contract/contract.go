// Package contract holds the validated runtime configuration and the
// shared interfaces that wire the analytics engine to its collaborators.
package contract

import (
	"context"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// AttributionEngine computes per-instance, per-feature attribution values
// for a model over a sample frame. Implementations return one attribution
// row per sample row, with columns matching the returned feature names.
// Models the engine cannot explain yield schema.ErrUnsupportedModel.
type AttributionEngine interface {
	Attributions(ctx context.Context, model any, sample *schema.Frame) (values [][]float64, features []string, err error)
}

// ObservationStore is an append-only log of prediction events for one
// monitored model. Window returns the most recent limit observations in
// insertion order; limit <= 0 means all of them.
type ObservationStore interface {
	Append(obs schema.Observation) error
	Window(limit int) ([]schema.Observation, error)
	Count() (int64, error)
	Status() (schema.StoreStatus, error)
	Close() error
}

// Predictor scores a single instance from named numeric feature values.
// The default attribution engine works against this interface, which keeps
// it agnostic of how the model was trained or loaded.
type Predictor interface {
	Predict(features map[string]float64) float64
}
