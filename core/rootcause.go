package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// RootCauseAnalyzer attributes detected drift to individual features by
// comparing the model's mean absolute attribution between a baseline sample
// and a current sample. Attribution is an optional capability: any engine
// failure degrades to an unavailable report rather than an error, so drift
// detection never depends on explainability.
type RootCauseAnalyzer struct {
	cfg    *contract.Config
	engine contract.AttributionEngine
}

// NewRootCauseAnalyzer creates an analyzer around an attribution engine.
// A nil engine yields unavailable reports for every call.
func NewRootCauseAnalyzer(cfg *contract.Config, engine contract.AttributionEngine) *RootCauseAnalyzer {
	if cfg == nil {
		cfg = contract.DefaultConfig()
	}
	return &RootCauseAnalyzer{cfg: cfg, engine: engine}
}

// ExplainDrift samples both frames, runs the attribution engine on each
// sample, and ranks features by the change in mean absolute attribution.
func (r *RootCauseAnalyzer) ExplainDrift(ctx context.Context, model any, baseline, current *schema.Frame) (*schema.AttributionDriftReport, error) {
	if baseline.Len() == 0 || current.Len() == 0 {
		return nil, fmt.Errorf("%w: baseline and current frames must be non-empty", schema.ErrInputValidation)
	}
	if r.engine == nil {
		return schema.UnavailableRootCause("no attribution engine configured"), nil
	}
	if model == nil {
		return schema.UnavailableRootCause("no model attached"), nil
	}

	rng := rand.New(rand.NewSource(r.cfg.Seed))
	baseSample := r.sample(baseline, rng)
	curSample := r.sample(current, rng)

	baseVals, baseFeats, err := r.engine.Attributions(ctx, model, baseSample)
	if err != nil {
		return schema.UnavailableRootCause(attributionFailure(err)), nil
	}
	curVals, curFeats, err := r.engine.Attributions(ctx, model, curSample)
	if err != nil {
		return schema.UnavailableRootCause(attributionFailure(err)), nil
	}
	if len(baseFeats) != len(curFeats) {
		return schema.UnavailableRootCause("attribution features differ between baseline and current samples"), nil
	}
	for i := range baseFeats {
		if baseFeats[i] != curFeats[i] {
			return schema.UnavailableRootCause("attribution features differ between baseline and current samples"), nil
		}
	}

	baseMean := meanAbsByFeature(baseVals, len(baseFeats))
	curMean := meanAbsByFeature(curVals, len(curFeats))

	features := make([]schema.AttributionDrift, len(baseFeats))
	for i, name := range baseFeats {
		features[i] = schema.AttributionDrift{
			Feature:         name,
			BaselineMeanAbs: baseMean[i],
			CurrentMeanAbs:  curMean[i],
			Delta:           curMean[i] - baseMean[i],
		}
	}
	sort.SliceStable(features, func(i, j int) bool {
		di, dj := math.Abs(features[i].Delta), math.Abs(features[j].Delta)
		if di != dj {
			return di > dj
		}
		return features[i].Feature < features[j].Feature
	})

	topK := r.cfg.TopK
	if topK > len(features) {
		topK = len(features)
	}
	top := make([]string, topK)
	for i := range top {
		top[i] = features[i].Feature
	}

	sampleSize := baseSample.Len()
	if curSample.Len() < sampleSize {
		sampleSize = curSample.Len()
	}
	return &schema.AttributionDriftReport{
		Available:   true,
		SampleSize:  sampleSize,
		Features:    features,
		TopFeatures: top,
	}, nil
}

// sample draws a seeded subsample of at most cfg.SampleSize rows. Frames
// below the bound are used whole, with a warning.
func (r *RootCauseAnalyzer) sample(frame *schema.Frame, rng *rand.Rand) *schema.Frame {
	if frame.Len() <= r.cfg.SampleSize {
		if frame.Len() < r.cfg.SampleSize {
			contract.LogWarn("attribution sample",
				fmt.Errorf("frame has %d rows, below the configured sample size %d", frame.Len(), r.cfg.SampleSize))
		}
		return frame
	}
	perm := rng.Perm(frame.Len())[:r.cfg.SampleSize]
	sort.Ints(perm)
	return frame.Select(perm)
}

// attributionFailure renders an engine error as a report reason.
func attributionFailure(err error) string {
	if errors.Is(err, schema.ErrUnsupportedModel) {
		return fmt.Sprintf("attribution unavailable: %v", err)
	}
	return fmt.Sprintf("attribution failed: %v", err)
}

// meanAbsByFeature averages |attribution| per feature column.
func meanAbsByFeature(values [][]float64, featureCount int) []float64 {
	out := make([]float64, featureCount)
	if len(values) == 0 {
		return out
	}
	for _, row := range values {
		for j := 0; j < featureCount && j < len(row); j++ {
			out[j] += math.Abs(row[j])
		}
	}
	for j := range out {
		out[j] /= float64(len(values))
	}
	return out
}
