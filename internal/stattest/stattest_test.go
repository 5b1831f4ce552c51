package stattest_test

import (
	"testing"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/stattest"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformSeq(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

func TestKolmogorovSmirnovIdenticalSamples(t *testing.T) {
	sample := uniformSeq(20, 60, 500)

	d, p, err := stattest.KolmogorovSmirnov(sample, sample)
	require.NoError(t, err)
	assert.Zero(t, d)
	assert.Equal(t, 1.0, p)
}

func TestKolmogorovSmirnovDisjointSamples(t *testing.T) {
	x := uniformSeq(0, 1, 200)
	y := uniformSeq(10, 11, 200)

	d, p, err := stattest.KolmogorovSmirnov(x, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)
	assert.Less(t, p, 0.001)
}

func TestKolmogorovSmirnovShiftedSamples(t *testing.T) {
	x := uniformSeq(20, 60, 500)
	y := uniformSeq(30, 70, 500)

	d, p, err := stattest.KolmogorovSmirnov(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, d, 0.02)
	assert.Less(t, p, 0.05)
}

func TestKolmogorovSmirnovEmptySample(t *testing.T) {
	_, _, err := stattest.KolmogorovSmirnov(nil, []float64{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrInsufficientData)
}

func TestChiSquareGOFMatchingDistribution(t *testing.T) {
	observed := []float64{100, 200, 300}
	expected := []float64{10, 20, 30} // Same proportions at a different scale

	chi, p, err := stattest.ChiSquareGOF(observed, expected)
	require.NoError(t, err)
	assert.Zero(t, chi)
	assert.Equal(t, 1.0, p)
}

func TestChiSquareGOFShiftedDistribution(t *testing.T) {
	observed := []float64{300, 100, 100}
	expected := []float64{100, 100, 300}

	chi, p, err := stattest.ChiSquareGOF(observed, expected)
	require.NoError(t, err)
	assert.Greater(t, chi, 0.0)
	assert.Less(t, p, 0.001)
}

func TestChiSquareGOFErrors(t *testing.T) {
	tests := []struct {
		name     string
		observed []float64
		expected []float64
		sentinel error
	}{
		{"length mismatch", []float64{1, 2}, []float64{1}, schema.ErrInputValidation},
		{"single category", []float64{5}, []float64{5}, schema.ErrInsufficientData},
		{"all zero observed", []float64{0, 0}, []float64{1, 1}, schema.ErrInsufficientData},
		{"zero expected cell", []float64{5, 5}, []float64{10, 0}, schema.ErrInsufficientData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := stattest.ChiSquareGOF(tt.observed, tt.expected)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestQuantileEdges(t *testing.T) {
	values := uniformSeq(0, 100, 1001)

	edges := stattest.QuantileEdges(values, 10)
	require.Len(t, edges, 11)
	assert.Equal(t, 0.0, edges[0])
	assert.Equal(t, 100.0, edges[10])
	assert.InDelta(t, 50.0, edges[5], 0.5)

	// Edges must be strictly increasing
	for i := 1; i < len(edges); i++ {
		assert.Greater(t, edges[i], edges[i-1])
	}
}

func TestQuantileEdgesConstantSample(t *testing.T) {
	values := []float64{5, 5, 5, 5, 5}
	assert.Nil(t, stattest.QuantileEdges(values, 10), "constant sample cannot be binned")
	assert.Nil(t, stattest.QuantileEdges(nil, 10))
}
