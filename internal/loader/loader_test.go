package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/loader"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleCSV = `age,income,gender,prediction
25,30000,M,1
40,52000,F,0
61,48000,F,1
`

func TestReadCSV(t *testing.T) {
	table, err := loader.ReadCSV(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"age", "income", "gender", "prediction"}, table.Names())
	assert.True(t, table.Has("gender"))
	assert.False(t, table.Has("race"))

	values, ok := table.Column("gender")
	require.True(t, ok)
	assert.Equal(t, []string{"M", "F", "F"}, values)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := loader.ReadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = loader.ReadCSV(writeCSV(t, "age,income\n"))
	assert.ErrorIs(t, err, schema.ErrInputValidation, "header-only file")

	_, err = loader.ReadCSV(writeCSV(t, "age,age\n1,2\n"))
	assert.ErrorIs(t, err, schema.ErrInputValidation, "duplicate column")

	_, err = loader.ReadCSV(writeCSV(t, "age,income\n25\n"))
	assert.Error(t, err, "ragged row")
}

func TestFrameWithDeclaredSchema(t *testing.T) {
	table, err := loader.ReadCSV(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	frame, effective, err := table.Frame(schema.FeatureSchema{
		Numerical:   []string{"age", "income"},
		Categorical: []string{"gender"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "income"}, effective.Numerical)
	assert.Equal(t, []string{"gender"}, effective.Categorical)
	assert.Equal(t, 3, frame.Len())

	ages, ok := frame.Floats("age")
	require.True(t, ok)
	assert.Equal(t, []float64{25, 40, 61}, ages)
}

func TestFrameDegradesUnparsableNumeric(t *testing.T) {
	table, err := loader.ReadCSV(writeCSV(t, "age,gender\ntwenty,M\nforty,F\n"))
	require.NoError(t, err)

	frame, effective, err := table.Frame(schema.FeatureSchema{Numerical: []string{"age"}})
	require.NoError(t, err, "a non-numeric column degrades instead of failing")

	assert.Empty(t, effective.Numerical)
	assert.Equal(t, []string{"age"}, effective.Categorical)
	labels, ok := frame.Strings("age")
	require.True(t, ok)
	assert.Equal(t, []string{"twenty", "forty"}, labels)
}

func TestFrameMissingColumn(t *testing.T) {
	table, err := loader.ReadCSV(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	_, _, err = table.Frame(schema.FeatureSchema{Numerical: []string{"height"}})
	assert.ErrorIs(t, err, schema.ErrInputValidation)

	_, _, err = table.Frame(schema.FeatureSchema{Categorical: []string{"race"}})
	assert.ErrorIs(t, err, schema.ErrInputValidation)
}

func TestFrameInference(t *testing.T) {
	table, err := loader.ReadCSV(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	frame, effective, err := table.Frame(schema.FeatureSchema{})
	require.NoError(t, err)

	// prediction parses as floats, so inference types it numerical
	assert.Equal(t, []string{"age", "income", "prediction"}, effective.Numerical)
	assert.Equal(t, []string{"gender"}, effective.Categorical)
	assert.Equal(t, []string{"age", "income", "gender", "prediction"}, frame.Names())
}

func TestIntColumn(t *testing.T) {
	table, err := loader.ReadCSV(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	labels, err := table.IntColumn("prediction")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, labels)

	_, err = table.IntColumn("outcome")
	assert.ErrorIs(t, err, schema.ErrInputValidation)

	_, err = table.IntColumn("gender")
	assert.ErrorIs(t, err, schema.ErrInputValidation)
}

func TestIntColumnAcceptsFloatLabels(t *testing.T) {
	table, err := loader.ReadCSV(writeCSV(t, "label\n1.0\n0.0\n"))
	require.NoError(t, err)

	labels, err := table.IntColumn("label")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, labels)

	bad, err := loader.ReadCSV(writeCSV(t, "label\n0.5\n"))
	require.NoError(t, err)
	_, err = bad.IntColumn("label")
	assert.ErrorIs(t, err, schema.ErrInputValidation)
}

func TestIntColumnRejectsNonBinary(t *testing.T) {
	table, err := loader.ReadCSV(writeCSV(t, "label\n2\n"))
	require.NoError(t, err)
	_, err = table.IntColumn("label")
	assert.ErrorIs(t, err, schema.ErrInputValidation)
}
