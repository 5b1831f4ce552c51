// Package loader reads CSV datasets into analysis frames. Column typing
// follows the declared feature schema when one is given and falls back to
// per-column float inference otherwise.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// Table holds one parsed CSV file as raw string columns.
type Table struct {
	header  []string
	columns map[string][]string
	rows    int
}

// ReadCSV parses a headered CSV file. Every record must match the header
// width; encoding/csv enforces that.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %q: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: dataset %q needs a header and at least one row", schema.ErrInputValidation, path)
	}

	header := records[0]
	columns := make(map[string][]string, len(header))
	for i, name := range header {
		if name == "" {
			return nil, fmt.Errorf("%w: dataset %q has an empty column name", schema.ErrInputValidation, path)
		}
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("%w: dataset %q repeats column %q", schema.ErrInputValidation, path, name)
		}
		values := make([]string, 0, len(records)-1)
		for _, record := range records[1:] {
			values = append(values, record[i])
		}
		columns[name] = values
	}
	return &Table{header: header, columns: columns, rows: len(records) - 1}, nil
}

// Len returns the row count.
func (t *Table) Len() int {
	return t.rows
}

// Names returns the column names in file order.
func (t *Table) Names() []string {
	return append([]string(nil), t.header...)
}

// Has reports whether the table carries the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns the raw values of one column.
func (t *Table) Column(name string) ([]string, bool) {
	values, ok := t.columns[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), values...), true
}

// Frame converts the table to an analysis frame. With a non-empty feature
// schema only the declared columns are taken; a declared-numerical column
// that fails to parse degrades to categorical with a warning, and the
// returned schema reflects the effective typing. With an empty schema every
// column is taken and typed by float inference.
func (t *Table) Frame(features schema.FeatureSchema) (*schema.Frame, schema.FeatureSchema, error) {
	if features.IsEmpty() {
		return t.inferFrame()
	}

	frame := schema.NewFrame()
	var effective schema.FeatureSchema
	for _, name := range features.Numerical {
		values, ok := t.columns[name]
		if !ok {
			return nil, schema.FeatureSchema{}, fmt.Errorf("%w: dataset is missing numerical column %q", schema.ErrInputValidation, name)
		}
		floats, err := parseFloats(values)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("column %q treated as categorical", name), err)
			if err := frame.AddCategorical(name, values); err != nil {
				return nil, schema.FeatureSchema{}, err
			}
			effective.Categorical = append(effective.Categorical, name)
			continue
		}
		if err := frame.AddNumeric(name, floats); err != nil {
			return nil, schema.FeatureSchema{}, err
		}
		effective.Numerical = append(effective.Numerical, name)
	}
	for _, name := range features.Categorical {
		values, ok := t.columns[name]
		if !ok {
			return nil, schema.FeatureSchema{}, fmt.Errorf("%w: dataset is missing categorical column %q", schema.ErrInputValidation, name)
		}
		if err := frame.AddCategorical(name, values); err != nil {
			return nil, schema.FeatureSchema{}, err
		}
		effective.Categorical = append(effective.Categorical, name)
	}
	return frame, effective, nil
}

// inferFrame types every column by whether all its values parse as floats.
func (t *Table) inferFrame() (*schema.Frame, schema.FeatureSchema, error) {
	frame := schema.NewFrame()
	var effective schema.FeatureSchema
	for _, name := range t.header {
		values := t.columns[name]
		if floats, err := parseFloats(values); err == nil {
			if err := frame.AddNumeric(name, floats); err != nil {
				return nil, schema.FeatureSchema{}, err
			}
			effective.Numerical = append(effective.Numerical, name)
			continue
		}
		if err := frame.AddCategorical(name, values); err != nil {
			return nil, schema.FeatureSchema{}, err
		}
		effective.Categorical = append(effective.Categorical, name)
	}
	return frame, effective, nil
}

// IntColumn parses one column as binary labels for prediction and ground
// truth columns.
func (t *Table) IntColumn(name string) ([]int, error) {
	values, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: dataset is missing label column %q", schema.ErrInputValidation, name)
	}
	out := make([]int, len(values))
	for i, v := range values {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			// Demo datasets sometimes carry labels as floats
			f, ferr := strconv.ParseFloat(v, 64)
			if ferr != nil || f != float64(int(f)) {
				return nil, fmt.Errorf("%w: column %q row %d value %q is not an integer label", schema.ErrInputValidation, name, i, v)
			}
			parsed = int(f)
		}
		if parsed != 0 && parsed != 1 {
			return nil, fmt.Errorf("%w: column %q row %d must be 0 or 1 (received %d)", schema.ErrInputValidation, name, i, parsed)
		}
		out[i] = parsed
	}
	return out, nil
}

// parseFloats converts a raw column, failing on the first non-numeric value.
func parseFloats(values []string) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d value %q is not numeric", i, v)
		}
		out[i] = f
	}
	return out, nil
}
