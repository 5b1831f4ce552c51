package schema

import (
	"fmt"
	"strconv"
)

// Column holds the values of a single feature. Exactly one of Floats or
// Strings is populated, which is also how a column's kind is determined.
type Column struct {
	Name    string    `json:"name"`
	Floats  []float64 `json:"floats,omitempty"`
	Strings []string  `json:"strings,omitempty"`
}

// Kind returns the feature kind implied by the populated slice.
func (c *Column) Kind() FeatureKind {
	if c.Strings != nil {
		return CategoricalKind
	}
	return NumericalKind
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	if c.Strings != nil {
		return len(c.Strings)
	}
	return len(c.Floats)
}

// Frame is a column-oriented dataset. All columns share one length, and
// column order is the insertion order. Analyzers treat frames as immutable;
// use Clone before mutating a frame that has been handed to an analyzer.
type Frame struct {
	rows  int
	order []string
	cols  map[string]*Column
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{cols: make(map[string]*Column)}
}

// AddNumeric appends a numeric column. The first column fixes the row count.
func (f *Frame) AddNumeric(name string, values []float64) error {
	return f.add(&Column{Name: name, Floats: values})
}

// AddCategorical appends a categorical column.
func (f *Frame) AddCategorical(name string, values []string) error {
	return f.add(&Column{Name: name, Strings: values})
}

func (f *Frame) add(col *Column) error {
	if col.Name == "" {
		return fmt.Errorf("%w: column name is empty", ErrInputValidation)
	}
	if _, ok := f.cols[col.Name]; ok {
		return fmt.Errorf("%w: duplicate column %q", ErrInputValidation, col.Name)
	}
	if len(f.order) > 0 && col.Len() != f.rows {
		return fmt.Errorf("%w: column %q has %d values, frame has %d rows",
			ErrInputValidation, col.Name, col.Len(), f.rows)
	}
	f.rows = col.Len()
	f.order = append(f.order, col.Name)
	f.cols[col.Name] = col
	return nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return f.rows
}

// Names returns the column names in insertion order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Has reports whether the frame contains the named column.
func (f *Frame) Has(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.cols[name]
	return ok
}

// Column returns the named column.
func (f *Frame) Column(name string) (*Column, bool) {
	if f == nil {
		return nil, false
	}
	c, ok := f.cols[name]
	return c, ok
}

// Floats returns the named column's numeric values, or false if the column
// is absent or categorical.
func (f *Frame) Floats(name string) ([]float64, bool) {
	c, ok := f.Column(name)
	if !ok || c.Floats == nil {
		return nil, false
	}
	return c.Floats, true
}

// Strings returns the named column's categorical values, or false if the
// column is absent or numeric.
func (f *Frame) Strings(name string) ([]string, bool) {
	c, ok := f.Column(name)
	if !ok || c.Strings == nil {
		return nil, false
	}
	return c.Strings, true
}

// Labels returns the named column's values rendered as strings. Numeric
// columns are formatted with strconv so they can serve as group labels.
func (f *Frame) Labels(name string) ([]string, bool) {
	c, ok := f.Column(name)
	if !ok {
		return nil, false
	}
	if c.Strings != nil {
		return c.Strings, true
	}
	out := make([]string, len(c.Floats))
	for i, v := range c.Floats {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out, true
}

// Select returns a new frame containing only the given row indices, in
// order. Indices must be in range.
func (f *Frame) Select(indices []int) *Frame {
	out := NewFrame()
	for _, name := range f.order {
		c := f.cols[name]
		if c.Strings != nil {
			vals := make([]string, len(indices))
			for i, idx := range indices {
				vals[i] = c.Strings[idx]
			}
			_ = out.AddCategorical(name, vals)
			continue
		}
		vals := make([]float64, len(indices))
		for i, idx := range indices {
			vals[i] = c.Floats[idx]
		}
		_ = out.AddNumeric(name, vals)
	}
	return out
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	out := NewFrame()
	for _, name := range f.order {
		c := f.cols[name]
		if c.Strings != nil {
			vals := make([]string, len(c.Strings))
			copy(vals, c.Strings)
			_ = out.AddCategorical(name, vals)
			continue
		}
		vals := make([]float64, len(c.Floats))
		copy(vals, c.Floats)
		_ = out.AddNumeric(name, vals)
	}
	return out
}
