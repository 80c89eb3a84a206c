// Package dataset loads and validates tabular data for the evaluation
// pipeline. A Dataset is constructed once from a source, holds only the
// retained columns, and is immutable afterwards.
package dataset

import (
	"github.com/YuminosukeSato/tabeval/pkg/errors"
)

// ColumnType declares the semantic type of a column.
type ColumnType int

const (
	// Numeric is a real-valued column.
	Numeric ColumnType = iota
	// Categorical is a string-valued column with a small set of levels.
	Categorical
	// Count is a non-negative integer column.
	Count
)

// String returns the name of the column type.
func (t ColumnType) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Count:
		return "count"
	default:
		return "unknown"
	}
}

// Column is a named, typed column declaration.
type Column struct {
	Name string
	Type ColumnType
}

// Schema is the ordered set of columns a source is required to provide.
type Schema struct {
	Columns []Column
}

// Column returns the declaration for name, if present.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Dataset is an immutable columnar table. Every retained column holds
// exactly NumRows values, in source order.
type Dataset struct {
	columns []Column
	numeric map[string][]float64
	labels  map[string][]string
	nRows   int
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int {
	return d.nRows
}

// Columns returns the retained column declarations in order.
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// HasColumn reports whether the dataset retains a column with this name.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.column(name)
	return ok
}

// Column returns the declaration of a retained column by name.
func (d *Dataset) Column(name string) (Column, bool) {
	return d.column(name)
}

func (d *Dataset) column(name string) (Column, bool) {
	for _, c := range d.columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Numeric returns a copy of the values of a numeric or count column.
func (d *Dataset) Numeric(name string) ([]float64, error) {
	col, ok := d.column(name)
	if !ok {
		return nil, errors.NewSchemaError(name, -1, "", "column not present in dataset")
	}
	if col.Type == Categorical {
		return nil, errors.NewValueError("Dataset.Numeric", "column "+name+" is categorical")
	}
	values := d.numeric[name]
	out := make([]float64, len(values))
	copy(out, values)
	return out, nil
}

// Strings returns a copy of the values of a categorical column.
func (d *Dataset) Strings(name string) ([]string, error) {
	col, ok := d.column(name)
	if !ok {
		return nil, errors.NewSchemaError(name, -1, "", "column not present in dataset")
	}
	if col.Type != Categorical {
		return nil, errors.NewValueError("Dataset.Strings", "column "+name+" is not categorical")
	}
	values := d.labels[name]
	out := make([]string, len(values))
	copy(out, values)
	return out, nil
}
