// Package preprocessing provides feature encoders that are fitted on
// training rows and then applied to arbitrary row sets.
package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tabeval/core/model"
	"github.com/YuminosukeSato/tabeval/pkg/errors"
)

// OneHotEncoder encodes categorical columns as indicator vectors.
//
// The encoding is fixed at Fit time: each column gets one slot per category
// seen during Fit, in first-seen order, plus one reserved unknown slot at
// the end. A category that appears only at Transform time maps to the
// unknown slot and never fails, so an encoder fitted on training rows can
// safely transform evaluation rows it has never seen.
type OneHotEncoder struct {
	model.BaseEstimator

	// ColumnNames are the encoded columns, in input order.
	ColumnNames []string

	categories []map[string]int // per column: category -> slot index
	order      [][]string       // per column: categories in slot order
}

// NewOneHotEncoder creates an encoder for the named columns.
func NewOneHotEncoder(columnNames ...string) *OneHotEncoder {
	return &OneHotEncoder{ColumnNames: columnNames}
}

// Fit learns the category set of each column from training rows.
// columns[i] holds the values of ColumnNames[i]; all columns must have the
// same length.
func (e *OneHotEncoder) Fit(columns [][]string) error {
	if len(columns) != len(e.ColumnNames) {
		return errors.NewDimensionError("OneHotEncoder.Fit", len(e.ColumnNames), len(columns), 1)
	}
	if len(columns) == 0 {
		e.SetFitted()
		return nil
	}

	nRows := len(columns[0])
	if nRows == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	e.categories = make([]map[string]int, len(columns))
	e.order = make([][]string, len(columns))

	for j, col := range columns {
		if len(col) != nRows {
			return errors.NewDimensionError("OneHotEncoder.Fit", nRows, len(col), 0)
		}
		e.categories[j] = make(map[string]int)
		for _, v := range col {
			if _, seen := e.categories[j][v]; !seen {
				e.categories[j][v] = len(e.order[j])
				e.order[j] = append(e.order[j], v)
			}
		}
	}

	e.SetFitted()
	return nil
}

// Transform encodes the given columns with the fitted category sets.
// The result has one row per input row and NumFeatures columns.
func (e *OneHotEncoder) Transform(columns [][]string) (*mat.Dense, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	if len(columns) != len(e.ColumnNames) {
		return nil, errors.NewDimensionError("OneHotEncoder.Transform", len(e.ColumnNames), len(columns), 1)
	}
	if len(columns) == 0 {
		return nil, errors.NewModelError("OneHotEncoder.Transform", "no columns to encode", errors.ErrEmptyData)
	}

	nRows := len(columns[0])
	for _, col := range columns {
		if len(col) != nRows {
			return nil, errors.NewDimensionError("OneHotEncoder.Transform", nRows, len(col), 0)
		}
	}

	out := mat.NewDense(nRows, e.NumFeatures(), nil)
	for i := 0; i < nRows; i++ {
		offset := 0
		for j, col := range columns {
			width := e.columnWidth(j)
			slot, seen := e.categories[j][col[i]]
			if !seen {
				// Reserved unknown bucket is the last slot.
				slot = width - 1
				errors.Warn(errors.NewUnknownCategoryWarning(e.ColumnNames[j], col[i]))
			}
			out.Set(i, offset+slot, 1.0)
			offset += width
		}
	}

	return out, nil
}

// FitTransform fits the encoder and transforms the same columns.
func (e *OneHotEncoder) FitTransform(columns [][]string) (*mat.Dense, error) {
	if err := e.Fit(columns); err != nil {
		return nil, err
	}
	return e.Transform(columns)
}

// NumFeatures returns the width of the encoded matrix: per column, one
// slot per fitted category plus the unknown slot.
func (e *OneHotEncoder) NumFeatures() int {
	total := 0
	for j := range e.order {
		total += e.columnWidth(j)
	}
	return total
}

// columnWidth is the encoded width of column j, unknown slot included.
func (e *OneHotEncoder) columnWidth(j int) int {
	return len(e.order[j]) + 1
}

// FeatureNames returns one name per encoded column, in matrix order, e.g.
// "gender=Male" and "gender=<unknown>".
func (e *OneHotEncoder) FeatureNames() []string {
	names := make([]string, 0, e.NumFeatures())
	for j, column := range e.ColumnNames {
		for _, category := range e.order[j] {
			names = append(names, column+"="+category)
		}
		names = append(names, column+"=<unknown>")
	}
	return names
}

// Categories returns the fitted categories of the named column in slot
// order, without the unknown slot.
func (e *OneHotEncoder) Categories(column string) []string {
	for j, name := range e.ColumnNames {
		if name == column {
			out := make([]string, len(e.order[j]))
			copy(out, e.order[j])
			return out
		}
	}
	return nil
}
