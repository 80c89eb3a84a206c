package evaluation

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tabeval/dataset"
	"github.com/YuminosukeSato/tabeval/modelselection"
	"github.com/YuminosukeSato/tabeval/pkg/errors"
	"github.com/YuminosukeSato/tabeval/preprocessing"
)

// DesignMatrices holds the encoded feature matrices and target vectors of
// one split, row order matching the split's index order.
type DesignMatrices struct {
	XTrain *mat.Dense
	YTrain *mat.Dense
	XEval  *mat.Dense
	YEval  *mat.Dense

	// FeatureNames names the columns of XTrain/XEval: numeric columns
	// first (by dataset order), then one-hot slots.
	FeatureNames []string

	// Encoder is the fitted categorical encoder, exposed so callers can
	// reuse it on new rows.
	Encoder *preprocessing.OneHotEncoder
}

// BuildDesignMatrices encodes a dataset into feature/target matrices for
// the given split. Numeric and count columns pass through; categorical
// columns are one-hot encoded with the encoder fitted on training rows
// only, so evaluation-only categories land in the unknown bucket.
func BuildDesignMatrices(ds *dataset.Dataset, target string, split modelselection.Split) (*DesignMatrices, error) {
	if !ds.HasColumn(target) {
		return nil, errors.NewSchemaError(target, -1, "", "target column not present in dataset")
	}

	y, err := ds.Numeric(target)
	if err != nil {
		return nil, errors.Wrap(err, "read target column")
	}

	var numericNames []string
	var categoricalNames []string
	for _, col := range ds.Columns() {
		if col.Name == target {
			continue
		}
		if col.Type == dataset.Categorical {
			categoricalNames = append(categoricalNames, col.Name)
		} else {
			numericNames = append(numericNames, col.Name)
		}
	}

	numericCols := make([][]float64, len(numericNames))
	for i, name := range numericNames {
		values, err := ds.Numeric(name)
		if err != nil {
			return nil, errors.Wrap(err, "read numeric column")
		}
		numericCols[i] = values
	}

	categoricalCols := make([][]string, len(categoricalNames))
	for i, name := range categoricalNames {
		values, err := ds.Strings(name)
		if err != nil {
			return nil, errors.Wrap(err, "read categorical column")
		}
		categoricalCols[i] = values
	}

	encoder := preprocessing.NewOneHotEncoder(categoricalNames...)

	var encTrain, encEval *mat.Dense
	if len(categoricalNames) > 0 {
		if err := encoder.Fit(subsetColumns(categoricalCols, split.TrainIndices)); err != nil {
			return nil, errors.Wrap(err, "fit encoder on training rows")
		}
		encTrain, err = encoder.Transform(subsetColumns(categoricalCols, split.TrainIndices))
		if err != nil {
			return nil, errors.Wrap(err, "encode training rows")
		}
		encEval, err = encoder.Transform(subsetColumns(categoricalCols, split.EvalIndices))
		if err != nil {
			return nil, errors.Wrap(err, "encode evaluation rows")
		}
	}

	names := make([]string, 0, len(numericNames))
	names = append(names, numericNames...)
	if len(categoricalNames) > 0 {
		names = append(names, encoder.FeatureNames()...)
	}

	dm := &DesignMatrices{
		XTrain:       assemble(numericCols, encTrain, split.TrainIndices),
		YTrain:       column(y, split.TrainIndices),
		XEval:        assemble(numericCols, encEval, split.EvalIndices),
		YEval:        column(y, split.EvalIndices),
		FeatureNames: names,
		Encoder:      encoder,
	}
	return dm, nil
}

// subsetColumns picks the rows at indices from each column.
func subsetColumns(columns [][]string, indices []int) [][]string {
	out := make([][]string, len(columns))
	for j, col := range columns {
		sub := make([]string, len(indices))
		for i, idx := range indices {
			sub[i] = col[idx]
		}
		out[j] = sub
	}
	return out
}

// assemble concatenates the numeric columns (subset to indices) with the
// already-encoded categorical block.
func assemble(numericCols [][]float64, encoded *mat.Dense, indices []int) *mat.Dense {
	nRows := len(indices)
	encWidth := 0
	if encoded != nil {
		_, encWidth = encoded.Dims()
	}
	width := len(numericCols) + encWidth

	out := mat.NewDense(nRows, width, nil)
	for i, idx := range indices {
		for j, col := range numericCols {
			out.Set(i, j, col[idx])
		}
		for j := 0; j < encWidth; j++ {
			out.Set(i, len(numericCols)+j, encoded.At(i, j))
		}
	}
	return out
}

// column extracts the rows at indices as an n×1 matrix.
func column(values []float64, indices []int) *mat.Dense {
	out := mat.NewDense(len(indices), 1, nil)
	for i, idx := range indices {
		out.Set(i, 0, values[idx])
	}
	return out
}
