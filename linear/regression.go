// Package linear implements ordinary least squares regression via the
// normal equations.
package linear

import (
	"io"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tabeval/core/model"
	"github.com/YuminosukeSato/tabeval/pkg/errors"
)

// Regression is an ordinary least squares model solved through the normal
// equations, w = (XᵀX + λI)⁻¹ Xᵀy. The default λ is a tiny ridge term that
// keeps the system solvable when feature blocks are collinear, as with a
// full one-hot encoding next to an intercept; set WithRidge(0) for exact
// OLS on full-rank inputs.
type Regression struct {
	model.BaseEstimator

	weights        *mat.VecDense
	intercept      float64
	nFeatures      int
	fitIntercept   bool
	regularization float64
}

// DefaultRidge is the default λ of the normal equations.
const DefaultRidge = 1e-9

// NewRegression creates a linear regression model.
func NewRegression(opts ...Option) *Regression {
	lr := &Regression{fitIntercept: true, regularization: DefaultRidge}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit solves the normal equations for X (n_samples × n_features) and
// y (n_samples × 1).
func (lr *Regression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("Regression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("Regression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("Regression.Fit", "y must be a column vector")
	}

	lr.nFeatures = c

	// Prepend a ones column for the intercept term.
	nCols := c
	if lr.fitIntercept {
		nCols = c + 1
	}
	design := mat.NewDense(r, nCols, nil)
	for i := 0; i < r; i++ {
		offset := 0
		if lr.fitIntercept {
			design.Set(i, 0, 1.0)
			offset = 1
		}
		for j := 0; j < c; j++ {
			design.Set(i, j+offset, X.At(i, j))
		}
	}

	var xt mat.Dense
	xt.CloneFrom(design.T())

	var xtx mat.Dense
	xtx.Mul(&xt, design)

	if lr.regularization > 0 {
		// The intercept row is left unpenalized.
		start := 0
		if lr.fitIntercept {
			start = 1
		}
		for j := start; j < nCols; j++ {
			xtx.Set(j, j, xtx.At(j, j)+lr.regularization)
		}
	}

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return errors.NewModelError("Regression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var xty mat.VecDense
	xty.MulVec(&xt, yVec)

	solution := mat.NewVecDense(nCols, nil)
	solution.MulVec(&xtxInv, &xty)

	if lr.fitIntercept {
		lr.intercept = solution.AtVec(0)
		lr.weights = mat.NewVecDense(c, nil)
		for i := 0; i < c; i++ {
			lr.weights.SetVec(i, solution.AtVec(i+1))
		}
	} else {
		lr.intercept = 0
		lr.weights = mat.NewVecDense(c, nil)
		for i := 0; i < c; i++ {
			lr.weights.SetVec(i, solution.AtVec(i))
		}
	}

	lr.SetFitted()
	return nil
}

// Predict returns ŷ = X·w + b as an n_samples × 1 matrix.
func (lr *Regression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("Regression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.nFeatures {
		return nil, errors.NewDimensionError("Regression.Predict", lr.nFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := lr.intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}

	return predictions, nil
}

// Score returns the coefficient of determination R² on the given data.
func (lr *Regression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("Regression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()

	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.At(i, 0)
		yPredVal := yPred.At(i, 0)

		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += (yTrue - yPredVal) * (yTrue - yPredVal)
	}

	if tss == 0 {
		return 0, errors.NewDegenerateTargetError("Regression.Score", r, yMean)
	}

	return 1 - rss/tss, nil
}

// Coefficients returns the fitted weights, one per feature.
func (lr *Regression) Coefficients() []float64 {
	if lr.weights == nil {
		return nil
	}
	out := make([]float64, lr.weights.Len())
	for i := 0; i < lr.weights.Len(); i++ {
		out[i] = lr.weights.AtVec(i)
	}
	return out
}

// Intercept returns the fitted intercept.
func (lr *Regression) Intercept() float64 {
	return lr.intercept
}

// FeatureImportances returns the absolute value of each coefficient.
func (lr *Regression) FeatureImportances() []float64 {
	coefs := lr.Coefficients()
	for i, c := range coefs {
		coefs[i] = math.Abs(c)
	}
	return coefs
}

// params is the JSON shape of a fitted model.
type params struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	NFeatures    int       `json:"n_features"`
	FitIntercept bool      `json:"fit_intercept"`
}

// Export writes the fitted parameters as JSON.
func (lr *Regression) Export(w io.Writer) error {
	if !lr.IsFitted() {
		return errors.NewNotFittedError("Regression", "Export")
	}
	return model.Export(w, "Regression", params{
		Coefficients: lr.Coefficients(),
		Intercept:    lr.intercept,
		NFeatures:    lr.nFeatures,
		FitIntercept: lr.fitIntercept,
	})
}

// Import restores fitted parameters previously written by Export.
func (lr *Regression) Import(r io.Reader) error {
	var p params
	if err := model.Import(r, "Regression", &p); err != nil {
		return err
	}
	lr.nFeatures = p.NFeatures
	lr.intercept = p.Intercept
	lr.fitIntercept = p.FitIntercept
	lr.weights = mat.NewVecDense(len(p.Coefficients), p.Coefficients)
	lr.SetFitted()
	return nil
}
