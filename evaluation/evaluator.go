// Package evaluation composes the pipeline stages: it turns a validated
// Dataset into feature and target matrices, partitions rows, fits a
// regressor, and reports error metrics. Stages are explicit values passed
// between functions; there is no hidden global state, so independent runs
// may execute concurrently.
package evaluation

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tabeval/core/model"
	"github.com/YuminosukeSato/tabeval/metrics"
	"github.com/YuminosukeSato/tabeval/pkg/errors"
)

// Report holds the error metrics of one evaluation run. It is a value,
// complete and immutable once returned.
type Report struct {
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// Evaluate fits reg on the training pair and scores it on the evaluation
// pair. It returns a DegenerateTargetError and no Report when the
// evaluation target has zero variance.
func Evaluate(reg model.Regressor, XTrain, yTrain, XEval, yEval mat.Matrix) (Report, error) {
	if err := reg.Fit(XTrain, yTrain); err != nil {
		return Report{}, errors.Wrap(err, "fit regressor")
	}

	yPred, err := reg.Predict(XEval)
	if err != nil {
		return Report{}, errors.Wrap(err, "predict evaluation rows")
	}

	yEvalVec, err := metrics.ColumnVec("Evaluate", yEval)
	if err != nil {
		return Report{}, err
	}
	yPredVec, err := metrics.ColumnVec("Evaluate", yPred)
	if err != nil {
		return Report{}, err
	}

	mse, err := metrics.MSE(yEvalVec, yPredVec)
	if err != nil {
		return Report{}, err
	}
	rmse, err := metrics.RMSE(yEvalVec, yPredVec)
	if err != nil {
		return Report{}, err
	}
	r2, err := metrics.R2Score(yEvalVec, yPredVec)
	if err != nil {
		// Zero-variance evaluation target: surface immediately, no Report.
		return Report{}, err
	}

	return Report{MSE: mse, RMSE: rmse, R2: r2}, nil
}
