package evaluation

import (
	"math"

	"github.com/YuminosukeSato/tabeval/core/model"
	"github.com/YuminosukeSato/tabeval/dataset"
	"github.com/YuminosukeSato/tabeval/modelselection"
)

// CVResult summarizes per-fold reports of a cross-validation run.
type CVResult struct {
	Folds    []Report `json:"folds"`
	MeanRMSE float64  `json:"mean_rmse"`
	StdRMSE  float64  `json:"std_rmse"`
	MeanR2   float64  `json:"mean_r2"`
}

// CrossValidate evaluates a fresh model on each of k seeded folds. The
// encoder is refitted on each fold's training rows, so no fold leaks
// evaluation categories into its encoding.
func CrossValidate(ds *dataset.Dataset, target string, newModel func() model.Regressor, k, seed int) (*CVResult, error) {
	kf := modelselection.NewKFold(k, true, seed)
	folds, err := kf.Split(ds.NumRows())
	if err != nil {
		return nil, err
	}

	result := &CVResult{Folds: make([]Report, 0, len(folds))}
	for _, fold := range folds {
		split := modelselection.Split{
			TrainIndices: fold.TrainIndices,
			EvalIndices:  fold.EvalIndices,
		}
		dm, err := BuildDesignMatrices(ds, target, split)
		if err != nil {
			return nil, err
		}

		report, err := Evaluate(newModel(), dm.XTrain, dm.YTrain, dm.XEval, dm.YEval)
		if err != nil {
			return nil, err
		}
		result.Folds = append(result.Folds, report)
	}

	var sumRMSE, sumR2 float64
	for _, r := range result.Folds {
		sumRMSE += r.RMSE
		sumR2 += r.R2
	}
	n := float64(len(result.Folds))
	result.MeanRMSE = sumRMSE / n
	result.MeanR2 = sumR2 / n

	var varRMSE float64
	for _, r := range result.Folds {
		diff := r.RMSE - result.MeanRMSE
		varRMSE += diff * diff
	}
	result.StdRMSE = math.Sqrt(varRMSE / n)

	return result, nil
}
