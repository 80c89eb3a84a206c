package evaluation

import (
	"time"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/tabeval/core/model"
	"github.com/YuminosukeSato/tabeval/dataset"
	"github.com/YuminosukeSato/tabeval/modelselection"
	"github.com/YuminosukeSato/tabeval/pkg/errors"
	"github.com/YuminosukeSato/tabeval/pkg/log"
)

// Pipeline runs the three stages end to end: design-matrix construction
// from a loaded Dataset, seeded row splitting, and model evaluation.
// A Pipeline holds only configuration; each Run builds its own
// intermediate values, so one Pipeline may serve concurrent runs.
type Pipeline struct {
	// Target is the name of the numeric target column.
	Target string

	// SplitRatio is the training fraction, in (0, 1).
	SplitRatio float64

	// Seed drives the row shuffle; equal seeds reproduce the run exactly.
	Seed int

	// NewModel constructs a fresh regressor per run.
	NewModel func() model.Regressor

	logger log.Logger
}

// NewPipeline creates a pipeline with the given target and an 80/20 split.
func NewPipeline(target string, newModel func() model.Regressor) *Pipeline {
	return &Pipeline{
		Target:     target,
		SplitRatio: 0.8,
		Seed:       42,
		NewModel:   newModel,
		logger:     log.GetLoggerWithName("evaluation"),
	}
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID       string              `json:"run_id"`
	Report      Report              `json:"report"`
	Importances []FeatureImportance `json:"importances,omitempty"`
	TrainRows   int                 `json:"train_rows"`
	EvalRows    int                 `json:"eval_rows"`
	NumFeatures int                 `json:"num_features"`
}

// Run executes Loader output → Split → Evaluate on the given dataset.
// Errors from any stage are terminal for the run; the computation is
// deterministic, so nothing is retried.
func (p *Pipeline) Run(ds *dataset.Dataset) (*Result, error) {
	if p.NewModel == nil {
		return nil, errors.NewValueError("Pipeline.Run", "NewModel is not configured")
	}
	if p.logger == nil {
		p.logger = log.GetLoggerWithName("evaluation")
	}

	runID := uuid.NewString()
	logger := p.logger.With(log.RunIDKey, runID)
	started := time.Now()

	split, err := modelselection.TrainTestSplit(ds.NumRows(), p.SplitRatio, p.Seed)
	if err != nil {
		logger.Error("split failed", err, log.OperationKey, "split")
		return nil, err
	}
	logger.Info("rows partitioned",
		log.OperationKey, "split",
		log.SplitRatioKey, p.SplitRatio,
		log.SplitSeedKey, p.Seed,
		log.TrainRowsKey, len(split.TrainIndices),
		log.EvalRowsKey, len(split.EvalIndices),
	)

	dm, err := BuildDesignMatrices(ds, p.Target, split)
	if err != nil {
		logger.Error("feature encoding failed", err, log.OperationKey, "encode")
		return nil, err
	}

	reg := p.NewModel()
	report, err := Evaluate(reg, dm.XTrain, dm.YTrain, dm.XEval, dm.YEval)
	if err != nil {
		logger.Error("evaluation failed", err, log.OperationKey, "evaluate")
		return nil, err
	}

	importances, err := RankImportances(dm.FeatureNames, reg)
	if err != nil {
		return nil, err
	}

	logger.Info("evaluation complete",
		log.OperationKey, "evaluate",
		log.TargetKey, p.Target,
		log.FeaturesKey, len(dm.FeatureNames),
		log.MSEKey, report.MSE,
		log.RMSEKey, report.RMSE,
		log.R2Key, report.R2,
		log.DurationMsKey, time.Since(started).Milliseconds(),
	)

	return &Result{
		RunID:       runID,
		Report:      report,
		Importances: importances,
		TrainRows:   len(split.TrainIndices),
		EvalRows:    len(split.EvalIndices),
		NumFeatures: len(dm.FeatureNames),
	}, nil
}

// WithLogger replaces the pipeline's logger. Used by tests to capture the
// run log.
func (p *Pipeline) WithLogger(logger log.Logger) *Pipeline {
	p.logger = logger
	return p
}
