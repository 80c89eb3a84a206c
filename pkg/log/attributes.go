package log

// Standard attribute keys for pipeline log records. Hierarchical names
// ("dataset.rows", "metrics.rmse") keep runs filterable and comparable
// in log tooling.

// Run and component context.
const (
	// RunIDKey carries the unique identifier of a pipeline run.
	RunIDKey = "run.id"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "dataset", "preprocessing", "evaluation"
	ComponentKey = "ml.component"

	// OperationKey specifies the operation being performed.
	// Standard values: "load", "split", "fit", "predict", "evaluate"
	OperationKey = "ml.operation"

	// ModelNameKey identifies the regression model in use.
	// Examples: "LinearRegression", "TreeRegressor"
	ModelNameKey = "model.name"
)

// Dataset shape.
const (
	// RowsKey is the number of rows in the dataset.
	RowsKey = "dataset.rows"

	// ColumnsKey is the number of retained columns.
	ColumnsKey = "dataset.columns"

	// FeaturesKey is the number of encoded feature columns.
	FeaturesKey = "dataset.features"

	// TargetKey is the name of the target column.
	TargetKey = "dataset.target"

	// DroppedKey lists the columns excluded before modeling.
	DroppedKey = "dataset.dropped"
)

// Split shape.
const (
	// SplitRatioKey is the training fraction of the split.
	SplitRatioKey = "split.ratio"

	// SplitSeedKey is the seed used to shuffle rows.
	SplitSeedKey = "split.seed"

	// TrainRowsKey is the number of training rows.
	TrainRowsKey = "split.train_rows"

	// EvalRowsKey is the number of evaluation rows.
	EvalRowsKey = "split.eval_rows"
)

// Evaluation results.
const (
	// MSEKey is the mean squared error of a run.
	MSEKey = "metrics.mse"

	// RMSEKey is the root mean squared error of a run.
	RMSEKey = "metrics.rmse"

	// R2Key is the coefficient of determination of a run.
	R2Key = "metrics.r2"

	// DurationMsKey records the execution time of an operation in
	// milliseconds.
	DurationMsKey = "perf.duration_ms"
)
