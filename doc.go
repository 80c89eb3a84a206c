// Package tabeval evaluates regression models on typed tabular datasets.
//
// The library covers the three stages of a tabular evaluation run: loading
// and validating a CSV against a declared schema, encoding the columns into
// a feature matrix with a seeded train/evaluation split, and fitting a
// regression model whose held-out accuracy is reported as MSE, RMSE, and R².
//
// # Quick Start
//
// Declare a schema, load a CSV, and run the pipeline:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/tabeval/core/model"
//	    "github.com/YuminosukeSato/tabeval/dataset"
//	    "github.com/YuminosukeSato/tabeval/evaluation"
//	    "github.com/YuminosukeSato/tabeval/linear"
//	)
//
//	func main() {
//	    schema := dataset.Schema{Columns: []dataset.Column{
//	        {Name: "age", Type: dataset.Numeric},
//	        {Name: "gender", Type: dataset.Categorical},
//	        {Name: "avg_hours", Type: dataset.Numeric},
//	    }}
//
//	    ds, err := dataset.NewLoader(schema).ReadCSVFile("screentime.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pipeline := evaluation.NewPipeline("avg_hours", func() model.Regressor {
//	        return linear.NewRegression()
//	    })
//	    result, err := pipeline.Run(ds)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("RMSE=%.4f R²=%.4f\n", result.Report.RMSE, result.Report.R2)
//	}
//
// # Packages
//
//   - dataset: schema-validated CSV loading with numeric, categorical, and
//     count column types
//   - preprocessing: one-hot encoding with a reserved slot for categories
//     unseen during fitting
//   - modelselection: seeded train/test splitting and k-fold iteration
//   - linear: least-squares regression with optional ridge regularization
//   - tree: CART-style regression tree with variance-reduction splits
//   - metrics: MSE, RMSE, MAE, and R²
//   - evaluation: the end-to-end pipeline, feature-importance ranking, and
//     cross-validation
//   - core/model: estimator interfaces, fitted-state tracking, and model
//     export/import
//
// Runs with the same seed, split ratio, and data produce identical metrics.
//
// # License
//
// tabeval is released under the MIT License.
package tabeval
