// Command tabeval runs the tabular regression evaluation pipeline from the
// command line. The library stages (dataset, modelselection, evaluation)
// carry the actual logic; this binary is glue around them.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/tabeval/core/model"
	"github.com/YuminosukeSato/tabeval/dataset"
	"github.com/YuminosukeSato/tabeval/evaluation"
	"github.com/YuminosukeSato/tabeval/internal/config"
	"github.com/YuminosukeSato/tabeval/linear"
	"github.com/YuminosukeSato/tabeval/pkg/log"
	"github.com/YuminosukeSato/tabeval/tree"
)

var (
	cfgFile string
	cfg     *config.Run
)

var rootCmd = &cobra.Command{
	Use:   "tabeval",
	Short: "Evaluate a regression model on a tabular dataset",
	Long: `tabeval loads a typed tabular dataset, one-hot encodes categorical
predictors, splits rows into training and evaluation subsets with a fixed
seed, fits the configured regression model, and reports MSE, RMSE, and R²
plus ranked feature importances.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		log.SetupLogger(cfg.LogLevel)
		log.InstallWarningBridge()
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one load → split → evaluate pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}

		pipeline := evaluation.NewPipeline(cfg.Target, newModel)
		pipeline.SplitRatio = cfg.SplitRatio
		pipeline.Seed = cfg.Seed

		result, err := pipeline.Run(ds)
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}

var cvCmd = &cobra.Command{
	Use:   "crossvalidate",
	Short: "Run seeded k-fold cross-validation",
	RunE: func(cmd *cobra.Command, args []string) error {
		folds, err := cmd.Flags().GetInt("folds")
		if err != nil {
			return err
		}

		ds, err := loadDataset()
		if err != nil {
			return err
		}

		result, err := evaluation.CrossValidate(ds, cfg.Target, newModel, folds, cfg.Seed)
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}

func loadDataset() (*dataset.Dataset, error) {
	schema, err := cfg.Schema()
	if err != nil {
		return nil, err
	}
	loader := dataset.NewLoader(schema, cfg.Drop...)
	return loader.ReadCSVFile(cfg.DataPath)
}

func newModel() model.Regressor {
	if cfg.Model == "tree" {
		return tree.NewRegressor().
			WithMaxDepth(cfg.TreeMaxDepth).
			WithMinSamplesLeaf(cfg.TreeMinSamplesLeaf)
	}
	return linear.NewRegression()
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); env vars with prefix TABEVAL_ override")
	cvCmd.Flags().Int("folds", 5, "number of cross-validation folds")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(cvCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
