// Package config loads run configuration for the tabeval CLI.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/YuminosukeSato/tabeval/dataset"
	"github.com/YuminosukeSato/tabeval/pkg/errors"
)

// Run is the configuration of one evaluation run.
type Run struct {
	// DataPath is the CSV file to load.
	DataPath string `mapstructure:"data_path"`

	// Target is the numeric column to predict.
	Target string `mapstructure:"target"`

	// Columns declares the schema as name:type pairs, in column order.
	// Types: numeric, categorical, count.
	Columns []string `mapstructure:"columns"`

	// Drop lists columns validated on input but excluded from modeling.
	Drop []string `mapstructure:"drop"`

	// Model selects the regression algorithm: "linear" or "tree".
	Model string `mapstructure:"model"`

	// SplitRatio is the training fraction, in (0, 1).
	SplitRatio float64 `mapstructure:"split_ratio"`

	// Seed drives the row shuffle.
	Seed int `mapstructure:"seed"`

	// TreeMaxDepth bounds the tree model's depth; -1 means no limit.
	TreeMaxDepth int `mapstructure:"tree_max_depth"`

	// TreeMinSamplesLeaf is the tree model's minimum rows per leaf.
	TreeMinSamplesLeaf int `mapstructure:"tree_min_samples_leaf"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration with precedence env > config file > defaults.
// cfgFile may be empty, in which case only env and defaults apply.
func Load(cfgFile string) (*Run, error) {
	v := viper.New()
	v.SetEnvPrefix("TABEVAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so every
	// field must be bound explicitly or env-only configuration breaks.
	for _, key := range []string{
		"data_path", "target", "columns", "drop", "model",
		"split_ratio", "seed", "tree_max_depth", "tree_min_samples_leaf",
		"log_level",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrap(err, "bind env key")
		}
	}

	v.SetDefault("model", "linear")
	v.SetDefault("split_ratio", 0.8)
	v.SetDefault("seed", 42)
	v.SetDefault("tree_max_depth", -1)
	v.SetDefault("tree_min_samples_leaf", 1)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	var run Run
	if err := v.Unmarshal(&run); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}
	return &run, nil
}

// Schema parses the Columns declarations into a dataset schema.
func (r *Run) Schema() (dataset.Schema, error) {
	if len(r.Columns) == 0 {
		return dataset.Schema{}, errors.NewValueError("config", "columns must declare at least one column")
	}

	schema := dataset.Schema{Columns: make([]dataset.Column, 0, len(r.Columns))}
	for _, decl := range r.Columns {
		name, typeName, found := strings.Cut(decl, ":")
		if !found || name == "" {
			return dataset.Schema{}, errors.NewValueError("config", "column declaration must be name:type, got "+decl)
		}

		var colType dataset.ColumnType
		switch typeName {
		case "numeric":
			colType = dataset.Numeric
		case "categorical":
			colType = dataset.Categorical
		case "count":
			colType = dataset.Count
		default:
			return dataset.Schema{}, errors.NewValueError("config", "unknown column type "+typeName)
		}
		schema.Columns = append(schema.Columns, dataset.Column{Name: name, Type: colType})
	}
	return schema, nil
}

// Validate checks cross-field constraints that viper cannot express.
func (r *Run) Validate() error {
	if r.SplitRatio <= 0 || r.SplitRatio >= 1 {
		return errors.NewValueError("config", "split_ratio must be in (0, 1)")
	}
	switch r.Model {
	case "linear", "tree":
	default:
		return errors.NewValueError("config", "model must be \"linear\" or \"tree\"")
	}
	switch r.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.NewValueError("config", "log_level must be one of debug, info, warn, error")
	}
	return nil
}
