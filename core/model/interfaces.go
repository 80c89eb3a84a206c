// Package model provides the estimator interfaces and shared base types
// that the concrete regressors and transformers build on.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Estimator is the interface for models that learn from data.
type Estimator interface {
	// Fit trains the estimator on X (n_samples × n_features) and
	// y (n_samples × 1).
	Fit(X, y mat.Matrix) error

	// IsFitted reports whether Fit has completed successfully.
	IsFitted() bool
}

// Predictor is the interface for models that produce predictions.
type Predictor interface {
	// Predict returns an n_samples × 1 matrix of predictions for X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the coefficient of determination R² of the prediction.
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor combines the interfaces a regression model must satisfy.
type Regressor interface {
	Estimator
	Predictor
	Scorer
}

// Transformer is the interface for feature transformations that are fitted
// on training data and then applied to any row set.
type Transformer interface {
	// Fit learns the transformation parameters from X.
	Fit(X mat.Matrix) error

	// Transform applies the fitted transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// FeatureRanker is the interface for models that expose per-feature
// importance scores. Higher means more influential.
type FeatureRanker interface {
	// FeatureImportances returns one non-negative score per input feature.
	FeatureImportances() []float64
}
