// Package tree implements a CART regression tree with variance-reduction
// splits. It is the tree-based alternative to the linear model; which one a
// pipeline uses is a configuration choice.
package tree

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tabeval/core/model"
	"github.com/YuminosukeSato/tabeval/pkg/errors"
)

// Regressor is a CART-style regression tree. Splits minimize the weighted
// sum of child variances.
type Regressor struct {
	model.BaseEstimator

	// Hyperparameters
	MaxDepth       int // maximum depth, root at 0; -1 means no limit
	MinSamplesLeaf int // minimum rows required in each leaf

	root        *node
	nFeatures   int
	importances []float64 // accumulated variance reduction per feature
}

type node struct {
	isLeaf    bool
	feature   int
	threshold float64 // x <= threshold goes left
	left      *node
	right     *node
	value     float64 // leaf prediction: mean target of its rows
}

// NewRegressor creates a regression tree with default hyperparameters.
func NewRegressor() *Regressor {
	return &Regressor{
		MaxDepth:       -1,
		MinSamplesLeaf: 1,
	}
}

// WithMaxDepth sets the maximum tree depth.
func (t *Regressor) WithMaxDepth(d int) *Regressor {
	t.MaxDepth = d
	return t
}

// WithMinSamplesLeaf sets the minimum number of rows per leaf.
func (t *Regressor) WithMinSamplesLeaf(n int) *Regressor {
	t.MinSamplesLeaf = n
	return t
}

// Fit grows the tree on X (n_samples × n_features) and y (n_samples × 1).
func (t *Regressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("tree.Regressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("tree.Regressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("tree.Regressor.Fit", "y must be a column vector")
	}
	if t.MinSamplesLeaf < 1 {
		return errors.NewValueError("tree.Regressor.Fit", "MinSamplesLeaf must be at least 1")
	}

	t.nFeatures = c
	t.importances = make([]float64, c)

	indices := make([]int, r)
	for i := range indices {
		indices[i] = i
	}
	t.root = t.grow(X, y, indices, 0)

	t.SetFitted()
	return nil
}

func (t *Regressor) grow(X, y mat.Matrix, indices []int, depth int) *node {
	mean := targetMean(y, indices)

	if len(indices) < 2*t.MinSamplesLeaf {
		return &node{isLeaf: true, value: mean}
	}
	if t.MaxDepth >= 0 && depth >= t.MaxDepth {
		return &node{isLeaf: true, value: mean}
	}

	parentSSE := targetSSE(y, indices, mean)
	if parentSSE == 0 {
		// Node is already pure.
		return &node{isLeaf: true, value: mean}
	}

	feature, threshold, gain := t.bestSplit(X, y, indices, parentSSE)
	if gain <= 0 {
		return &node{isLeaf: true, value: mean}
	}

	var left, right []int
	for _, idx := range indices {
		if X.At(idx, feature) <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}

	t.importances[feature] += gain

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      t.grow(X, y, left, depth+1),
		right:     t.grow(X, y, right, depth+1),
	}
}

// bestSplit scans every feature for the threshold with the largest
// reduction in sum of squared errors.
func (t *Regressor) bestSplit(X, y mat.Matrix, indices []int, parentSSE float64) (int, float64, float64) {
	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	n := len(indices)
	order := make([]int, n)

	for feature := 0; feature < t.nFeatures; feature++ {
		copy(order, indices)
		sort.Slice(order, func(a, b int) bool {
			return X.At(order[a], feature) < X.At(order[b], feature)
		})

		// Prefix sums over the sorted order allow O(1) variance updates.
		var leftSum, leftSq float64
		var totalSum, totalSq float64
		for _, idx := range order {
			v := y.At(idx, 0)
			totalSum += v
			totalSq += v * v
		}

		for i := 0; i < n-1; i++ {
			v := y.At(order[i], 0)
			leftSum += v
			leftSq += v * v

			cur := X.At(order[i], feature)
			next := X.At(order[i+1], feature)
			if cur == next {
				continue
			}

			nLeft := i + 1
			nRight := n - nLeft
			if nLeft < t.MinSamplesLeaf || nRight < t.MinSamplesLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			leftSSE := leftSq - leftSum*leftSum/float64(nLeft)
			rightSSE := rightSq - rightSum*rightSum/float64(nRight)

			gain := parentSSE - leftSSE - rightSSE
			if gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = (cur + next) / 2
			}
		}
	}

	return bestFeature, bestThreshold, bestGain
}

// Predict returns the leaf mean for each row of X.
func (t *Regressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("tree.Regressor", "Predict")
	}

	r, c := X.Dims()
	if c != t.nFeatures {
		return nil, errors.NewDimensionError("tree.Regressor.Predict", t.nFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		n := t.root
		for !n.isLeaf {
			if X.At(i, n.feature) <= n.threshold {
				n = n.left
			} else {
				n = n.right
			}
		}
		predictions.Set(i, 0, n.value)
	}

	return predictions, nil
}

// Score returns the coefficient of determination R² on the given data.
func (t *Regressor) Score(X, y mat.Matrix) (float64, error) {
	if !t.IsFitted() {
		return 0, errors.NewNotFittedError("tree.Regressor", "Score")
	}

	yPred, err := t.Predict(X)
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
		diff := yTrue - yPred.At(i, 0)
		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += diff * diff
	}

	if tss == 0 {
		return 0, errors.NewDegenerateTargetError("tree.Regressor.Score", r, yMean)
	}
	return 1 - rss/tss, nil
}

// FeatureImportances returns the normalized variance reduction attributed
// to each feature. The scores sum to 1 when any split happened.
func (t *Regressor) FeatureImportances() []float64 {
	out := make([]float64, len(t.importances))
	copy(out, t.importances)

	var total float64
	for _, v := range out {
		total += v
	}
	if total > 0 {
		for i := range out {
			out[i] /= total
		}
	}
	return out
}

// Depth returns the depth of the fitted tree, 0 for a single leaf.
func (t *Regressor) Depth() int {
	return depthOf(t.root)
}

func depthOf(n *node) int {
	if n == nil || n.isLeaf {
		return 0
	}
	return 1 + int(math.Max(float64(depthOf(n.left)), float64(depthOf(n.right))))
}

func targetMean(y mat.Matrix, indices []int) float64 {
	var sum float64
	for _, idx := range indices {
		sum += y.At(idx, 0)
	}
	return sum / float64(len(indices))
}

func targetSSE(y mat.Matrix, indices []int, mean float64) float64 {
	var sse float64
	for _, idx := range indices {
		diff := y.At(idx, 0) - mean
		sse += diff * diff
	}
	return sse
}
