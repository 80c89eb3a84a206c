// Package modelselection partitions row indices into training and
// evaluation subsets. All shuffling is PCG-seeded so a run is reproducible
// given its seed.
package modelselection

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/tabeval/pkg/errors"
)

// MinRows is the smallest dataset that can be split into two non-empty
// subsets.
const MinRows = 2

// Split is a partition of row indices: disjoint, and together covering
// every row of the source dataset.
type Split struct {
	TrainIndices []int
	EvalIndices  []int
}

// TrainTestSplit shuffles the indices 0..nRows-1 with a PCG generator
// seeded from seed and assigns round(nRows*ratio) of them to training and
// the remainder to evaluation. Both subsets are always non-empty.
func TrainTestSplit(nRows int, ratio float64, seed int) (Split, error) {
	if ratio <= 0 || ratio >= 1 {
		return Split{}, errors.NewValueError("TrainTestSplit", "ratio must be in (0, 1)")
	}
	if nRows < MinRows {
		return Split{}, errors.NewInsufficientDataError(nRows, MinRows)
	}

	indices := make([]int, nRows)
	for i := range indices {
		indices[i] = i
	}
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	r.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	nTrain := int(math.Round(float64(nRows) * ratio))
	// Keep both sides non-empty at the extremes of rounding.
	if nTrain < 1 {
		nTrain = 1
	}
	if nTrain > nRows-1 {
		nTrain = nRows - 1
	}

	train := make([]int, nTrain)
	copy(train, indices[:nTrain])
	eval := make([]int, nRows-nTrain)
	copy(eval, indices[nTrain:])

	return Split{TrainIndices: train, EvalIndices: eval}, nil
}

// KFold is a seeded k-fold splitter.
type KFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed int
}

// Fold holds the train/eval partition of a single fold.
type Fold struct {
	TrainIndices []int
	EvalIndices  []int
}

// NewKFold creates a k-fold splitter. Fewer than 2 splits falls back to 5.
func NewKFold(nSplits int, shuffle bool, randomSeed int) *KFold {
	if nSplits < 2 {
		nSplits = 5
	}
	return &KFold{
		NSplits:    nSplits,
		Shuffle:    shuffle,
		RandomSeed: randomSeed,
	}
}

// Split partitions 0..nRows-1 into NSplits folds. Fold sizes differ by at
// most one row.
func (kf *KFold) Split(nRows int) ([]Fold, error) {
	if nRows < kf.NSplits {
		return nil, errors.NewInsufficientDataError(nRows, kf.NSplits)
	}

	indices := make([]int, nRows)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(kf.RandomSeed), uint64(kf.RandomSeed)))
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NSplits)
	foldSize := nRows / kf.NSplits
	remainder := nRows % kf.NSplits

	currentIdx := 0
	for i := 0; i < kf.NSplits; i++ {
		evalSize := foldSize
		if i < remainder {
			evalSize++
		}

		evalIndices := make([]int, evalSize)
		copy(evalIndices, indices[currentIdx:currentIdx+evalSize])

		inEval := make(map[int]bool, evalSize)
		for _, idx := range evalIndices {
			inEval[idx] = true
		}
		trainIndices := make([]int, 0, nRows-evalSize)
		for _, idx := range indices {
			if !inEval[idx] {
				trainIndices = append(trainIndices, idx)
			}
		}

		folds[i] = Fold{
			TrainIndices: trainIndices,
			EvalIndices:  evalIndices,
		}
		currentIdx += evalSize
	}

	return folds, nil
}
