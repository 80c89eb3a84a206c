package evaluation

import (
	"sort"

	"github.com/YuminosukeSato/tabeval/core/model"
	"github.com/YuminosukeSato/tabeval/pkg/errors"
)

// FeatureImportance pairs an encoded feature column with its importance
// score.
type FeatureImportance struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// RankImportances returns the fitted model's feature importances paired
// with their column names, sorted by descending score. Models that do not
// expose importances yield an empty ranking.
func RankImportances(names []string, reg model.Regressor) ([]FeatureImportance, error) {
	ranker, ok := reg.(model.FeatureRanker)
	if !ok {
		return nil, nil
	}

	scores := ranker.FeatureImportances()
	if len(scores) != len(names) {
		return nil, errors.NewDimensionError("RankImportances", len(names), len(scores), 1)
	}

	out := make([]FeatureImportance, len(names))
	for i := range names {
		out[i] = FeatureImportance{Name: names[i], Score: scores[i]}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	return out, nil
}
