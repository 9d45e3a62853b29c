// Package prepare inspects and trims tables before scoring.
package prepare

import (
	"fmt"
	"log/slog"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

// DefaultDropThreshold is the missing-value fraction above which a column is dropped
const DefaultDropThreshold = 0.6

// DropSparseColumns returns a table without the columns whose fraction of
// missing values is strictly greater than threshold, plus the dropped names.
// An empty table is returned unchanged.
func DropSparseColumns(tbl *table.Table, threshold float64) (*table.Table, []string, error) {
	if threshold < 0 || threshold > 1 {
		return nil, nil, fmt.Errorf("drop threshold must be within [0, 1], got %v", threshold)
	}
	if tbl.Empty() {
		return tbl, nil, nil
	}

	var drop []string
	for _, name := range tbl.Columns() {
		values, err := tbl.Values(name)
		if err != nil {
			return nil, nil, err
		}
		if missingFraction(values) > threshold {
			drop = append(drop, name)
		}
	}

	slog.Info("Dropped sparse columns", "threshold", threshold, "dropped", drop)
	return tbl.Without(drop...), drop, nil
}

func missingFraction(values []table.Value) float64 {
	if len(values) == 0 {
		return 0
	}
	missing := 0
	for _, v := range values {
		if v.IsNull() {
			missing++
		}
	}
	return float64(missing) / float64(len(values))
}
