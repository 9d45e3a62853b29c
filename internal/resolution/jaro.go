package resolution

import (
	"github.com/antzucaro/matchr"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

// jaroWinklerAverages returns, per row, the mean Jaro-Winkler similarity
// between the row's value and every row holding a different value. Rows with
// an identical value, the row itself included, are left out of the average;
// exact-duplicate blocks therefore do not score each other. A row with no
// differing peers scores 0. Runs in O(N²) comparisons.
func jaroWinklerAverages(values []table.Value) []float64 {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = v.String()
	}

	out := make([]float64, len(strs))
	for i, x := range strs {
		var sum float64
		var count int
		for _, y := range strs {
			if x == y {
				continue
			}
			sum += matchr.JaroWinkler(x, y, false)
			count++
		}
		if count > 0 {
			out[i] = sum / float64(count)
		}
	}
	return out
}
