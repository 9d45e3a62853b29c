package resolution

import (
	"log/slog"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

// similarityMatrix is a dense row-major N×N matrix. It is built for one
// attribute at a time and dropped once its row sums are taken, so peak memory
// is O(N²) floats; this bounds practical inputs to the low tens of thousands
// of rows.
type similarityMatrix struct {
	n    int
	data []float64
}

func (m *similarityMatrix) at(i, j int) float64 {
	return m.data[i*m.n+j]
}

// cosineMatrix computes all-pairs cosine similarity with a zeroed diagonal
func cosineMatrix(vectors []sparseVector) *similarityMatrix {
	n := len(vectors)
	m := &similarityMatrix{n: n, data: make([]float64, n*n)}

	norms := make([]float64, n)
	for i, v := range vectors {
		norms[i] = v.norm()
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if norms[i] == 0 || norms[j] == 0 {
				continue
			}
			sim := vectors[i].dot(vectors[j]) / (norms[i] * norms[j])
			m.data[i*n+j] = sim
			m.data[j*n+i] = sim
		}
	}
	return m
}

// rowSums returns, per row, the total similarity to every other row
func (m *similarityMatrix) rowSums() []float64 {
	sums := make([]float64, m.n)
	for i := 0; i < m.n; i++ {
		var s float64
		for j := 0; j < m.n; j++ {
			s += m.at(i, j)
		}
		sums[i] = s
	}
	return sums
}

// columnSimilarity vectorizes one textual column and returns its row sums
func columnSimilarity(tbl *table.Table, column string) ([]float64, error) {
	docs, err := preprocessColumn(tbl, column)
	if err != nil {
		return nil, err
	}

	vec, vectors := fitTransform(docs)
	slog.Debug("Vectorized column", "column", column, "rows", len(docs), "vocabulary", len(vec.vocabulary))

	return cosineMatrix(vectors).rowSums(), nil
}

// averageCosineSimilarity is the unweighted mean, across textual columns, of
// each row's summed similarity to the rest of the table. The result is a
// ranking score: it grows with row count and is not bounded by 1.
func averageCosineSimilarity(tbl *table.Table, columns []string) ([]float64, error) {
	if len(columns) == 0 {
		return nil, &DataQualityError{Reason: "table has no textual columns to compare"}
	}

	avg := make([]float64, tbl.Len())
	for _, column := range columns {
		sums, err := columnSimilarity(tbl, column)
		if err != nil {
			return nil, err
		}
		for i, s := range sums {
			avg[i] += s
		}
	}

	for i := range avg {
		avg[i] /= float64(len(columns))
	}
	return avg, nil
}
