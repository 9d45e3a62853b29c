package resolution

import (
	"math"
	"sort"
	"strings"
)

const (
	minNgram = 1
	maxNgram = 3
)

// termWeight is one non-zero entry of a sparse row vector
type termWeight struct {
	term   int
	weight float64
}

// sparseVector is sorted by term index
type sparseVector []termWeight

// dot assumes both vectors are sorted by term
func (a sparseVector) dot(b sparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].term == b[j].term:
			sum += a[i].weight * b[j].weight
			i++
			j++
		case a[i].term < b[j].term:
			i++
		default:
			j++
		}
	}
	return sum
}

func (a sparseVector) norm() float64 {
	var sum float64
	for _, tw := range a {
		sum += tw.weight * tw.weight
	}
	return math.Sqrt(sum)
}

// wordNgrams returns the contiguous 1..3 token sequences of a document
func wordNgrams(doc string) []string {
	tokens := strings.Fields(doc)
	var grams []string
	for n := minNgram; n <= maxNgram; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

// vectorizer is a TF-IDF model fit on a single corpus. It is never reused
// across attributes: each attribute gets its own vocabulary.
type vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// fitTransform builds the vocabulary from docs and returns one L2-normalized
// TF-IDF vector per document. idf uses the smoothed form ln((1+n)/(1+df)) + 1.
func fitTransform(docs []string) (*vectorizer, []sparseVector) {
	v := &vectorizer{vocabulary: make(map[string]int)}

	counts := make([]map[int]int, len(docs))
	var df []int
	for i, doc := range docs {
		counts[i] = make(map[int]int)
		for _, gram := range wordNgrams(doc) {
			idx, ok := v.vocabulary[gram]
			if !ok {
				idx = len(v.vocabulary)
				v.vocabulary[gram] = idx
				df = append(df, 0)
			}
			if counts[i][idx] == 0 {
				df[idx]++
			}
			counts[i][idx]++
		}
	}

	n := float64(len(docs))
	v.idf = make([]float64, len(df))
	for idx, d := range df {
		v.idf[idx] = math.Log((1+n)/(1+float64(d))) + 1
	}

	vectors := make([]sparseVector, len(docs))
	for i, tf := range counts {
		vec := make(sparseVector, 0, len(tf))
		for idx, c := range tf {
			vec = append(vec, termWeight{term: idx, weight: float64(c) * v.idf[idx]})
		}
		sort.Slice(vec, func(a, b int) bool { return vec[a].term < vec[b].term })

		if norm := vec.norm(); norm > 0 {
			for k := range vec {
				vec[k].weight /= norm
			}
		}
		vectors[i] = vec
	}

	return v, vectors
}
