package resolution

import (
	"math"
	"reflect"
	"testing"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

func TestWordNgrams(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected []string
	}{
		{
			name:     "three tokens",
			doc:      "deep learning survey",
			expected: []string{"deep", "learning", "survey", "deep learning", "learning survey", "deep learning survey"},
		},
		{
			name:     "collapses whitespace",
			doc:      "  graph \t theory ",
			expected: []string{"graph", "theory", "graph theory"},
		},
		{
			name:     "empty",
			doc:      "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wordNgrams(tt.doc)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNormalizeCell(t *testing.T) {
	tests := []struct {
		name     string
		value    table.Value
		expected string
	}{
		{"lowercases and strips punctuation", table.TextValue("Deep-Learning: A Survey!"), "deeplearning a survey"},
		{"null is empty", table.NullValue(), ""},
		{"numbers render plainly", table.NumberValue(2015), "2015"},
		{"drops non ascii letters", table.TextValue("Müller"), "mller"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeCell(tt.value); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFitTransform(t *testing.T) {
	docs := []string{"deep learning", "deep networks", ""}
	vec, vectors := fitTransform(docs)

	// deep, learning, deep learning, networks, deep networks
	if len(vec.vocabulary) != 5 {
		t.Errorf("Expected vocabulary of 5, got %d", len(vec.vocabulary))
	}

	deep := vec.vocabulary["deep"]
	if want := math.Log(4.0/3.0) + 1; math.Abs(vec.idf[deep]-want) > 1e-12 {
		t.Errorf("Expected idf %f for shared term, got %f", want, vec.idf[deep])
	}
	learning := vec.vocabulary["learning"]
	if want := math.Log(4.0/2.0) + 1; math.Abs(vec.idf[learning]-want) > 1e-12 {
		t.Errorf("Expected idf %f for rare term, got %f", want, vec.idf[learning])
	}

	for i, v := range vectors[:2] {
		if n := v.norm(); math.Abs(n-1) > 1e-12 {
			t.Errorf("Expected unit norm for doc %d, got %f", i, n)
		}
		for k := 1; k < len(v); k++ {
			if v[k-1].term >= v[k].term {
				t.Errorf("Expected doc %d sorted by term", i)
			}
		}
	}
	if len(vectors[2]) != 0 {
		t.Errorf("Expected empty vector for empty doc, got %v", vectors[2])
	}
}

func TestCosineMatrix(t *testing.T) {
	_, vectors := fitTransform([]string{"deep learning survey", "deep learning survey", "graph theory", ""})
	m := cosineMatrix(vectors)

	for i := 0; i < m.n; i++ {
		if m.at(i, i) != 0 {
			t.Errorf("Expected zero diagonal at %d, got %f", i, m.at(i, i))
		}
		for j := 0; j < m.n; j++ {
			if m.at(i, j) != m.at(j, i) {
				t.Errorf("Expected symmetric matrix at (%d,%d)", i, j)
			}
		}
	}
	if math.Abs(m.at(0, 1)-1) > 1e-9 {
		t.Errorf("Expected identical docs to score 1, got %f", m.at(0, 1))
	}
	if m.at(0, 2) != 0 {
		t.Errorf("Expected disjoint docs to score 0, got %f", m.at(0, 2))
	}
	if m.at(0, 3) != 0 {
		t.Errorf("Expected empty doc to score 0, got %f", m.at(0, 3))
	}

	sums := m.rowSums()
	if math.Abs(sums[0]-1) > 1e-9 || math.Abs(sums[1]-1) > 1e-9 {
		t.Errorf("Expected row sums of 1 for the duplicates, got %v", sums)
	}
}
