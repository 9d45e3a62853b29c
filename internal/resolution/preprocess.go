package resolution

import (
	"strings"
	"unicode"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

// normalizeCell lowercases and keeps only ASCII letters, digits and whitespace
func normalizeCell(v table.Value) string {
	if v.IsNull() {
		return ""
	}
	lowered := strings.ToLower(v.String())

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// preprocessColumn returns one normalized string per row, in row order.
// A column that is blank on every row cannot be vectorized.
func preprocessColumn(tbl *table.Table, column string) ([]string, error) {
	values, err := tbl.Values(column)
	if err != nil {
		return nil, err
	}

	docs := make([]string, len(values))
	allEmpty := true
	for i, v := range values {
		docs[i] = normalizeCell(v)
		if strings.TrimSpace(docs[i]) != "" {
			allEmpty = false
		}
	}

	if allEmpty {
		return nil, &DataQualityError{Column: column, Reason: "all preprocessed values are empty"}
	}
	return docs, nil
}
