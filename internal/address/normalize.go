// Package address cleans text columns ahead of address matching.
package address

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText folds accents, lowercases, keeps only a-z, 0-9 and spaces,
// and collapses runs of whitespace.
func NormalizeText(s string) string {
	// a fresh chain per call, transform.Chain is not safe for concurrent use
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Normalize returns a copy of tbl with every textual column passed through
// NormalizeText. Missing cells become empty strings. The address column must
// exist.
func Normalize(tbl *table.Table, column string) (*table.Table, error) {
	if !tbl.Has(column) {
		return nil, fmt.Errorf("address column %q: %w", column, table.ErrColumnNotFound)
	}

	out := tbl
	textual := tbl.Schema().Textual()
	for _, name := range textual {
		values, err := out.Values(name)
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			values[i] = table.TextValue(NormalizeText(v.String()))
		}
		out, err = out.WithColumn(name, table.Textual, values)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize %s: %w", name, err)
		}
	}

	slog.Info("Addresses normalized", "address_column", column, "columns", textual)
	return out, nil
}
