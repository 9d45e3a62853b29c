// Package mapping renames source columns into the canonical schema described
// by a JSON dictionary.
package mapping

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

// Entry describes one canonical column. The first feature is the source
// column that gets renamed; the rest document alternative spellings.
type Entry struct {
	Features    []string `json:"features"`
	Description string   `json:"description,omitempty"`
}

// Dictionary maps canonical column names to their source features
type Dictionary map[string]Entry

// minSuggestionSimilarity is the normalized Levenshtein similarity a column
// needs to be offered as a "did you mean"
const minSuggestionSimilarity = 0.5

// LoadDictionary reads a mapping dictionary from a JSON file
func LoadDictionary(path string) (Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping dictionary: %w", err)
	}

	var dict Dictionary
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("failed to parse mapping dictionary: %w", err)
	}

	for name, entry := range dict {
		if len(entry.Features) == 0 || entry.Features[0] == "" {
			return nil, fmt.Errorf("mapping dictionary entry %q has no features", name)
		}
	}

	slog.Debug("Mapping dictionary loaded", "path", path, "entries", len(dict))
	return dict, nil
}

// Keys returns the canonical names in sorted order
func (d Dictionary) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Mapper applies a dictionary to tables
type Mapper struct {
	dict Dictionary
}

// NewMapper creates a mapper for dict
func NewMapper(dict Dictionary) *Mapper {
	return &Mapper{dict: dict}
}

// Apply renames each entry's first feature to its canonical name. Features
// missing from the table are skipped and logged with the closest existing
// column, if any.
func (m *Mapper) Apply(tbl *table.Table) (*table.Table, error) {
	renames := make(map[string]string)
	columns := tbl.Columns()

	for _, canonical := range m.dict.Keys() {
		source := m.dict[canonical].Features[0]
		if tbl.Has(source) {
			if source != canonical {
				renames[source] = canonical
			}
			continue
		}
		if suggestion, ok := Suggest(source, columns); ok {
			slog.Warn("Mapped column not found", "canonical", canonical, "feature", source, "did_you_mean", suggestion)
		} else {
			slog.Warn("Mapped column not found", "canonical", canonical, "feature", source)
		}
	}

	mapped, err := tbl.Rename(renames)
	if err != nil {
		return nil, fmt.Errorf("failed to apply mapping: %w", err)
	}

	slog.Info("Mapping applied", "renamed", len(renames))
	return mapped, nil
}

// Filter keeps only the columns named by dictionary keys, in table order
func (m *Mapper) Filter(tbl *table.Table) (*table.Table, error) {
	var keep []string
	for _, c := range tbl.Columns() {
		if _, ok := m.dict[c]; ok {
			keep = append(keep, c)
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("no columns in the table correspond to the keys in the dictionary")
	}
	return tbl.Select(keep...)
}

// Suggest returns the candidate closest to name by Levenshtein distance,
// compared case-insensitively. ok is false when nothing is close enough.
func Suggest(name string, candidates []string) (best string, ok bool) {
	target := strings.ToLower(name)
	bestScore := 0.0
	for _, c := range candidates {
		score := similarity(target, strings.ToLower(c))
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < minSuggestionSimilarity {
		return "", false
	}
	return best, true
}

func similarity(a, b string) float64 {
	maxLen := len([]rune(a))
	if n := len([]rune(b)); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}
