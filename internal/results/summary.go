package results

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
	"gopkg.in/yaml.v3"
)

// ScoreStats summarizes one score column
type ScoreStats struct {
	Mean   float64 `yaml:"mean"`
	Median float64 `yaml:"median"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

// TopRecord is one of the highest ranked rows
type TopRecord struct {
	Rank   int                `yaml:"rank"`
	Label  string             `yaml:"label"`
	Scores map[string]float64 `yaml:"scores"`
}

// Summary describes a scored and ranked table
type Summary struct {
	Timestamp string                `yaml:"timestamp"`
	Rows      int                   `yaml:"rows"`
	Files     []string              `yaml:"files,omitempty"`
	Scores    map[string]ScoreStats `yaml:"scores"`
	Top       []TopRecord           `yaml:"top,omitempty"`
}

// Summarize computes statistics for every score column present in tbl and
// lists the first topN rows, labelled by labelColumn. tbl is expected to be
// sorted already.
func Summarize(tbl *table.Table, scoreColumns []string, labelColumn string, topN int) (*Summary, error) {
	summary := &Summary{
		Timestamp: time.Now().Format("2006-01-02_15-04-05"),
		Rows:      tbl.Len(),
		Scores:    make(map[string]ScoreStats),
	}

	var present []string
	columns := make(map[string][]float64)
	for _, name := range scoreColumns {
		if !tbl.Has(name) {
			continue
		}
		scores, err := tbl.Floats(name)
		if err != nil {
			return nil, err
		}
		present = append(present, name)
		columns[name] = scores
		summary.Scores[name] = calculateStats(scores)
	}

	var labels []table.Value
	if labelColumn != "" && tbl.Has(labelColumn) {
		var err error
		labels, err = tbl.Values(labelColumn)
		if err != nil {
			return nil, err
		}
	}

	for i := 0; i < topN && i < tbl.Len(); i++ {
		rec := TopRecord{Rank: i + 1, Scores: make(map[string]float64, len(present))}
		if labels != nil {
			rec.Label = labels[i].String()
		}
		for _, name := range present {
			rec.Scores[name] = columns[name][i]
		}
		summary.Top = append(summary.Top, rec)
	}

	return summary, nil
}

func calculateStats(scores []float64) ScoreStats {
	var stats ScoreStats
	if len(scores) == 0 {
		return stats
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	var total float64
	for _, s := range sorted {
		total += s
	}
	stats.Mean = total / float64(len(sorted))

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		stats.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		stats.Median = sorted[mid]
	}

	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]
	return stats
}

// SaveSummaryYAML writes the summary to path, creating parent directories
func SaveSummaryYAML(summary *Summary, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create summary directory: %w", err)
		}
	}

	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}
	return nil
}

// PrintSummary renders the summary for a terminal
func PrintSummary(w io.Writer, summary *Summary) {
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintln(w, "Entity Resolution Summary")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Rows scored:        %d\n", summary.Rows)
	for _, f := range summary.Files {
		fmt.Fprintf(w, "Saved:              %s\n", f)
	}

	var names []string
	for name := range summary.Scores {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := summary.Scores[name]
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s\n", name)
		fmt.Fprintf(w, "  Mean:    %.4f\n", s.Mean)
		fmt.Fprintf(w, "  Median:  %.4f\n", s.Median)
		fmt.Fprintf(w, "  Min:     %.4f\n", s.Min)
		fmt.Fprintf(w, "  Max:     %.4f\n", s.Max)
	}

	if len(summary.Top) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Top ranked records:")
		for _, rec := range summary.Top {
			parts := make([]string, 0, len(names))
			for _, name := range names {
				if v, ok := rec.Scores[name]; ok {
					parts = append(parts, fmt.Sprintf("%s=%.4f", name, v))
				}
			}
			fmt.Fprintf(w, "  %3d. %s  (%s)\n", rec.Rank, truncate(rec.Label, 60), strings.Join(parts, ", "))
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
