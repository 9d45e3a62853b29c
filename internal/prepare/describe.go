package prepare

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
	"gopkg.in/yaml.v3"
)

// ColumnDescription holds per-column statistics
type ColumnDescription struct {
	Name           string  `yaml:"name"`
	Kind           string  `yaml:"kind"`
	NonNull        int     `yaml:"nonnull"`
	Missing        int     `yaml:"missing"`
	MissingPercent float64 `yaml:"missingpercent"`
	Unique         int     `yaml:"unique"`
}

// RowMissing summarizes the share of missing cells per row. Histogram counts
// rows by missing percentage: 0, (0,25], (25,50], (50,75] and (75,100].
type RowMissing struct {
	CompleteRows int            `yaml:"completerows"`
	MeanPercent  float64        `yaml:"meanpercent"`
	MaxPercent   float64        `yaml:"maxpercent"`
	Histogram    map[string]int `yaml:"histogram"`
}

// Description is the profile of a table
type Description struct {
	Rows       int                 `yaml:"rows"`
	Columns    []ColumnDescription `yaml:"columns"`
	RowMissing RowMissing          `yaml:"rowmissing"`
}

var histogramBuckets = []string{"0%", "1-25%", "26-50%", "51-75%", "76-100%"}

func bucketFor(pct float64) string {
	switch {
	case pct == 0:
		return histogramBuckets[0]
	case pct <= 25:
		return histogramBuckets[1]
	case pct <= 50:
		return histogramBuckets[2]
	case pct <= 75:
		return histogramBuckets[3]
	default:
		return histogramBuckets[4]
	}
}

// Describe profiles every column and the per-row missing share
func Describe(tbl *table.Table) *Description {
	desc := &Description{
		Rows:       tbl.Len(),
		RowMissing: RowMissing{Histogram: make(map[string]int, len(histogramBuckets))},
	}

	for _, c := range tbl.Schema() {
		values, _ := tbl.Values(c.Name)
		col := ColumnDescription{Name: c.Name, Kind: c.Kind.String()}
		unique := make(map[string]struct{})
		for _, v := range values {
			if v.IsNull() {
				col.Missing++
				continue
			}
			col.NonNull++
			unique[v.String()] = struct{}{}
		}
		col.Unique = len(unique)
		if len(values) > 0 {
			col.MissingPercent = 100 * float64(col.Missing) / float64(len(values))
		}
		desc.Columns = append(desc.Columns, col)
	}

	width := len(tbl.Columns())
	if width == 0 || tbl.Empty() {
		return desc
	}

	var total float64
	tbl.Each(func(_ int, row []table.Value) {
		missing := 0
		for _, v := range row {
			if v.IsNull() {
				missing++
			}
		}
		pct := 100 * float64(missing) / float64(width)
		if missing == 0 {
			desc.RowMissing.CompleteRows++
		}
		if pct > desc.RowMissing.MaxPercent {
			desc.RowMissing.MaxPercent = pct
		}
		total += pct
		desc.RowMissing.Histogram[bucketFor(pct)]++
	})
	desc.RowMissing.MeanPercent = total / float64(tbl.Len())

	return desc
}

// SaveYAML writes the description to path
func (d *Description) SaveYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}
	return nil
}

// Print renders the description as a table for a terminal
func (d *Description) Print(w io.Writer) {
	fmt.Fprintf(w, "Rows: %d\n\n", d.Rows)
	fmt.Fprintf(w, "%-30s %-10s %8s %8s %9s %8s\n", "Column", "Kind", "Non-null", "Missing", "Missing%", "Unique")
	for _, c := range d.Columns {
		fmt.Fprintf(w, "%-30s %-10s %8d %8d %8.1f%% %8d\n", c.Name, c.Kind, c.NonNull, c.Missing, c.MissingPercent, c.Unique)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Complete rows:       %d\n", d.RowMissing.CompleteRows)
	fmt.Fprintf(w, "Mean missing/row:    %.1f%%\n", d.RowMissing.MeanPercent)
	fmt.Fprintf(w, "Max missing/row:     %.1f%%\n", d.RowMissing.MaxPercent)
	for _, b := range histogramBuckets {
		fmt.Fprintf(w, "  %-8s %d\n", b, d.RowMissing.Histogram[b])
	}
}
