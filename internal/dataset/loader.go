// Package dataset reads bibliographic sources into record tables.
package dataset

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

// Loader reads one source file. Encoding only applies to delimited text.
type Loader struct {
	datasetPath string
	encoding    string
}

// NewLoader creates a new dataset loader. An empty encoding means UTF-8.
func NewLoader(datasetPath, encoding string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
		encoding:    encoding,
	}
}

// Path returns the file the loader reads
func (l *Loader) Path() string {
	return l.datasetPath
}

// Load reads every record from a CSV, TSV, JSONL or Parquet file. Column
// kinds are inferred from the values.
func (l *Loader) Load() (*table.Table, error) {
	return l.load(0)
}

// LoadSample reads at most limit records
func (l *Loader) LoadSample(limit int) (*table.Table, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("sample limit must be positive, got %d", limit)
	}
	return l.load(limit)
}

func (l *Loader) load(limit int) (*table.Table, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	var (
		tbl *table.Table
		err error
	)
	switch ext {
	case ".csv":
		tbl, err = l.loadDelimited(',', limit)
	case ".tsv":
		tbl, err = l.loadDelimited('\t', limit)
	case ".parquet":
		tbl, err = l.loadParquet(limit)
	case ".jsonl", ".json":
		tbl, err = l.loadJSONL(limit)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .tsv, .parquet, .jsonl)", ext)
	}
	if err != nil {
		return nil, err
	}

	tbl = table.InferSchema(tbl)
	slog.Debug("Dataset loaded", "path", l.datasetPath, "rows", tbl.Len(), "columns", tbl.Columns())
	return tbl, nil
}

// LoadAndConcat loads source and target and appends target's rows after
// source's. Both files must carry the same set of columns, in any order.
func LoadAndConcat(source, target *Loader) (*table.Table, error) {
	src, err := source.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load source dataset %s: %w", source.Path(), err)
	}
	tgt, err := target.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load target dataset %s: %w", target.Path(), err)
	}

	combined, err := table.Concat(src, tgt)
	if err != nil {
		return nil, fmt.Errorf("the columns of the source and target datasets do not match: %w", err)
	}

	// a column textual in either source stays textual
	combined = table.InferSchema(combined)
	slog.Info("Datasets concatenated", "source_rows", src.Len(), "target_rows", tgt.Len(), "rows", combined.Len())
	return combined, nil
}

// SortAndLimit orders rows by sortBy ascending (missing values last) and
// keeps the first limit rows. An empty sortBy keeps the file order; a limit
// of 0 keeps every row.
func SortAndLimit(tbl *table.Table, sortBy string, limit int) (*table.Table, error) {
	if sortBy != "" {
		sorted, err := tbl.SortByStringAsc(sortBy)
		if err != nil {
			return nil, fmt.Errorf("failed to sort by %s: %w", sortBy, err)
		}
		tbl = sorted
	}
	return tbl.Head(limit), nil
}
