// Package resolution scores bibliographic records for likely duplicates.
//
// For every textual column the engine fits a word 1-3 gram TF-IDF model,
// builds the all-pairs cosine matrix and sums each row's similarity to the
// other rows. The per-column sums are averaged into cosine_avg_sim. When an
// address-like column is configured and present, a Jaro-Winkler average over
// differing values is added as jaro_avg_sim and blended into
// combined_avg_sim.
//
// All work is sequential and in memory. Time and memory are quadratic in the
// row count.
package resolution

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/results"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

// Derived columns written by the engine
const (
	CosineColumn   = "cosine_avg_sim"
	JaroColumn     = "jaro_avg_sim"
	CombinedColumn = "combined_avg_sim"
)

// Options configures a scoring pass
type Options struct {
	// AddressColumn names the address-like column; empty disables Jaro-Winkler scoring
	AddressColumn string
	// Formats lists export formats; empty means results.DefaultFormats
	Formats []results.Format
}

// Engine computes similarity scores and exports ranked tables
type Engine struct {
	opts Options
}

// Report describes what SortAndExport produced
type Report struct {
	Rows    int
	Files   []string
	Skipped bool
	Table   *table.Table
}

// NewEngine creates a scoring engine
func NewEngine(opts Options) *Engine {
	if len(opts.Formats) == 0 {
		opts.Formats = results.DefaultFormats
	}
	slog.Debug("Entity resolution engine initialized", "address_column", opts.AddressColumn, "formats", opts.Formats)
	return &Engine{opts: opts}
}

// Score returns a new table with cosine_avg_sim, combined_avg_sim and, when
// the address column is present, jaro_avg_sim appended. Derived columns
// already on the input are recomputed, never reused.
func (e *Engine) Score(tbl *table.Table) (*table.Table, error) {
	input := tbl.Without(CosineColumn, JaroColumn, CombinedColumn)

	textual := input.Schema().Textual()
	slog.Debug("Computing cosine similarity", "rows", input.Len(), "textual_columns", textual)

	cosine, err := averageCosineSimilarity(input, textual)
	if err != nil {
		return nil, err
	}

	out, err := input.WithFloatColumn(CosineColumn, cosine)
	if err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", CosineColumn, err)
	}

	combined := cosine
	if e.hasAddress(input) {
		values, err := input.Values(e.opts.AddressColumn)
		if err != nil {
			return nil, err
		}
		jaro := jaroWinklerAverages(values)

		out, err = out.WithFloatColumn(JaroColumn, jaro)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", JaroColumn, err)
		}

		combined = make([]float64, len(cosine))
		for i := range cosine {
			combined[i] = (cosine[i] + jaro[i]) / 2
		}
	}

	out, err = out.WithFloatColumn(CombinedColumn, combined)
	if err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", CombinedColumn, err)
	}
	return out, nil
}

func (e *Engine) hasAddress(tbl *table.Table) bool {
	return e.opts.AddressColumn != "" && tbl.Has(e.opts.AddressColumn)
}

// SortAndExport scores tbl, sorts it by cosine_avg_sim descending (stable on
// ties) and writes one file per configured format next to basePath.
//
// An empty table is not an error: nothing is written and Report.Skipped is
// set. Scoring failures come back as *DataQualityError, write failures as
// *ExportError. A failed write removes the files already written for the
// earlier formats, so a run leaves either every format or none.
func (e *Engine) SortAndExport(tbl *table.Table, basePath string) (Report, error) {
	if tbl.Empty() {
		slog.Warn("The table is empty. No file has been saved.", "output", basePath)
		return Report{Skipped: true, Table: tbl}, nil
	}

	scored, err := e.Score(tbl)
	if err != nil {
		slog.Error("Error scoring records", "err", err)
		return Report{}, err
	}

	sorted, err := scored.SortByFloatDesc(CosineColumn)
	if err != nil {
		return Report{}, &ExportError{Path: basePath, Format: "sort", Err: err}
	}

	report := Report{Rows: sorted.Len(), Table: sorted}
	for _, format := range e.opts.Formats {
		path := results.PathFor(basePath, format)
		if err := results.Write(sorted, path, format); err != nil {
			slog.Error("Error exporting results", "path", path, "format", format, "err", err)
			removePartial(report.Files)
			report.Files = nil
			return report, &ExportError{Path: path, Format: string(format), Err: err}
		}
		report.Files = append(report.Files, path)
	}

	slog.Info("Processed data sorted and saved", "output", basePath, "rows", report.Rows, "files", report.Files)
	return report, nil
}

func removePartial(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("Could not remove partial export", "path", path, "err", err)
			continue
		}
		slog.Debug("Removed partial export", "path", path)
	}
}
