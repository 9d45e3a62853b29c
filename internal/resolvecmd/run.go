package resolvecmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/address"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/config"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/dataset"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/mapping"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/prepare"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/resolution"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/results"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

// topRecords is how many ranked rows the run summary lists
const topRecords = 10

func executeRun(configPath string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	summary, err := runPipeline(cfg)
	if err != nil {
		return err
	}
	if summary != nil {
		results.PrintSummary(out, summary)
	}
	return nil
}

// runPipeline loads, maps, trims, normalizes, scores and exports. It
// returns a nil summary when there was nothing to score.
func runPipeline(cfg *config.Config) (*results.Summary, error) {
	slog.Info("Starting entity resolution run", "source", cfg.SourcePath(), "target", cfg.TargetPath())

	if err := os.MkdirAll(cfg.Paths.OutputFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output folder: %w", err)
	}

	// Step 1: load and concatenate
	combined, err := dataset.LoadAndConcat(
		dataset.NewLoader(cfg.SourcePath(), cfg.Encodings.Source),
		dataset.NewLoader(cfg.TargetPath(), cfg.Encodings.Target),
	)
	if err != nil {
		return nil, err
	}

	combined, err = dataset.SortAndLimit(combined, cfg.Columns.SortBy, cfg.Limits.MaxRows)
	if err != nil {
		return nil, err
	}
	slog.Info("Data loaded successfully", "rows", combined.Len())

	// Step 2: mapping
	var mapper *mapping.Mapper
	if path := cfg.DictionaryPath(); path != "" {
		dict, err := mapping.LoadDictionary(path)
		if err != nil {
			return nil, err
		}
		mapper = mapping.NewMapper(dict)
		if combined, err = mapper.Apply(combined); err != nil {
			return nil, err
		}
	}

	// Step 3: describe
	desc := prepare.Describe(combined)
	for _, c := range desc.Columns {
		slog.Debug("Column profile", "column", c.Name, "kind", c.Kind, "missing_percent", c.MissingPercent, "unique", c.Unique)
	}

	// Step 4: drop sparse columns, optionally save the mapped subset
	processed, _, err := prepare.DropSparseColumns(combined, cfg.Thresholds.DropNAThreshold)
	if err != nil {
		return nil, err
	}

	if path := cfg.FilteredPath(); path != "" && mapper != nil {
		filtered, err := mapper.Filter(processed)
		if err != nil {
			return nil, err
		}
		if err := results.WriteCSV(filtered, path); err != nil {
			return nil, fmt.Errorf("failed to save filtered table: %w", err)
		}
		slog.Info("Filtered table saved", "path", path)
	}

	// Step 5: normalize addresses
	if col := cfg.Columns.AddressColumn; col != "" && processed.Has(col) {
		processed, err = address.Normalize(processed, col)
		if err != nil {
			return nil, err
		}
		if err := results.WriteCSV(processed, cfg.NormalizedPath()); err != nil {
			return nil, fmt.Errorf("failed to save normalized addresses: %w", err)
		}
		slog.Info("Addresses normalized and exported successfully", "path", cfg.NormalizedPath())
	}

	// Step 6: declared schema, then score and export
	decl, err := cfg.DeclaredSchema()
	if err != nil {
		return nil, err
	}
	if processed, err = applyDeclared(processed, decl); err != nil {
		return nil, err
	}

	formats, err := cfg.ExportFormats()
	if err != nil {
		return nil, err
	}
	engine := resolution.NewEngine(resolution.Options{
		AddressColumn: cfg.Columns.AddressColumn,
		Formats:       formats,
	})

	report, err := engine.SortAndExport(processed, cfg.ResultsPath())
	if err != nil {
		return nil, err
	}
	if report.Skipped {
		return nil, nil
	}

	summary, err := summarize(report)
	if err != nil {
		return nil, err
	}
	summaryPath := summaryPathFor(cfg.ResultsPath())
	if err := results.SaveSummaryYAML(summary, summaryPath); err != nil {
		return nil, err
	}
	slog.Info("Entity resolution completed and results exported successfully", "summary", summaryPath)
	return summary, nil
}

// applyDeclared applies the declared kinds of the columns still present;
// declarations for dropped or unknown columns are logged and ignored.
func applyDeclared(tbl *table.Table, decl map[string]table.Kind) (*table.Table, error) {
	if len(decl) == 0 {
		return tbl, nil
	}
	present := make(map[string]table.Kind, len(decl))
	for name, kind := range decl {
		if !tbl.Has(name) {
			slog.Warn("Declared column not in table", "column", name)
			continue
		}
		present[name] = kind
	}
	return table.ApplySchema(tbl, present)
}

func summarize(report resolution.Report) (*results.Summary, error) {
	summary, err := results.Summarize(report.Table,
		[]string{resolution.CosineColumn, resolution.JaroColumn, resolution.CombinedColumn},
		labelColumn(report.Table), topRecords)
	if err != nil {
		return nil, err
	}
	summary.Files = report.Files
	return summary, nil
}

func summaryPathFor(basePath string) string {
	return strings.TrimSuffix(basePath, filepath.Ext(basePath)) + "_summary.yaml"
}
