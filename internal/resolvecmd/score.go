package resolvecmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/dataset"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/resolution"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/results"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

type scoreOptions struct {
	input         string
	encoding      string
	output        string
	addressColumn string
	formats       []string
	textual       []string
	structured    []string
	sortBy        string
	limit         int
	top           int
}

// declared builds the schema overrides from the --textual and --structured flags
func (o scoreOptions) declared() (map[string]table.Kind, error) {
	decl := make(map[string]table.Kind, len(o.textual)+len(o.structured))
	for _, name := range o.textual {
		decl[name] = table.Textual
	}
	for _, name := range o.structured {
		if _, dup := decl[name]; dup {
			return nil, fmt.Errorf("column %q declared both textual and structured", name)
		}
		decl[name] = table.Structured
	}
	return decl, nil
}

func executeScore(opts scoreOptions, out io.Writer) error {
	slog.Info("Scoring dataset", "input", opts.input, "output", opts.output)

	formats, err := results.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	decl, err := opts.declared()
	if err != nil {
		return err
	}

	tbl, err := dataset.NewLoader(opts.input, opts.encoding).Load()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if tbl, err = dataset.SortAndLimit(tbl, opts.sortBy, opts.limit); err != nil {
		return err
	}
	if tbl, err = table.ApplySchema(tbl, decl); err != nil {
		return err
	}

	if dir := filepath.Dir(opts.output); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	engine := resolution.NewEngine(resolution.Options{
		AddressColumn: opts.addressColumn,
		Formats:       formats,
	})
	report, err := engine.SortAndExport(tbl, opts.output)
	if err != nil {
		return err
	}
	if report.Skipped {
		fmt.Fprintln(out, "No records to score; nothing was written.")
		return nil
	}

	summary, err := results.Summarize(report.Table,
		[]string{resolution.CosineColumn, resolution.JaroColumn, resolution.CombinedColumn},
		labelColumn(report.Table), opts.top)
	if err != nil {
		return err
	}
	summary.Files = report.Files
	results.PrintSummary(out, summary)
	return nil
}

// labelColumn picks the column that names a record in summaries
func labelColumn(tbl *table.Table) string {
	if tbl.Has("title") {
		return "title"
	}
	if textual := tbl.Schema().Textual(); len(textual) > 0 {
		return textual[0]
	}
	return ""
}
