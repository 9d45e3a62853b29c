// Package results writes scored tables to disk.
package results

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

// Format is an export serialization
type Format string

const (
	CSV     Format = "csv"
	XLSX    Format = "xlsx"
	Parquet Format = "parquet"
	SQLite  Format = "sqlite"
)

// DefaultFormats is the CSV plus spreadsheet pair written for every run
var DefaultFormats = []Format{CSV, XLSX}

// ParseFormat accepts csv, xlsx, parquet or sqlite (case-insensitive)
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case CSV, XLSX, Parquet, SQLite:
		return f, nil
	case "excel":
		return XLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s (supported: csv, xlsx, parquet, sqlite)", s)
	}
}

// ParseFormats parses a list of format names
func ParseFormats(names []string) ([]Format, error) {
	out := make([]Format, 0, len(names))
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// PathFor swaps basePath's extension for the format's, so every format
// derived from one base path shares its directory and base name.
func PathFor(basePath string, f Format) string {
	stem := strings.TrimSuffix(basePath, filepath.Ext(basePath))
	return stem + "." + string(f)
}

// Write serializes tbl to path in the given format
func Write(tbl *table.Table, path string, f Format) error {
	switch f {
	case CSV:
		return WriteCSV(tbl, path)
	case XLSX:
		return WriteXLSX(tbl, path)
	case Parquet:
		return WriteParquet(tbl, path)
	case SQLite:
		return WriteSQLite(tbl, path)
	default:
		return fmt.Errorf("unsupported export format: %s", f)
	}
}

// columnIsNumeric reports whether every non-null cell is a number.
// All-null columns are treated as text.
func columnIsNumeric(values []table.Value) bool {
	seen := false
	for _, v := range values {
		switch v.Type {
		case table.Text:
			return false
		case table.Number:
			seen = true
		}
	}
	return seen
}
