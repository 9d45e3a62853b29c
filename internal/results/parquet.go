package results

import (
	"fmt"
	"os"
	"strings"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
	"github.com/parquet-go/parquet-go"
)

// WriteParquet writes the table as a flat parquet file. Numeric columns
// become optional doubles, everything else optional strings.
func WriteParquet(tbl *table.Table, path string) error {
	columns := tbl.Columns()
	numeric := make([]bool, len(columns))
	group := parquet.Group{}
	for i, name := range columns {
		values, err := tbl.Values(name)
		if err != nil {
			return err
		}
		numeric[i] = columnIsNumeric(values)
		if numeric[i] {
			group[name] = parquet.Optional(parquet.Leaf(parquet.DoubleType))
		} else {
			group[name] = parquet.Optional(parquet.String())
		}
	}
	schema := parquet.NewSchema("resolution_results", group)

	// Group fields are laid out in name order, not table order
	leaf := make([]int, len(columns))
	byName := make(map[string]int, len(columns))
	for i, p := range schema.Columns() {
		byName[strings.Join(p, ".")] = i
	}
	for i, name := range columns {
		leaf[i] = byName[name]
	}

	rows := make([]parquet.Row, 0, tbl.Len())
	tbl.Each(func(_ int, row []table.Value) {
		r := make(parquet.Row, len(columns))
		for j, v := range row {
			idx := leaf[j]
			switch {
			case v.IsNull():
				r[idx] = parquet.NullValue().Level(0, 0, idx)
			case numeric[j]:
				r[idx] = parquet.ValueOf(v.Num).Level(0, 1, idx)
			default:
				r[idx] = parquet.ValueOf(v.String()).Level(0, 1, idx)
			}
		}
		rows = append(rows, r)
	})

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewWriter(file, schema)
	if _, err := writer.WriteRows(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return file.Close()
}
