package dataset

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
	"github.com/parquet-go/parquet-go"
)

// loadParquet reads every leaf column of a Parquet file. Repeated leaves are
// joined with "; " into a single text cell.
func (l *Loader) loadParquet(limit int) (*table.Table, error) {
	slog.Debug("Opening Parquet file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	slog.Debug("Parquet file stats", "size_bytes", info.Size(), "size_mb", info.Size()/1024/1024)

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	paths := pf.Schema().Columns()
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = strings.Join(p, ".")
	}
	tbl := table.NewFromNames(names...)

	batch := make([]parquet.Row, 128)
	batchNum := 0
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for limit <= 0 || tbl.Len() < limit {
			n, err := rows.ReadRows(batch)
			for _, row := range batch[:n] {
				if limit > 0 && tbl.Len() >= limit {
					break
				}
				if appendErr := tbl.AppendRow(convertRow(row, len(names))); appendErr != nil {
					rows.Close()
					return nil, appendErr
				}
			}
			if n > 0 {
				batchNum++
				slog.Debug("Read batch from Parquet", "batch", batchNum, "rows_in_batch", n, "total_rows_read", tbl.Len())
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to read parquet rows: %w", err)
			}
		}
		rows.Close()
	}

	slog.Debug("Finished reading Parquet file", "total_records", tbl.Len(), "total_batches", batchNum)
	return tbl, nil
}

func convertRow(row parquet.Row, width int) []table.Value {
	parts := make([][]string, width)
	out := make([]table.Value, width)
	for i := range out {
		out[i] = table.NullValue()
	}

	for _, v := range row {
		col := v.Column()
		if col < 0 || col >= width || v.IsNull() {
			continue
		}
		cell := parquetValue(v)
		if len(parts[col]) == 0 {
			out[col] = cell
		}
		parts[col] = append(parts[col], cell.String())
	}

	for i, p := range parts {
		if len(p) > 1 {
			out[i] = table.TextValue(strings.Join(p, "; "))
		}
	}
	return out
}

func parquetValue(v parquet.Value) table.Value {
	switch v.Kind() {
	case parquet.Boolean:
		return table.TextValue(strconv.FormatBool(v.Boolean()))
	case parquet.Int32:
		return table.NumberValue(float64(v.Int32()))
	case parquet.Int64:
		return table.NumberValue(float64(v.Int64()))
	case parquet.Float:
		return table.NumberValue(float64(v.Float()))
	case parquet.Double:
		return table.NumberValue(v.Double())
	case parquet.ByteArray, parquet.FixedLenByteArray:
		s := string(v.ByteArray())
		if s == "" {
			return table.NullValue()
		}
		return table.TextValue(s)
	default:
		return table.TextValue(v.String())
	}
}
