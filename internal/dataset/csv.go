package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodedReader wraps r so it yields UTF-8 text for the declared encoding
func decodedReader(r io.Reader, name string) (io.Reader, error) {
	if name == "" {
		name = "utf-8"
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}

	br := bufio.NewReader(transform.NewReader(r, enc.NewDecoder()))
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}
	return br, nil
}

// loadDelimited reads a header row followed by records. Short records are
// padded with missing values; long records are an error.
func (l *Loader) loadDelimited(sep rune, limit int) (*table.Table, error) {
	slog.Debug("Opening delimited file", "path", l.datasetPath, "encoding", l.encoding)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	r, err := decodedReader(file, l.encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataset file %s is empty", l.datasetPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	names, err := headerNames(header)
	if err != nil {
		return nil, err
	}
	// cells are typed per column once every record is read
	columns := make([][]string, len(names))
	rows := 0

	lineNum := 1
	for limit <= 0 || rows < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse record: %w", err)
		}
		lineNum++

		if len(record) > len(names) {
			return nil, fmt.Errorf("record %d has %d fields, header has %d", lineNum, len(record), len(names))
		}
		for i := range columns {
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			columns[i] = append(columns[i], cell)
		}
		rows++

		if lineNum%10000 == 0 {
			slog.Debug("Reading delimited file", "records_read", rows)
		}
	}

	values := make([][]table.Value, len(columns))
	for i, raw := range columns {
		values[i] = table.ParseColumn(raw)
	}

	tbl := table.NewFromNames(names...)
	for r := 0; r < rows; r++ {
		row := make([]table.Value, len(names))
		for i := range row {
			row[i] = values[i][r]
		}
		if err := tbl.AppendRow(row); err != nil {
			return nil, err
		}
	}

	return tbl, nil
}

// headerNames names blank header cells "Unnamed: i" and rejects duplicates
func headerNames(header []string) ([]string, error) {
	names := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		if _, dup := seen[h]; dup {
			return nil, fmt.Errorf("duplicate column %q in header", h)
		}
		seen[h] = struct{}{}
		names[i] = h
	}
	return names, nil
}
