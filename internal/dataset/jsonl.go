package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

// loadJSONL reads one flat JSON object per line. Columns appear in the order
// their keys are first seen; keys missing from a line are missing values.
func (l *Loader) loadJSONL(limit int) (*table.Table, error) {
	slog.Debug("Opening JSONL file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	// Increase buffer size for large JSON lines
	const maxCapacity = 10 * 1024 * 1024 // 10MB per line
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	var (
		columns []string
		index   = make(map[string]int)
		records []map[string]table.Value
	)

	lineNum := 0
	for scanner.Scan() && (limit <= 0 || len(records) < limit) {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		keys, record, err := decodeObject(line)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		for _, k := range keys {
			if _, ok := index[k]; !ok {
				index[k] = len(columns)
				columns = append(columns, k)
			}
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	tbl := table.NewFromNames(columns...)
	for _, record := range records {
		row := make([]table.Value, len(columns))
		for i, c := range columns {
			if v, ok := record[c]; ok {
				row[i] = v
			} else {
				row[i] = table.NullValue()
			}
		}
		if err := tbl.AppendRow(row); err != nil {
			return nil, err
		}
	}

	slog.Debug("Finished reading JSONL file", "total_records", tbl.Len(), "total_lines", lineNum)
	return tbl, nil
}

// decodeObject returns the object's keys in document order and its values.
// Nested arrays and objects are kept as their JSON text.
func decodeObject(line []byte) ([]string, map[string]table.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object")
	}

	var keys []string
	values := make(map[string]table.Value)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("failed to decode %q: %w", key, err)
		}
		v, err := jsonValue(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode %q: %w", key, err)
		}

		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = v
	}
	return keys, values, nil
}

func jsonValue(raw json.RawMessage) (table.Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return table.NullValue(), nil
	}

	switch trimmed[0] {
	case 'n':
		return table.NullValue(), nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return table.Value{}, err
		}
		if s == "" {
			return table.NullValue(), nil
		}
		return table.TextValue(s), nil
	case 't', 'f':
		return table.TextValue(string(trimmed)), nil
	case '{', '[':
		return table.TextValue(string(trimmed)), nil
	default:
		f, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return table.Value{}, err
		}
		return table.NumberValue(f), nil
	}
}
