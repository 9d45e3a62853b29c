package results

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

// WriteCSV writes a header row followed by one record per table row.
// Missing cells are written as empty fields.
func WriteCSV(tbl *table.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(tbl.Columns()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	var writeErr error
	record := make([]string, len(tbl.Columns()))
	tbl.Each(func(i int, row []table.Value) {
		if writeErr != nil {
			return
		}
		for j, v := range row {
			record[j] = v.String()
		}
		if err := writer.Write(record); err != nil {
			writeErr = fmt.Errorf("failed to write csv row %d: %w", i+1, err)
		}
	})
	if writeErr != nil {
		return writeErr
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return file.Close()
}
