package results

import (
	"fmt"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
	"github.com/xuri/excelize/v2"
)

// sheetName is the default sheet of a new workbook
const sheetName = "Sheet1"

// WriteXLSX writes the table to the first sheet of a new workbook.
// Numbers stay numeric so the sheet can be re-sorted in a spreadsheet.
func WriteXLSX(tbl *table.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	columns := tbl.Columns()
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}

	var writeErr error
	tbl.Each(func(i int, row []table.Value) {
		if writeErr != nil {
			return
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			writeErr = err
			return
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			switch v.Type {
			case table.Number:
				cells[j] = v.Num
			case table.Text:
				cells[j] = v.Str
			default:
				cells[j] = nil
			}
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			writeErr = fmt.Errorf("failed to write xlsx row %d: %w", i+1, err)
		}
	})
	if writeErr != nil {
		return writeErr
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save xlsx file: %w", err)
	}
	return nil
}
