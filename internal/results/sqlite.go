package results

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
	_ "modernc.org/sqlite"
)

// SQLiteTable is the table name used inside exported databases
const SQLiteTable = "resolution_results"

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// WriteSQLite writes the table into a fresh SQLite database at path.
// An existing file is replaced.
func WriteSQLite(tbl *table.Table, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	defer db.Close()

	columns := tbl.Columns()
	defs := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, name := range columns {
		values, err := tbl.Values(name)
		if err != nil {
			return err
		}
		typ := "TEXT"
		if columnIsNumeric(values) {
			typ = "REAL"
		}
		defs[i] = quoteIdent(name) + " " + typ
		marks[i] = "?"
	}

	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(SQLiteTable), strings.Join(defs, ", "))
	if _, err := db.Exec(create); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	quoted := make([]string, len(columns))
	for i, name := range columns {
		quoted[i] = quoteIdent(name)
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(SQLiteTable), strings.Join(quoted, ", "), strings.Join(marks, ", "))
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	var insertErr error
	args := make([]interface{}, len(columns))
	tbl.Each(func(i int, row []table.Value) {
		if insertErr != nil {
			return
		}
		for j, v := range row {
			switch v.Type {
			case table.Number:
				args[j] = v.Num
			case table.Text:
				args[j] = v.Str
			default:
				args[j] = nil
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			insertErr = fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}
	})
	if insertErr != nil {
		return insertErr
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
