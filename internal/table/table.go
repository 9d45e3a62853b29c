// Package table holds the in-memory record table shared by every pipeline stage.
//
// Tables are treated as values: every operation that changes columns or row
// order returns a new *Table and leaves the receiver untouched. Row order is
// the positional index used to line derived columns up with their rows.
package table

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrSchemaMismatch is returned when two tables that must share a column set do not
	ErrSchemaMismatch = errors.New("column sets do not match")
	// ErrColumnNotFound is returned when a named column is not in the table
	ErrColumnNotFound = errors.New("column not found")
)

// Table is an ordered sequence of rows over a fixed schema
type Table struct {
	schema Schema
	rows   [][]Value
}

// New creates an empty table with the given columns
func New(schema Schema) *Table {
	return &Table{schema: schema.clone()}
}

// NewFromNames creates an empty table whose columns are all structured
func NewFromNames(names ...string) *Table {
	schema := make(Schema, len(names))
	for i, n := range names {
		schema[i] = Column{Name: n}
	}
	return &Table{schema: schema}
}

func (t *Table) shallow() *Table {
	return &Table{schema: t.schema, rows: t.rows}
}

// AppendRow adds a row; the row must have one value per column
func (t *Table) AppendRow(row []Value) error {
	if len(row) != len(t.schema) {
		return fmt.Errorf("row has %d values, table has %d columns", len(row), len(t.schema))
	}
	r := make([]Value, len(row))
	copy(r, row)
	t.rows = append(t.rows, r)
	return nil
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Empty reports whether the table has no rows
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// Schema returns a copy of the table's columns
func (t *Table) Schema() Schema {
	return t.schema.clone()
}

// Columns returns the column names in order
func (t *Table) Columns() []string {
	return t.schema.Names()
}

// Has reports whether the named column exists
func (t *Table) Has(name string) bool {
	return t.schema.Index(name) >= 0
}

// Row returns a copy of row i
func (t *Table) Row(i int) []Value {
	r := make([]Value, len(t.rows[i]))
	copy(r, t.rows[i])
	return r
}

// Rows returns a copy of every row
func (t *Table) Rows() [][]Value {
	out := make([][]Value, len(t.rows))
	for i := range t.rows {
		out[i] = t.Row(i)
	}
	return out
}

// Each calls fn for every row in order. fn must not modify row.
func (t *Table) Each(fn func(i int, row []Value)) {
	for i, row := range t.rows {
		fn(i, row)
	}
}

// Values returns a copy of the named column
func (t *Table) Values(name string) ([]Value, error) {
	idx := t.schema.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrColumnNotFound)
	}
	out := make([]Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Floats returns the named column as float64s; non-numeric cells read as 0
func (t *Table) Floats(name string) ([]float64, error) {
	values, err := t.Values(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i], _ = v.Float()
	}
	return out, nil
}

// WithColumn returns a new table with the column set to values.
// An existing column of the same name is replaced in place, otherwise the
// column is appended.
func (t *Table) WithColumn(name string, kind Kind, values []Value) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.rows))
	}

	out := &Table{schema: t.schema.clone(), rows: make([][]Value, len(t.rows))}
	idx := out.schema.Index(name)
	if idx < 0 {
		out.schema = append(out.schema, Column{Name: name, Kind: kind})
	} else {
		out.schema[idx].Kind = kind
	}

	for i, row := range t.rows {
		r := make([]Value, len(out.schema))
		copy(r, row)
		if idx < 0 {
			r[len(r)-1] = values[i]
		} else {
			r[idx] = values[i]
		}
		out.rows[i] = r
	}
	return out, nil
}

// WithFloatColumn is WithColumn for a structured numeric column
func (t *Table) WithFloatColumn(name string, values []float64) (*Table, error) {
	cells := make([]Value, len(values))
	for i, f := range values {
		cells[i] = NumberValue(f)
	}
	return t.WithColumn(name, Structured, cells)
}

// Select returns a new table with only the named columns, in the given order
func (t *Table) Select(names ...string) (*Table, error) {
	idxs := make([]int, len(names))
	schema := make(Schema, len(names))
	for i, n := range names {
		idx := t.schema.Index(n)
		if idx < 0 {
			return nil, fmt.Errorf("%q: %w", n, ErrColumnNotFound)
		}
		idxs[i] = idx
		schema[i] = t.schema[idx]
	}

	out := &Table{schema: schema, rows: make([][]Value, len(t.rows))}
	for i, row := range t.rows {
		r := make([]Value, len(idxs))
		for j, idx := range idxs {
			r[j] = row[idx]
		}
		out.rows[i] = r
	}
	return out, nil
}

// Without returns a new table without the named columns; unknown names are ignored
func (t *Table) Without(names ...string) *Table {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	var keep []string
	for _, c := range t.schema {
		if _, ok := drop[c.Name]; !ok {
			keep = append(keep, c.Name)
		}
	}
	out, _ := t.Select(keep...)
	return out
}

// Rename returns a new table with columns renamed by the old->new mapping.
// Renaming onto a name that already exists is an error.
func (t *Table) Rename(mapping map[string]string) (*Table, error) {
	out := t.shallow()
	out.schema = t.schema.clone()
	for i, c := range out.schema {
		if newName, ok := mapping[c.Name]; ok {
			out.schema[i].Name = newName
		}
	}

	seen := make(map[string]struct{}, len(out.schema))
	for _, c := range out.schema {
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("rename produces duplicate column %q", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return out, nil
}

// SortStable returns a new table with rows ordered by less; equal rows keep their relative order
func (t *Table) SortStable(less func(a, b []Value) bool) *Table {
	rows := make([][]Value, len(t.rows))
	copy(rows, t.rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return less(rows[i], rows[j])
	})
	return &Table{schema: t.schema.clone(), rows: rows}
}

// SortByFloatDesc sorts by a numeric column, largest first, stable on ties
func (t *Table) SortByFloatDesc(name string) (*Table, error) {
	idx := t.schema.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrColumnNotFound)
	}
	return t.SortStable(func(a, b []Value) bool {
		fa, _ := a[idx].Float()
		fb, _ := b[idx].Float()
		return fa > fb
	}), nil
}

// SortByStringAsc sorts a column ascending. Two numeric cells compare by
// value, anything else by its rendered text; missing cells go last.
func (t *Table) SortByStringAsc(name string) (*Table, error) {
	idx := t.schema.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrColumnNotFound)
	}
	return t.SortStable(func(a, b []Value) bool {
		if a[idx].IsNull() || b[idx].IsNull() {
			return !a[idx].IsNull() && b[idx].IsNull()
		}
		if a[idx].Type == Number && b[idx].Type == Number {
			return a[idx].Num < b[idx].Num
		}
		return a[idx].String() < b[idx].String()
	}), nil
}

// Head returns the first n rows (all rows when n <= 0 or n >= Len)
func (t *Table) Head(n int) *Table {
	if n <= 0 || n >= len(t.rows) {
		return t.shallow()
	}
	return &Table{schema: t.schema.clone(), rows: t.rows[:n:n]}
}

// Concat appends b's rows after a's. Both tables must have the same column
// set; b's columns are reordered to a's order.
func Concat(a, b *Table) (*Table, error) {
	if len(a.schema) != len(b.schema) {
		return nil, fmt.Errorf("%d vs %d columns: %w", len(a.schema), len(b.schema), ErrSchemaMismatch)
	}
	order := make([]int, len(a.schema))
	for i, c := range a.schema {
		idx := b.schema.Index(c.Name)
		if idx < 0 {
			return nil, fmt.Errorf("column %q missing from second table: %w", c.Name, ErrSchemaMismatch)
		}
		order[i] = idx
	}

	out := &Table{schema: a.schema.clone(), rows: make([][]Value, 0, len(a.rows)+len(b.rows))}
	out.rows = append(out.rows, a.rows...)
	for _, row := range b.rows {
		r := make([]Value, len(order))
		for i, idx := range order {
			r[i] = row[idx]
		}
		out.rows = append(out.rows, r)
	}
	return out, nil
}
