package table

import (
	"fmt"
	"strings"
)

// Kind tags a column as entering lexical scoring or not
type Kind int

const (
	Structured Kind = iota
	Textual
)

func (k Kind) String() string {
	if k == Textual {
		return "textual"
	}
	return "structured"
}

// ParseKind parses "textual" or "structured" (case-insensitive)
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "textual", "text":
		return Textual, nil
	case "structured":
		return Structured, nil
	default:
		return Structured, fmt.Errorf("unknown column kind: %q (expected textual or structured)", s)
	}
}

// Column describes one attribute of a table
type Column struct {
	Name string
	Kind Kind
}

// Schema is the ordered list of columns of a table
type Schema []Column

// Names returns the column names in order
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, or -1
func (s Schema) Index(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Textual returns the names of textual columns in schema order
func (s Schema) Textual() []string {
	var names []string
	for _, c := range s {
		if c.Kind == Textual {
			names = append(names, c.Name)
		}
	}
	return names
}

func (s Schema) clone() Schema {
	out := make(Schema, len(s))
	copy(out, s)
	return out
}

// InferSchema tags every column whose non-null values include text as textual,
// and every other column as structured.
func InferSchema(t *Table) *Table {
	out := t.shallow()
	out.schema = t.schema.clone()
	for ci := range out.schema {
		kind := Structured
		for _, row := range t.rows {
			if row[ci].Type == Text {
				kind = Textual
				break
			}
		}
		out.schema[ci].Kind = kind
	}
	return out
}

// ApplySchema overrides column kinds with a declared mapping.
// Columns not named in decl keep their current kind; names that are not in
// the table are an error so typos in configuration surface early.
func ApplySchema(t *Table, decl map[string]Kind) (*Table, error) {
	out := t.shallow()
	out.schema = t.schema.clone()
	for name, kind := range decl {
		idx := out.schema.Index(name)
		if idx < 0 {
			return nil, fmt.Errorf("declared column %q: %w", name, ErrColumnNotFound)
		}
		out.schema[idx].Kind = kind
	}
	return out, nil
}
