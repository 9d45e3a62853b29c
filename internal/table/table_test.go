package table

import (
	"errors"
	"testing"
)

func mustTable(t *testing.T, names []string, rows ...[]Value) *Table {
	t.Helper()
	tbl := NewFromNames(names...)
	for _, r := range rows {
		if err := tbl.AppendRow(r); err != nil {
			t.Fatalf("AppendRow failed: %v", err)
		}
	}
	return tbl
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Value
	}{
		{name: "empty is null", raw: "", expected: NullValue()},
		{name: "whitespace is null", raw: "   ", expected: NullValue()},
		{name: "NaN marker is null", raw: "NaN", expected: NullValue()},
		{name: "integer", raw: "2003", expected: NumberValue(2003)},
		{name: "float", raw: "0.25", expected: NumberValue(0.25)},
		{name: "text", raw: "Deep Learning", expected: TextValue("Deep Learning")},
		{name: "infinity stays text", raw: "Inf", expected: TextValue("Inf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseValue(tt.raw)
			if !got.Equal(tt.expected) {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestParseColumn(t *testing.T) {
	tests := []struct {
		name     string
		raw      []string
		expected []Value
	}{
		{
			name:     "all numbers",
			raw:      []string{"2001", "", "1.5"},
			expected: []Value{NumberValue(2001), NullValue(), NumberValue(1.5)},
		},
		{
			name:     "mixed keeps spelling",
			raw:      []string{"02134", "MA 02134", "1.50", "NA"},
			expected: []Value{TextValue("02134"), TextValue("MA 02134"), TextValue("1.50"), NullValue()},
		},
		{
			name:     "all missing",
			raw:      []string{"", "NaN"},
			expected: []Value{NullValue(), NullValue()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseColumn(tt.raw)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d values, got %d", len(tt.expected), len(got))
			}
			for i := range got {
				if !got[i].Equal(tt.expected[i]) {
					t.Errorf("Expected %+v at %d, got %+v", tt.expected[i], i, got[i])
				}
			}
		})
	}
}

func TestValueString(t *testing.T) {
	if s := NumberValue(2003).String(); s != "2003" {
		t.Errorf("Expected 2003, got %s", s)
	}
	if s := NullValue().String(); s != "" {
		t.Errorf("Expected empty string for null, got %q", s)
	}
}

func TestInferSchema(t *testing.T) {
	tbl := mustTable(t, []string{"title", "year", "venue"},
		[]Value{TextValue("a"), NumberValue(2001), NullValue()},
		[]Value{NullValue(), NumberValue(2002), NullValue()},
	)

	inferred := InferSchema(tbl)
	schema := inferred.Schema()

	if schema[0].Kind != Textual {
		t.Errorf("Expected title to be textual, got %s", schema[0].Kind)
	}
	if schema[1].Kind != Structured {
		t.Errorf("Expected year to be structured, got %s", schema[1].Kind)
	}
	if schema[2].Kind != Structured {
		t.Errorf("Expected all-null venue to be structured, got %s", schema[2].Kind)
	}

	// input untouched
	if tbl.Schema()[0].Kind != Structured {
		t.Error("InferSchema modified its input")
	}
}

func TestApplySchema(t *testing.T) {
	tbl := mustTable(t, []string{"title", "year"})

	out, err := ApplySchema(tbl, map[string]Kind{"year": Textual})
	if err != nil {
		t.Fatalf("ApplySchema failed: %v", err)
	}
	if got := out.Schema().Textual(); len(got) != 1 || got[0] != "year" {
		t.Errorf("Expected [year] textual, got %v", got)
	}

	_, err = ApplySchema(tbl, map[string]Kind{"missing": Textual})
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Expected ErrColumnNotFound, got %v", err)
	}
}

func TestWithColumnDoesNotMutate(t *testing.T) {
	tbl := mustTable(t, []string{"title"},
		[]Value{TextValue("a")},
		[]Value{TextValue("b")},
	)

	out, err := tbl.WithFloatColumn("score", []float64{1, 2})
	if err != nil {
		t.Fatalf("WithFloatColumn failed: %v", err)
	}

	if tbl.Has("score") {
		t.Error("Expected original table to be unchanged")
	}
	scores, err := out.Floats("score")
	if err != nil {
		t.Fatalf("Floats failed: %v", err)
	}
	if scores[0] != 1 || scores[1] != 2 {
		t.Errorf("Expected [1 2], got %v", scores)
	}

	if _, err := tbl.WithFloatColumn("score", []float64{1}); err == nil {
		t.Error("Expected error for length mismatch, got nil")
	}
}

func TestSortByFloatDescIsStable(t *testing.T) {
	tbl := mustTable(t, []string{"id", "score"},
		[]Value{TextValue("a"), NumberValue(1)},
		[]Value{TextValue("b"), NumberValue(3)},
		[]Value{TextValue("c"), NumberValue(1)},
		[]Value{TextValue("d"), NumberValue(3)},
	)

	sorted, err := tbl.SortByFloatDesc("score")
	if err != nil {
		t.Fatalf("SortByFloatDesc failed: %v", err)
	}

	ids, _ := sorted.Values("id")
	expected := []string{"b", "d", "a", "c"}
	for i, want := range expected {
		if ids[i].String() != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, ids[i].String())
		}
	}
}

func TestSortByStringAsc(t *testing.T) {
	tests := []struct {
		name     string
		values   []Value
		expected []string
	}{
		{
			name:     "numbers by value",
			values:   []Value{NumberValue(100), NullValue(), NumberValue(20), NumberValue(3)},
			expected: []string{"3", "20", "100", ""},
		},
		{
			name:     "text by spelling",
			values:   []Value{TextValue("b"), TextValue("a"), NullValue(), TextValue("c")},
			expected: []string{"a", "b", "c", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([][]Value, len(tt.values))
			for i, v := range tt.values {
				rows[i] = []Value{v}
			}
			tbl := mustTable(t, []string{"key"}, rows...)

			sorted, err := tbl.SortByStringAsc("key")
			if err != nil {
				t.Fatalf("SortByStringAsc failed: %v", err)
			}
			values, _ := sorted.Values("key")
			for i, want := range tt.expected {
				if values[i].String() != want {
					t.Errorf("Position %d: expected %q, got %q", i, want, values[i].String())
				}
			}
		})
	}
}

func TestConcat(t *testing.T) {
	a := mustTable(t, []string{"title", "year"}, []Value{TextValue("a"), NumberValue(1)})
	b := mustTable(t, []string{"year", "title"}, []Value{NumberValue(2), TextValue("b")})

	out, err := Concat(a, b)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", out.Len())
	}
	titles, _ := out.Values("title")
	if titles[1].String() != "b" {
		t.Errorf("Expected second title b, got %s", titles[1].String())
	}

	c := mustTable(t, []string{"title", "venue"})
	if _, err := Concat(a, c); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("Expected ErrSchemaMismatch, got %v", err)
	}
}

func TestRenameRejectsDuplicates(t *testing.T) {
	tbl := mustTable(t, []string{"Title", "title"})
	if _, err := tbl.Rename(map[string]string{"Title": "title"}); err == nil {
		t.Error("Expected error for duplicate column, got nil")
	}

	out, err := tbl.Rename(map[string]string{"Title": "name"})
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if !out.Has("name") || out.Has("Title") {
		t.Errorf("Expected Title renamed to name, got %v", out.Columns())
	}
}

func TestHeadAndWithout(t *testing.T) {
	tbl := mustTable(t, []string{"a", "b"},
		[]Value{NumberValue(1), NumberValue(2)},
		[]Value{NumberValue(3), NumberValue(4)},
		[]Value{NumberValue(5), NumberValue(6)},
	)

	if got := tbl.Head(2).Len(); got != 2 {
		t.Errorf("Expected 2 rows, got %d", got)
	}
	if got := tbl.Head(0).Len(); got != 3 {
		t.Errorf("Expected Head(0) to keep all rows, got %d", got)
	}

	out := tbl.Without("a", "zzz")
	if cols := out.Columns(); len(cols) != 1 || cols[0] != "b" {
		t.Errorf("Expected [b], got %v", cols)
	}
}
