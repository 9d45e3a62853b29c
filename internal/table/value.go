package table

import (
	"math"
	"strconv"
	"strings"
)

// ValueType identifies what a cell holds
type ValueType int

const (
	Null ValueType = iota
	Text
	Number
)

// Value is a single cell: text, number or missing
type Value struct {
	Type ValueType
	Str  string
	Num  float64
}

// missingMarkers are cell spellings read as missing, in addition to the empty string
var missingMarkers = map[string]struct{}{
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"NULL": {},
	"null": {},
	"None": {},
}

// NullValue returns a missing cell
func NullValue() Value {
	return Value{Type: Null}
}

// TextValue returns a text cell
func TextValue(s string) Value {
	return Value{Type: Text, Str: s}
}

// NumberValue returns a numeric cell
func NumberValue(f float64) Value {
	if math.IsNaN(f) {
		return NullValue()
	}
	return Value{Type: Number, Num: f}
}

// ParseValue converts a raw CSV cell into a Value.
// Empty cells and the usual missing markers become null, finite floats become numbers.
func ParseValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NullValue()
	}
	if _, ok := missingMarkers[trimmed]; ok {
		return NullValue()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return NumberValue(f)
	}
	return TextValue(raw)
}

// ParseColumn converts the raw cells of one column. Numbers are kept only
// when every non-missing cell parses as one; a column holding any text keeps
// every cell's exact spelling, so "02134" stays "02134".
func ParseColumn(raw []string) []Value {
	out := make([]Value, len(raw))
	numeric := true
	for i, r := range raw {
		out[i] = ParseValue(r)
		if out[i].Type == Text {
			numeric = false
		}
	}
	if numeric {
		return out
	}
	for i, v := range out {
		if v.Type == Number {
			out[i] = TextValue(raw[i])
		}
	}
	return out
}

// IsNull reports whether the cell is missing
func (v Value) IsNull() bool {
	return v.Type == Null
}

// String renders the cell; missing cells render as the empty string
func (v Value) String() string {
	switch v.Type {
	case Text:
		return v.Str
	case Number:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// Float returns the numeric content of the cell, if any
func (v Value) Float() (float64, bool) {
	if v.Type != Number {
		return 0, false
	}
	return v.Num, true
}

// Equal compares two cells by type and content
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case Text:
		return v.Str == o.Str
	case Number:
		return v.Num == o.Num
	default:
		return true
	}
}
