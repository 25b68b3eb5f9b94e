// pkg/model/value.go
package model

import (
	"strconv"
	"strings"
)

// Kind tags a raw cell value as one of the three shapes the extractors
// can produce.
type Kind int

const (
	// KindNull marks an absent or empty cell.
	KindNull Kind = iota
	// KindString marks a textual cell.
	KindString
	// KindNumber marks a cell that parsed as a number on extraction.
	KindNumber
)

// Value is a tagged raw cell value. Normalizers switch on Kind explicitly
// instead of relying on implicit coercion.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
}

// Null returns the null value.
func Null() Value {
	return Value{Kind: KindNull}
}

// String returns a string-tagged value.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Number returns a number-tagged value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Text renders the value as the string a reader of the raw file would see.
// Numbers render without a trailing ".0" when integral.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// RawRow is one extracted record: column name to tagged cell value.
// Immutable once produced by extraction.
type RawRow map[string]Value

// Get returns the named cell, or Null when the column is missing.
func (r RawRow) Get(col string) Value {
	if v, ok := r[col]; ok {
		return v
	}
	return Null()
}

// GetTrimmed returns the named cell with surrounding whitespace removed;
// a cell that trims to the empty string collapses to Null.
func (r RawRow) GetTrimmed(col string) Value {
	v := r.Get(col)
	if v.Kind == KindString {
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return Null()
		}
		return String(s)
	}
	return v
}
