// pkg/normalize/normalize.go

// Package normalize holds the pure field-level cleaning rules. Every
// function here resolves bad input by defaulting or passing the original
// value through (soft fallback); the single exception is DigitKey, whose
// failure is a hard per-row condition surfaced as *MappingError.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fleximart/retail-ingress/pkg/model"
)

// DefaultCountryPrefix is the canonical phone prefix when none is configured.
const DefaultCountryPrefix = "+91"

// isoDate is the canonical output layout for normalized dates.
const isoDate = "2006-01-02"

// dateLayouts are tried in order. Day-first layouts come before their
// month-first counterparts so that an ambiguous date like 01/02/2023 reads
// as the 1st of February.
var dateLayouts = []string{
	isoDate,
	"02/01/2006",
	"02-01-2006",
	"01/02/2006",
	"01-02-2006",
	"2006/01/02",
}

// MappingError reports a value that cannot be remapped to an internal key.
type MappingError struct {
	Field string
	Value string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("cannot map %s value %q to a numeric key", e.Field, e.Value)
}

// Phone standardizes a raw phone value to "<prefix>-XXXXXXXXXX".
//
// All non-digit characters are stripped first. Ten digits get the prefix;
// eleven digits with a leading zero drop the zero; twelve digits starting
// with the country code "91" drop that code. Any other digit count returns
// the original value untouched - the caller asked for standardization, not
// validation, so an unrecognized shape passes through rather than failing.
// A null input stays null.
func Phone(v model.Value, prefix string) model.Value {
	if v.IsNull() {
		return model.Null()
	}
	if prefix == "" {
		prefix = DefaultCountryPrefix
	}

	raw := v.Text()
	digits := digitsOf(raw)

	switch {
	case len(digits) == 10:
		return model.String(prefix + "-" + digits)
	case len(digits) == 11 && digits[0] == '0':
		return model.String(prefix + "-" + digits[1:])
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return model.String(prefix + "-" + digits[2:])
	default:
		return v
	}
}

// Date parses a heterogeneously formatted date and renders it as
// YYYY-MM-DD. Null or empty input, and anything no layout accepts,
// comes back null; parse failures are swallowed, never propagated.
func Date(v model.Value) model.Value {
	if v.IsNull() {
		return model.Null()
	}

	raw := strings.TrimSpace(v.Text())
	if raw == "" {
		return model.Null()
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return model.String(t.Format(isoDate))
		}
	}
	return model.Null()
}

// Float coerces a raw value to float64, yielding fallback for null,
// non-numeric, or non-finite input. NaN and Inf parse, but a quantity
// column cannot hold them; they fall back like any other bad cell.
func Float(v model.Value, fallback float64) float64 {
	switch v.Kind {
	case model.KindNumber:
		if !isFinite(v.Num) {
			return fallback
		}
		return v.Num
	case model.KindString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return fallback
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !isFinite(f) {
			return fallback
		}
		return f
	default:
		return fallback
	}
}

// Int coerces a raw value to int64, truncating fractional input and
// yielding fallback when nothing numeric is there.
func Int(v model.Value, fallback int64) int64 {
	switch v.Kind {
	case model.KindNumber:
		if !isFinite(v.Num) {
			return fallback
		}
		return int64(v.Num)
	case model.KindString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return fallback
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && isFinite(f) {
			return int64(f)
		}
		return fallback
	default:
		return fallback
	}
}

// DigitKey extracts the embedded digit run from an alphanumeric code and
// parses it as an integer: "C001" -> 1, "C042" -> 42. A code with no
// digits fails with *MappingError; there is no default for a key.
func DigitKey(code string) (int, error) {
	start := -1
	end := len(code)
	for i, r := range code {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			end = i
			break
		}
	}
	if start < 0 {
		return 0, &MappingError{Field: "customer_id", Value: code}
	}
	digits := code[start:end]
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &MappingError{Field: "customer_id", Value: code}
	}
	return n, nil
}

// Capitalize upper-cases the first letter and lower-cases the rest,
// matching the product-category house style.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
