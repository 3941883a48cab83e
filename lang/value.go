package lang

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	KindUnresolved Kind = iota
	KindNumber
	KindColor
	KindFont
	KindString
	KindOverride
)

func (k Kind) String() string {
	switch k {
	case KindUnresolved:
		return "unresolved"
	case KindNumber:
		return "number"
	case KindColor:
		return "color"
	case KindFont:
		return "font"
	case KindString:
		return "string"
	case KindOverride:
		return "override"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is the result of evaluating an argument or call. The zero Value is
// [Unresolved].
type Value struct {
	kind     Kind
	num      float64
	text     string
	keepZero bool
	font     *Font
	entries  []Entry
}

// Unresolved is the value of a variable that could not be found. It renders
// as "undefined".
//
//nolint:gochecknoglobals
var Unresolved = Value{}

// NumberValue returns a numeric value.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// ColorValue returns a color given as CSS color text.
func ColorValue(s string) Value { return Value{kind: KindColor, text: s} }

// FontValue returns a font shorthand carrying the record it was built from.
func FontValue(f Font) Value {
	return Value{kind: KindFont, text: f.Shorthand(), font: &f}
}

// FontString returns a font shorthand with no backing record.
func FontString(s string) Value { return Value{kind: KindFont, text: s} }

// StringValue returns plain text.
func StringValue(s string) Value { return Value{kind: KindString, text: s} }

// OverrideValue returns an object literal value.
func OverrideValue(entries []Entry) Value {
	return Value{kind: KindOverride, entries: entries}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// Number returns the numeric content of v. Strings holding a number are
// converted.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString, KindColor, KindFont:
		return parseNumber(v.text)
	default:
		return 0, false
	}
}

// Font returns the record behind a font value, if any.
func (v Value) Font() (Font, bool) {
	if v.font == nil {
		return Font{}, false
	}

	return *v.font, true
}

// Entries returns the key/value pairs of an object literal value.
func (v Value) Entries() []Entry { return v.entries }

// Text returns the rendered form of v. It is the same as [Value.String].
func (v Value) Text() string { return v.String() }

// String renders v as CSS text.
func (v Value) String() string {
	switch v.kind {
	case KindUnresolved:
		return "undefined"
	case KindNumber:
		return formatNumber(v.num)
	case KindOverride:
		return Override{Entries: v.entries}.String()
	default:
		return v.text
	}
}

// IsPresent reports whether v counts as supplied for the purposes of
// fallback. Unresolved values and empty text are absent, and so is numeric
// 0 unless it was produced by zeroAsTrue.
func (v Value) IsPresent() bool {
	switch v.kind {
	case KindUnresolved:
		return false
	case KindNumber:
		return v.num != 0 || v.keepZero
	case KindOverride:
		return true
	default:
		return v.text != ""
	}
}

// withKeepZero returns v marked so that a numeric 0 stays present.
func (v Value) withKeepZero() Value {
	v.keepZero = true

	return v
}

// Equal reports whether v and w render identically and have the same kind.
func (v Value) Equal(w Value) bool {
	return v.kind == w.kind && v.String() == w.String()
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}

	if f == 0 {
		return "0"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseNumber parses a plain CSS number such as "42", "-0.5" or "1e3".
// Units, hex notation, and the Go spellings of infinity and NaN are
// rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
		case (r == '+' || r == '-') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
		case (r == 'e' || r == 'E') && i > 0:
		default:
			return 0, false
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}
