package lang

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Declaration is one CSS property/value pair.
type Declaration struct {
	Key   string
	Value string
}

func (d Declaration) String() string { return d.Key + ": " + d.Value }

// Field identifies which side of a declaration an occurrence was found in.
type Field uint8

const (
	FieldKey Field = iota
	FieldValue
)

func (f Field) String() string {
	if f == FieldKey {
		return "key"
	}

	return "value"
}

// Span is a half-open byte range [Start, End).
type Span struct {
	Start, End int
}

// Occurrence is one custom-syntax expression found in a declaration. Raw
// includes the surrounding double quotes; Span covers exactly Raw.
type Occurrence struct {
	Raw   string
	Field Field
	Span  Span

	key string // set by [Pass.Extract] for repeats in a new scope
}

// replacement returns the key of o's replacement text.
func (o Occurrence) replacement() string {
	if o.key != "" {
		return o.key
	}

	return o.Raw
}

// Extract returns the custom-syntax expressions in the key and value of a
// declaration, key first, each in the order they appear. An expression is
// a double-quoted CSS string whose content is a function call.
func Extract(key, value string) []Occurrence {
	return append(scan(key, FieldKey), scan(value, FieldValue)...)
}

// scan lexes text and returns each double-quoted string token that
// holds an expression.
func scan(text string, field Field) []Occurrence {
	if !strings.Contains(text, `"`) {
		return nil
	}

	var (
		found []Occurrence
		pos   int
	)

	lex := css.NewLexer(parse.NewInputString(text))

	for {
		tt, data := lex.Next()
		if tt == css.ErrorToken {
			return found
		}

		if tt == css.StringToken && len(data) >= 2 && data[0] == '"' &&
			IsExpression(string(data)) {
			found = append(found, Occurrence{
				Raw:   string(data),
				Field: field,
				Span:  Span{Start: pos, End: pos + len(data)},
			})
		}

		pos += len(data)
	}
}

// Binding is the custom-property binding a declaration introduces. Exactly
// one of Expr and Literal is meaningful: Expr holds the raw quoted
// expression when IsExpr is set, otherwise Literal holds the trimmed
// value text.
type Binding struct {
	Name    string
	Expr    string
	Literal string
	IsExpr  bool
}

// BindingOf reports the binding introduced by a "--name: value"
// declaration. The binding is an expression when the whole value is a
// single quoted expression, and a raw literal otherwise.
func BindingOf(key, value string) (Binding, bool) {
	key = strings.TrimSpace(key)

	name, ok := strings.CutPrefix(key, "--")
	if !ok || name == "" {
		return Binding{}, false
	}

	value = strings.TrimSpace(value)

	if occ := scan(value, FieldValue); len(occ) == 1 &&
		occ[0].Span == (Span{Start: 0, End: len(value)}) {
		return Binding{Name: name, Expr: occ[0].Raw, IsExpr: true}, true
	}

	return Binding{Name: name, Literal: value}, true
}

// Substitute rewrites the occurrences of d by span, using the replacement
// text for each raw expression. Occurrences with no replacement are left
// as they are. Spans must refer to d as it was extracted.
func Substitute(d Declaration, occ []Occurrence, repl map[string]string) Declaration {
	var keyOcc, valOcc []Occurrence

	for _, o := range occ {
		if o.Field == FieldKey {
			keyOcc = append(keyOcc, o)
		} else {
			valOcc = append(valOcc, o)
		}
	}

	return Declaration{
		Key:   splice(d.Key, keyOcc, repl),
		Value: splice(d.Value, valOcc, repl),
	}
}

func splice(text string, occ []Occurrence, repl map[string]string) string {
	if len(occ) == 0 {
		return text
	}

	var (
		b    strings.Builder
		last int
	)

	for _, o := range occ {
		r, ok := repl[o.replacement()]
		if !ok || o.Span.Start < last || o.Span.End > len(text) ||
			text[o.Span.Start:o.Span.End] != o.Raw {
			continue
		}

		b.WriteString(text[last:o.Span.Start])
		b.WriteString(r)

		last = o.Span.End
	}

	b.WriteString(text[last:])

	return b.String()
}
