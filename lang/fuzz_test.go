package lang

import (
	"errors"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"
)

// FuzzParse checks that Parse never panics and, for expressions whose
// quotes are all inside words, that it fails as malformed exactly when a
// plain bracket count says the nesting is wrong.
func FuzzParse(f *testing.F) {
	f.Add(`color(--x)`)
	f.Add(`"opacity(color(color-1, 0.5)"`)
	f.Add(`join(opacity(color(color-1),0.5),1,color(--bar),1)`)
	f.Add(`font({theme: 'Body-M', size: '10px'})`)
	f.Add(`calculate(+, unit(2,px), unit(number(--n),px))`)
	f.Add(`string(')')`)
	f.Add(`f(,)`)
	f.Add(`)(`)
	f.Add(`string(it's)`)
	f.Add(`unit(it's, don't)`)
	f.Add(`font({theme: it's})`)

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Parse panicked on input %q: %v", input, r)
			}
		}()

		c, err := Parse(input)

		src := unquote(strings.TrimSpace(input))

		if quotesInWords(src) {
			if malformed := errors.Is(err, ErrMalformedExpression); malformed == nested(src) {
				t.Errorf("input %q: nested %v but error %v", input, !malformed, err)
			}
		}

		if err != nil {
			return
		}

		again, err := Parse(c.String())
		if err != nil {
			return
		}

		if again.Name != c.Name || len(again.Args) != len(c.Args) {
			t.Errorf("input %q: expected %q after reparse, got %q", input, c, again)
		}
	})
}

// nested counts brackets without regard to quotes.
func nested(s string) bool {
	var open []rune

	pairs := map[rune]rune{')': '(', '}': '{', ']': '['}

	for _, r := range s {
		switch r {
		case '(', '{', '[':
			open = append(open, r)
		case ')', '}', ']':
			if len(open) == 0 || open[len(open)-1] != pairs[r] {
				return false
			}

			open = open[:len(open)-1]
		}
	}

	return len(open) == 0
}

// quotesInWords reports whether every quote in s directly follows a
// letter or digit, so none of them can open a string.
func quotesInWords(s string) bool {
	prev := ' '

	for _, r := range s {
		if (r == '\'' || r == '"') && !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
			return false
		}

		prev = r
	}

	return true
}
