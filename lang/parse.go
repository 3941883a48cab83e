package lang

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse parses one custom-syntax expression into its call tree. raw may
// include the surrounding double quotes it was extracted with.
//
// Parenthesis balance is checked before anything else, so an expression
// with unbalanced parentheses always fails with [ErrMalformedExpression]
// regardless of other syntax errors. Other grammar violations fail with
// [ErrSyntax].
func Parse(raw string) (*Call, error) {
	src := unquote(strings.TrimSpace(raw))

	if !balanced(src) {
		return nil, malformed(raw)
	}

	p := &parser{input: src, raw: raw}

	p.skipSpace()

	call, err := p.parseCall()
	if err != nil {
		return nil, err
	}

	p.skipSpace()

	if !p.eof() {
		return nil, p.fail("unexpected trailing input")
	}

	return call, nil
}

// IsExpression reports whether s, with or without its surrounding double
// quotes, has the shape of a custom-syntax call: a function name followed
// immediately by "(" and ending with ")". It does not validate the
// arguments.
func IsExpression(s string) bool {
	s = strings.TrimSpace(unquote(strings.TrimSpace(s)))
	if !strings.HasSuffix(s, ")") {
		return false
	}

	n := identLen(s)

	return n > 0 && n < len(s) && s[n] == '('
}

// balanced reports whether the parentheses, braces and brackets of s
// outside quoted strings are properly nested. Quotes are recognized as
// [quotedAt] does, so an apostrophe inside a literal is plain text.
func balanced(s string) bool {
	var open []byte

	for i := 0; i < len(s); i++ {
		if end, ok := quotedAt(s, i); ok {
			i = end - 1

			continue
		}

		switch ch := s[i]; {
		case ch == '(' || ch == '{' || ch == '[':
			open = append(open, ch)

		case ch == ')' || ch == '}' || ch == ']':
			if len(open) == 0 || open[len(open)-1] != opener(ch) {
				return false
			}

			open = open[:len(open)-1]
		}
	}

	return len(open) == 0
}

// quotedAt returns the offset just past the quoted string that starts at
// s[i], if one does. A quote opens a string only where a value starts,
// after '(', ',', '{', '[' or ':' and optional whitespace, and only if it
// is closed before the end of s.
func quotedAt(s string, i int) (int, bool) {
	q := s[i]
	if q != '\'' && q != '"' {
		return 0, false
	}

	prev := strings.TrimRightFunc(s[:i], unicode.IsSpace)
	if prev == "" || !strings.ContainsRune("(,{[:", rune(prev[len(prev)-1])) {
		return 0, false
	}

	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case q:
			return j + 1, true
		}
	}

	return 0, false
}

func opener(closer byte) byte {
	switch closer {
	case ')':
		return '('
	case '}':
		return '{'
	default:
		return '['
	}
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}

	return s
}

type parser struct {
	input string
	raw   string
	pos   int
}

// parseCall parses name '(' args ')'.
func (p *parser) parseCall() (*Call, error) {
	name := p.parseIdentifier()
	if name == "" {
		return nil, p.fail("expected function name")
	}

	p.skipSpace()

	if !p.expect('(') {
		return nil, p.fail("expected '(' after " + name)
	}

	call := &Call{Name: name}

	p.skipSpace()

	if p.expect(')') {
		return call, nil
	}

	for {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}

		call.Args = append(call.Args, arg)

		p.skipSpace()

		switch {
		case p.expect(','):
			continue
		case p.expect(')'):
			return call, nil
		default:
			return nil, p.fail("expected ',' or ')' in arguments of " + name)
		}
	}
}

// parseArg parses call | varref | object-literal | literal.
func (p *parser) parseArg() (Arg, error) {
	p.skipSpace()

	switch {
	case p.peek() == '{':
		return p.parseOverride()

	case strings.HasPrefix(p.input[p.pos:], "--"):
		start := p.pos
		p.pos += 2

		name := p.parseIdentifier()
		if name != "" && p.atArgEnd() {
			return VarRef{Name: name}, nil
		}

		p.pos = start

	default:
		start := p.pos

		if name := p.parseIdentifier(); name != "" {
			p.skipSpace()

			if p.peek() == '(' {
				p.pos = start

				return p.parseCall()
			}
		}

		p.pos = start
	}

	text, ok := p.captureLiteral()
	if !ok {
		return nil, p.fail("empty argument")
	}

	return Literal{Text: text}, nil
}

// parseOverride parses '{' key ':' value (',' key ':' value)* '}'.
// Values are normally quoted; bare values run to the next ',' or '}'.
func (p *parser) parseOverride() (Arg, error) {
	p.expect('{')

	var o Override

	for {
		p.skipSpace()

		if p.expect('}') {
			return o, nil
		}

		key := p.parseIdentifier()
		if key == "" {
			return nil, p.fail("expected key in object literal")
		}

		p.skipSpace()

		if !p.expect(':') {
			return nil, p.fail("expected ':' after " + key)
		}

		p.skipSpace()

		var (
			value  string
			quoted bool
		)

		start := p.pos

		if q := p.peek(); q == '\'' || q == '"' {
			value, quoted = p.parseQuoted(byte(q))
		}

		if !quoted {
			p.pos = start
			for !p.eof() && p.peek() != ',' && p.peek() != '}' {
				p.advance()
			}

			value = strings.TrimSpace(p.input[start:p.pos])
		}

		o.Entries = append(o.Entries, Entry{Key: key, Value: value})

		p.skipSpace()

		if p.expect(',') {
			continue
		}

		if p.expect('}') {
			return o, nil
		}

		return nil, p.fail("expected ',' or '}' in object literal")
	}
}

// captureLiteral consumes text up to the next top-level ',' or ')'. Nested
// brackets and quoted strings are skipped over; a quote inside the text,
// as in it's, is an ordinary character. A literal that is exactly
// one quoted string yields its unescaped content.
func (p *parser) captureLiteral() (string, bool) {
	start := p.pos

	if q := p.peek(); q == '\'' || q == '"' {
		if s, ok := p.parseQuoted(byte(q)); ok && p.atArgEnd() {
			p.skipSpace()

			return s, true
		}

		p.pos = start
	}

	depth := 0

loop:
	for !p.eof() {
		switch ch := p.peek(); ch {
		case '\'', '"':
			if end, ok := quotedAt(p.input, p.pos); ok {
				p.pos = end

				continue
			}

		case '(', '[', '{':
			depth++

		case ')', ']', '}':
			if depth == 0 {
				break loop
			}

			depth--

		case ',':
			if depth == 0 {
				break loop
			}
		}

		p.advance()
	}

	text := strings.TrimSpace(p.input[start:p.pos])

	return text, text != ""
}

// parseQuoted consumes a string delimited by q and returns its content.
func (p *parser) parseQuoted(q byte) (string, bool) {
	p.pos++ // opening quote

	var b strings.Builder

	for !p.eof() {
		ch := p.input[p.pos]

		switch ch {
		case '\\':
			if p.pos+1 < len(p.input) {
				b.WriteByte(p.input[p.pos+1])
				p.pos += 2

				continue
			}

		case q:
			p.pos++

			return b.String(), true
		}

		b.WriteByte(ch)
		p.pos++
	}

	return b.String(), false
}

// parseIdentifier consumes [A-Za-z_][A-Za-z0-9_-]* and returns it, or ""
// without consuming anything.
func (p *parser) parseIdentifier() string {
	n := identLen(p.input[p.pos:])
	s := p.input[p.pos : p.pos+n]
	p.pos += n

	return s
}

func identLen(s string) int {
	n := 0

	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || unicode.IsDigit(r)):
		default:
			return n
		}

		n = i + utf8.RuneLen(r)
	}

	return n
}

// atArgEnd reports whether only whitespace separates the position from the
// next ',' or ')'.
func (p *parser) atArgEnd() bool {
	rest := strings.TrimLeftFunc(p.input[p.pos:], unicode.IsSpace)

	return rest == "" || rest[0] == ',' || rest[0] == ')'
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.advance()
	}
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])

	return r
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	_, size := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += size
}

func (p *parser) expect(ch rune) bool {
	if p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) fail(reason string) *Error {
	return ErrSyntax.With(
		slog.String("reason", reason),
		slog.String("expression", p.raw),
		slog.Int("offset", p.pos),
	)
}
