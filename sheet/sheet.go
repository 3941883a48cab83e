package sheet

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrLex reports input the CSS lexer could not tokenize.
var ErrLex = errors.New("css lexer error")

// Declaration is one property/value pair of a block.
type Declaration struct {
	Key   string
	Value string
}

func (d Declaration) String() string { return d.Key + ": " + d.Value }

// Hooks receive the declarations of a stylesheet. Either may be nil.
type Hooks struct {
	// Declaration is called for each declaration in document order and
	// returns the declarations that take its place.
	Declaration func(Declaration) ([]Declaration, error)

	// Document is called once after every declaration has been visited.
	// It may rewrite the declarations in place.
	Document func([]*Declaration) error
}

// Walk visits the declarations of src with hooks and returns the rendered
// stylesheet.
func Walk(src string, hooks Hooks) (string, error) {
	root, err := parseSheet(src)
	if err != nil {
		return "", err
	}

	if hooks.Declaration != nil {
		if err := root.replace(hooks.Declaration); err != nil {
			return "", err
		}
	}

	if hooks.Document != nil {
		if err := hooks.Document(root.declarations(nil)); err != nil {
			return "", err
		}
	}

	var b strings.Builder

	root.render(&b)

	return b.String(), nil
}

// Declarations returns the declarations of src in document order.
func Declarations(src string) ([]Declaration, error) {
	root, err := parseSheet(src)
	if err != nil {
		return nil, err
	}

	ptrs := root.declarations(nil)
	decls := make([]Declaration, len(ptrs))

	for i, d := range ptrs {
		decls[i] = *d
	}

	return decls, nil
}

// block is the root of a stylesheet or the body of a rule.
type block struct {
	prelude string
	items   []item
}

// item is one entry of a block: a declaration, a verbatim statement, or a
// nested block. semi records whether the source ended it with ";".
type item struct {
	decl  *Declaration
	text  string
	child *block
	semi  bool
}

func (b *block) replace(fn func(Declaration) ([]Declaration, error)) error {
	items := make([]item, 0, len(b.items))

	for _, it := range b.items {
		switch {
		case it.child != nil:
			if err := it.child.replace(fn); err != nil {
				return err
			}

			items = append(items, it)

		case it.decl != nil:
			out, err := fn(*it.decl)
			if err != nil {
				return err
			}

			for i, d := range out {
				items = append(items, item{
					decl: &d,
					semi: it.semi || i < len(out)-1,
				})
			}

		default:
			items = append(items, it)
		}
	}

	b.items = items

	return nil
}

func (b *block) declarations(acc []*Declaration) []*Declaration {
	for _, it := range b.items {
		switch {
		case it.child != nil:
			acc = it.child.declarations(acc)
		case it.decl != nil:
			acc = append(acc, it.decl)
		}
	}

	return acc
}

func (b *block) render(w *strings.Builder) {
	for _, it := range b.items {
		switch {
		case it.child != nil:
			w.WriteString(it.child.prelude)
			w.WriteByte('{')
			it.child.render(w)
			w.WriteByte('}')

			continue

		case it.decl != nil:
			w.WriteString(it.decl.String())

		default:
			w.WriteString(it.text)
		}

		if it.semi {
			w.WriteByte(';')
		}
	}
}

// parser builds the block tree from the token stream.
type parser struct {
	lex *css.Lexer
	buf strings.Builder
}

func parseSheet(src string) (*block, error) {
	p := &parser{lex: css.NewLexer(parse.NewInputString(src))}

	root := &block{}
	if err := p.parseBlock(root, true); err != nil {
		return nil, err
	}

	return root, nil
}

// parseBlock reads items into b until the closing brace, or the end of
// input for the root.
func (p *parser) parseBlock(b *block, root bool) error {
	for {
		tt, data := p.lex.Next()

		switch tt {
		case css.ErrorToken:
			if err := p.lex.Err(); err != nil && !errors.Is(err, io.EOF) {
				return errors.Join(ErrLex, err)
			}

			p.flush(b, root, false)

			return nil

		case css.CommentToken:

		case css.WhitespaceToken:
			if s := p.buf.String(); s != "" && !strings.HasSuffix(s, " ") {
				p.buf.WriteByte(' ')
			}

		case css.SemicolonToken:
			p.flush(b, root, true)

		case css.LeftBraceToken:
			child := &block{prelude: p.take()}
			if err := p.parseBlock(child, false); err != nil {
				return err
			}

			b.items = append(b.items, item{child: child})

		case css.RightBraceToken:
			if root {
				p.write(data)

				continue
			}

			p.flush(b, false, false)

			return nil

		default:
			p.write(data)
		}
	}
}

func (p *parser) write(data []byte) { p.buf.Write(data) }

// take returns the buffered text, trimmed, and resets the buffer.
func (p *parser) take() string {
	s := strings.TrimSpace(p.buf.String())
	p.buf.Reset()

	return s
}

// flush turns the buffered text into an item of b.
func (p *parser) flush(b *block, root, semi bool) {
	text := p.take()
	if text == "" {
		return
	}

	if !root && !strings.HasPrefix(text, "@") {
		if key, value, ok := splitDeclaration(text); ok {
			b.items = append(b.items, item{
				decl: &Declaration{Key: key, Value: value},
				semi: semi,
			})

			return
		}
	}

	b.items = append(b.items, item{text: text, semi: semi})
}

// splitDeclaration splits "key: value" at the first colon outside quotes.
func splitDeclaration(text string) (key, value string, ok bool) {
	var quote byte

	for i := 0; i < len(text); i++ {
		switch ch := text[i]; {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}

		case ch == '"' || ch == '\'':
			quote = ch

		case ch == ':':
			return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:]), true
		}
	}

	return "", "", false
}

// LogValue summarizes d for structured logging.
func (d Declaration) LogValue() slog.Value {
	return slog.GroupValue(slog.String("key", d.Key), slog.String("value", d.Value))
}
