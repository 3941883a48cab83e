package repl

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/cssfn/lang"
	"github.com/ardnew/cssfn/log"
)

// resultKey is the property an evaluated expression is declared under.
const resultKey = "result"

// session is the evaluation state of one REPL run: the palette context,
// the function registry, and the custom properties bound so far.
type session struct {
	ctx      lang.Context
	reg      *lang.Registry
	logger   log.Logger
	bindings []lang.Declaration
}

func newSession(ctx lang.Context, reg *lang.Registry, logger log.Logger) *session {
	if reg == nil {
		reg = lang.NewRegistry()
	}

	return &session{ctx: ctx, reg: reg, logger: logger}
}

// eval evaluates one line of input. A line of the form "--name: value"
// binds name for later lines and yields the rendered value. Any other line
// is an expression, with or without its double quotes.
func (s *session) eval(input string) (string, error) {
	input = strings.TrimSpace(input)

	d, bind := parseBinding(input)
	if !bind {
		if !strings.HasPrefix(input, `"`) {
			input = `"` + input + `"`
		}

		d = lang.Declaration{Key: resultKey, Value: input}
	}

	d, out, err := s.render(d, bind)
	if err != nil {
		return "", err
	}

	if bind {
		s.bindings = append(s.bindings, d)

		s.logger.Debug("bind variable",
			slog.String("name", d.Key),
			slog.String("value", out.Value),
		)
	}

	return out.Value, nil
}

// render runs d through a fresh pass preceded by the session bindings. It
// returns d after the replacer chain and the fully substituted result.
func (s *session) render(d lang.Declaration, bind bool) (lang.Declaration, lang.Declaration, error) {
	p := lang.NewPass(s.reg, lang.WithLogger(s.logger))

	for _, b := range s.bindings {
		p.Extract(b)
	}

	d = p.Replace(d)

	occ := p.Extract(d)
	if len(occ) == 0 && !bind {
		return d, d, ErrNotExpression
	}

	repl, err := p.Finish(s.ctx)
	if err != nil {
		return d, d, err
	}

	return d, p.Substitute(d, occ, repl), nil
}

// reset drops every binding.
func (s *session) reset() { s.bindings = nil }

// variables returns the names bound so far, most recent first and without
// duplicates.
func (s *session) variables() []string {
	names := make([]string, 0, len(s.bindings))

	for _, b := range slices.Backward(s.bindings) {
		if name := strings.TrimPrefix(b.Key, "--"); !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	return names
}

// parseBinding splits a "--name: value" line.
func parseBinding(input string) (lang.Declaration, bool) {
	if !strings.HasPrefix(input, "--") {
		return lang.Declaration{}, false
	}

	key, value, ok := strings.Cut(input, ":")
	if !ok {
		return lang.Declaration{}, false
	}

	key = strings.TrimSpace(key)
	if _, ok := lang.BindingOf(key, value); !ok {
		return lang.Declaration{}, false
	}

	return lang.Declaration{Key: key, Value: strings.TrimSpace(value)}, true
}
