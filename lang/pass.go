package lang

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/ardnew/cssfn/log"
)

// Pass is one update pass over a stylesheet. It owns the variable table
// and the list of extracted expressions, both discarded with it. A Pass is
// not safe for concurrent use.
//
// The caller feeds each declaration, in document order, through
// [Pass.Replace] and [Pass.Extract]; once the document is done,
// [Pass.Finish] computes the replacement for every expression and
// [Pass.Substitute] rewrites each declaration.
type Pass struct {
	reg      *Registry
	logger   log.Logger
	maxDepth int
	cache    *Cache
	evaluate bool

	table    *Table
	exprs    []expression
	seen     map[string]string // scope -> replacement key
	variants map[string]int    // raw -> number of scopes
}

// expression is a raw expression in one scope: the table length at its
// first occurrence there and the key of its replacement text.
type expression struct {
	raw      string
	key      string
	snapshot int
}

// varRef matches the variable names an expression may refer to.
var varRef = regexp.MustCompile(`--([\p{L}_][\p{L}\p{N}_-]*)`)

// NewPass starts a pass using a snapshot of reg.
func NewPass(reg *Registry, opts ...Option) *Pass {
	if reg == nil {
		reg = NewRegistry()
	}

	p := &Pass{
		reg:      reg.Clone(),
		table:    NewTable(),
		seen:     map[string]string{},
		variants: map[string]int{},
	}

	applyDefaults(p)
	applyOptions(p, opts...)

	return p
}

// Replace runs the declaration replacer chain over d. Failing replacers
// are logged and skipped.
func (p *Pass) Replace(d Declaration) Declaration {
	out, err := p.reg.Replace(d)
	if err != nil {
		p.logger.Warn(
			"declaration replacer failed",
			slog.String("key", d.Key),
			slog.Any("error", err),
		)
	}

	return out
}

// Extract finds the expressions in d, records the new ones, and declares
// the custom property d introduces, if any. The returned occurrences
// address d for [Pass.Substitute].
//
// An expression is new unless the same text was seen with the same
// bindings visible for every variable it names. A repeat after one of
// them was redeclared is evaluated again in its own scope.
func (p *Pass) Extract(d Declaration) []Occurrence {
	occ := Extract(d.Key, d.Value)

	for i, o := range occ {
		scope := p.scope(o.Raw)

		key, ok := p.seen[scope]
		if !ok {
			key = o.Raw
			if n := p.variants[o.Raw]; n > 0 {
				key += "\x00" + strconv.Itoa(n)
			}

			p.variants[o.Raw]++
			p.seen[scope] = key
			p.exprs = append(p.exprs, expression{raw: o.Raw, key: key, snapshot: p.table.Len()})

			p.logger.Trace(
				"extract expression",
				slog.String("expression", o.Raw),
				slog.String("field", o.Field.String()),
				slog.Int("scope", p.table.Len()),
			)
		}

		occ[i].key = key
	}

	if b, ok := BindingOf(d.Key, d.Value); ok {
		p.table.Declare(b)

		p.logger.Trace(
			"declare variable",
			slog.String("name", b.Name),
			slog.Bool("expression", b.IsExpr),
		)
	}

	return occ
}

// Expressions returns the unique raw expressions extracted so far, in
// order of first occurrence.
func (p *Pass) Expressions() []string {
	var raw []string

	for _, e := range p.exprs {
		if e.key == e.raw {
			raw = append(raw, e.raw)
		}
	}

	return raw
}

// scope identifies raw together with the binding each variable it names
// currently resolves to.
func (p *Pass) scope(raw string) string {
	var b strings.Builder

	b.WriteString(raw)

	for _, m := range varRef.FindAllStringSubmatch(raw, -1) {
		i, _ := p.table.find(m[1], p.table.Len())

		b.WriteByte(0)
		b.WriteString(strconv.Itoa(i))
	}

	return b.String()
}

// Table returns the variable table of the pass.
func (p *Pass) Table() *Table { return p.table }

// Finish computes the replacement text of every extracted expression
// against ctx. Every expression is parsed and checked for unknown
// functions before any is evaluated, so a single bad expression fails the
// whole pass without partial output.
//
// The map is keyed by raw expression, except that a repeat evaluated in a
// later scope has a key of its own; the occurrences returned by
// [Pass.Extract] carry the key to [Pass.Substitute].
//
// In live mode the replacement is a var(--<hash>) reference and the
// expression is compiled into the cache. A property is named after the
// raw text alone, so every scope of one expression shares the value
// compiled for its first scope. Without evaluation the returned map is
// empty.
func (p *Pass) Finish(ctx Context) (map[string]string, error) {
	repl := make(map[string]string, len(p.exprs))

	if !p.evaluate {
		p.logger.Debug("pass complete", slog.Int("expressions", len(p.exprs)),
			slog.Bool("evaluated", false))

		return repl, nil
	}

	calls := make([]*Call, len(p.exprs))

	for i, e := range p.exprs {
		c, err := Parse(e.raw)
		if err != nil {
			return nil, err
		}

		if err := p.reg.check(c); err != nil {
			return nil, WrapError(err).With(slog.String("expression", e.raw))
		}

		p.logger.Trace("parse expression",
			slog.String("expression", e.raw), slog.String("call", c.String()))

		p.table.define(e.raw, c)
		calls[i] = c
	}

	ev := newEvaluation(ctx, p.reg, p.table, p.maxDepth)

	for i, e := range p.exprs {
		if p.cache != nil {
			hits := p.cache.Len()
			hash, _ := p.cache.compile(e.raw, calls[i], p.table.Snapshot(e.snapshot), p.reg, p.maxDepth)

			p.logger.Trace("compile expression",
				slog.String("expression", e.raw),
				slog.String("hash", hash),
				slog.Bool("cached", hits == p.cache.Len()),
			)

			repl[e.key] = "var(" + Property(hash) + ")"

			continue
		}

		v, err := ev.call(calls[i], e.snapshot)
		if err != nil {
			return nil, WrapError(err).With(slog.String("expression", e.raw))
		}

		p.logger.Trace("evaluate expression",
			slog.String("expression", e.raw),
			slog.String("hash", Hash(e.raw)),
			slog.String("value", v.String()),
		)

		repl[e.key] = v.String()
	}

	p.logger.Debug("pass complete",
		slog.Int("expressions", len(p.exprs)),
		slog.Int("variables", p.table.Len()),
		slog.Bool("live", p.cache != nil),
	)

	return repl, nil
}

// Substitute rewrites the occurrences in d by span. See [Substitute].
func (p *Pass) Substitute(d Declaration, occ []Occurrence, repl map[string]string) Declaration {
	return Substitute(d, occ, repl)
}
