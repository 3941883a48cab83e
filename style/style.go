package style

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tevino/abool/v2"

	"github.com/ardnew/cssfn/lang"
	"github.com/ardnew/cssfn/log"
	"github.com/ardnew/cssfn/sheet"
)

var (
	ErrUpdateInFlight = lang.NewError("update already in progress")
	ErrNoProvider     = lang.NewError("no context provider")
)

// Stylesheet is a template owned by the document.
type Stylesheet struct {
	ID       string
	Template string
}

// Document owns the stylesheets an [Updater] renders.
type Document interface {
	Stylesheets() []Stylesheet
	// Override replaces the rendered CSS of stylesheet id.
	Override(id, css string) error
	// UpdateVars publishes the custom properties of live mode.
	UpdateVars(vars map[string]string) error
}

// Provider supplies the context for an update.
type Provider interface {
	Context(ctx context.Context) (lang.Context, error)
}

// ProviderFunc adapts a function to [Provider].
type ProviderFunc func(ctx context.Context) (lang.Context, error)

// Context calls f.
func (f ProviderFunc) Context(ctx context.Context) (lang.Context, error) { return f(ctx) }

// Updater renders the stylesheets of a document. Its methods are safe for
// concurrent use, but only one update runs at a time.
type Updater struct {
	reg      *lang.Registry
	provider Provider
	doc      Document

	logger     log.Logger
	cssVars    bool
	standalone bool
	cache      *lang.Cache

	running  *abool.AtomicBool
	rendered *abool.AtomicBool
}

// New returns an Updater for doc. A nil reg uses the built-in functions.
func New(reg *lang.Registry, provider Provider, doc Document, opts ...Option) *Updater {
	if reg == nil {
		reg = lang.NewRegistry()
	}

	u := &Updater{
		reg:      reg,
		provider: provider,
		doc:      doc,
		running:  abool.New(),
		rendered: abool.New(),
	}

	applyOptions(u, opts...)
	applyDefaults(u)

	return u
}

// Cache returns the compiled expressions of live mode, or nil.
func (u *Updater) Cache() *lang.Cache { return u.cache }

// Update renders every stylesheet. In live mode a rerender after the first
// successful update only recomputes and publishes the custom properties.
func (u *Updater) Update(ctx context.Context, rerender bool) error {
	if !u.running.SetToIf(false, true) {
		return ErrUpdateInFlight
	}
	defer u.running.UnSet()

	if u.standalone {
		return u.renderAll(ctx, lang.EmptyContext())
	}

	if u.provider == nil {
		return ErrNoProvider
	}

	lctx, err := u.provider.Context(ctx)
	if err != nil {
		return err
	}

	if !u.cssVars {
		return u.renderAll(ctx, lctx)
	}

	if !rerender || !u.rendered.IsSet() {
		if err := u.renderAll(ctx, lctx, lang.WithCache(u.cache)); err != nil {
			return err
		}

		u.rendered.Set()
	}

	vars, err := u.cache.Vars(lctx)
	if err != nil {
		return err
	}

	u.logger.DebugContext(ctx, "publish variables", slog.Int("count", len(vars)))

	return u.doc.UpdateVars(vars)
}

// Watch runs a rerender for every value received on notify until ctx is
// done or notify is closed. Failed updates are logged and do not stop the
// loop.
func (u *Updater) Watch(ctx context.Context, notify <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case _, ok := <-notify:
			if !ok {
				return nil
			}

			if err := u.Update(ctx, true); err != nil {
				if errors.Is(err, ErrUpdateInFlight) {
					u.logger.DebugContext(ctx, "update skipped", slog.Any("error", err))

					continue
				}

				u.logger.WarnContext(ctx, "update failed", slog.Any("error", err))
			}
		}
	}
}

func (u *Updater) renderAll(ctx context.Context, lctx lang.Context, opts ...lang.Option) error {
	for _, s := range u.doc.Stylesheets() {
		css, err := u.Render(s.Template, lctx, opts...)
		if err != nil {
			return lang.WrapError(err).With(slog.String("stylesheet", s.ID))
		}

		u.logger.TraceContext(ctx, "render stylesheet",
			slog.String("stylesheet", s.ID), slog.Int("bytes", len(css)))

		if err := u.doc.Override(s.ID, css); err != nil {
			return err
		}
	}

	return nil
}

// Render runs one pass over the stylesheet src against lctx and returns
// the rendered CSS. In standalone mode expressions are left as written.
func (u *Updater) Render(src string, lctx lang.Context, opts ...lang.Option) (string, error) {
	evaluate := !u.standalone

	opts = append([]lang.Option{
		lang.WithLogger(u.logger),
		lang.WithEvaluation(evaluate),
	}, opts...)

	pass := lang.NewPass(u.reg, opts...)

	// occurrences of each declaration the walk emits, in document order
	var occs [][]lang.Occurrence

	hooks := sheet.Hooks{
		Declaration: func(d sheet.Declaration) ([]sheet.Declaration, error) {
			out := pass.Replace(lang.Declaration(d))
			if !evaluate {
				return []sheet.Declaration{sheet.Declaration(out)}, nil
			}

			decls := []lang.Declaration{out}
			if c, ok := underlineCompanion(out); ok {
				decls = append(decls, c)
			}

			res := make([]sheet.Declaration, len(decls))
			for i, d := range decls {
				occs = append(occs, pass.Extract(d))
				res[i] = sheet.Declaration(d)
			}

			return res, nil
		},
	}

	if evaluate {
		hooks.Document = func(decls []*sheet.Declaration) error {
			repl, err := pass.Finish(lctx)
			if err != nil {
				return err
			}

			for i, d := range decls {
				*d = sheet.Declaration(pass.Substitute(lang.Declaration(*d), occs[i], repl))
			}

			return nil
		}
	}

	return sheet.Walk(src, hooks)
}

// underlineCompanion returns the text-decoration declaration that follows
// a font declaration using font(--name).
func underlineCompanion(d lang.Declaration) (lang.Declaration, bool) {
	if !strings.EqualFold(strings.TrimSpace(d.Key), "font") {
		return lang.Declaration{}, false
	}

	for _, o := range lang.Extract(d.Key, d.Value) {
		if o.Field != lang.FieldValue {
			continue
		}

		c, err := lang.Parse(o.Raw)
		if err != nil {
			continue
		}

		var name string

		c.Walk(func(n *lang.Call) bool {
			if n.Name != "font" || len(n.Args) == 0 {
				return true
			}

			if ref, ok := n.Args[0].(lang.VarRef); ok {
				name = ref.Name

				return false
			}

			return true
		})

		if name != "" {
			return lang.Declaration{
				Key:   "text-decoration",
				Value: `"underline(--` + name + `)"`,
			}, true
		}
	}

	return lang.Declaration{}, false
}
