package cmd

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/ardnew/cssfn/lang"
	"github.com/ardnew/cssfn/log"
	"github.com/ardnew/cssfn/style"
)

// Render rewrites stylesheets, replacing every expression with its value.
type Render struct {
	Sources    []string `arg:"" default:"-" help:"Stylesheet file(s) or '-' for stdin" name:"source" optional:""`
	Output     string   `       help:"Write CSS to file instead of stdout" short:"o" type:"path"`
	Live       bool     `       help:"Reference expressions through custom properties and append their values in a :root block"`
	Standalone bool     `       help:"Run only the declaration replacers and leave expressions as written"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := newSink(ctx, r.Sources)
	if err != nil {
		return err
	}

	u := style.New(
		registryFrom(ctx),
		providerFrom(ctx),
		doc,
		style.WithCSSVars(r.Live),
		style.WithStandalone(r.Standalone),
		style.WithLogger(log.Default()),
	)

	if err := u.Update(ctx, false); err != nil {
		return err
	}

	log.DebugContext(ctx, "render complete",
		slog.Int("stylesheets", len(doc.sheets)),
		slog.Int("variables", len(doc.vars)),
		slog.Bool("live", r.Live),
	)

	_, out := ioFrom(ctx)

	if r.Output != "" {
		f, err := os.Create(r.Output)
		if err != nil {
			return ErrWriteOutput.With(slog.String("file", r.Output)).Wrap(err)
		}
		defer f.Close()

		out = f
	}

	if _, err := doc.WriteTo(out); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// sink is the [style.Document] of a command: the stylesheets read from its
// sources and what the updater produced for them.
type sink struct {
	sheets []style.Stylesheet
	css    map[string]string
	vars   map[string]string
}

func newSink(ctx context.Context, sources []string) (*sink, error) {
	sheets, err := readStylesheets(ctx, sources)
	if err != nil {
		return nil, err
	}

	return &sink{sheets: sheets, css: make(map[string]string, len(sheets))}, nil
}

func (s *sink) Stylesheets() []style.Stylesheet { return s.sheets }

func (s *sink) Override(id, css string) error {
	s.css[id] = css

	return nil
}

func (s *sink) UpdateVars(vars map[string]string) error {
	s.vars = vars

	return nil
}

// WriteTo writes the rendered stylesheets in source order, one per line,
// followed by a :root block of the custom properties when there are any.
func (s *sink) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	for _, sheet := range s.sheets {
		b.WriteString(s.css[sheet.ID])
		b.WriteByte('\n')
	}

	if len(s.vars) > 0 {
		b.WriteString(rootBlock(s.vars))
		b.WriteByte('\n')
	}

	n, err := io.WriteString(w, b.String())

	return int64(n), err
}

// rootBlock renders vars as one :root rule, properties sorted by name.
func rootBlock(vars map[string]string) string {
	decls := make([]string, 0, len(vars))

	for _, name := range slices.Sorted(maps.Keys(vars)) {
		decls = append(decls, lang.Declaration{Key: name, Value: vars[name]}.String())
	}

	return ":root{" + strings.Join(decls, ";") + "}"
}
