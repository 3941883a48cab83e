package plugin

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/ardnew/cssfn/lang"
	"github.com/ardnew/cssfn/log"
)

var (
	ErrDecode  = lang.NewError("decode plugin")
	ErrCompile = lang.NewError("compile plugin expression")
	ErrResult  = lang.NewError("unsupported plugin result")
)

// File is the decoded form of a plugin file.
type File struct {
	Functions map[string]string `json:"functions,omitempty" yaml:"functions,omitempty"`
	Replacers []ReplacerSource  `json:"replacers,omitempty" yaml:"replacers,omitempty"`
}

// ReplacerSource holds the expressions computing a declaration's new key
// and value.
type ReplacerSource struct {
	Key   string `json:"key,omitempty"   yaml:"key,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Set is a compiled plugin file.
type Set struct {
	logger    log.Logger
	functions []function
	replacers []replacer
}

type function struct {
	name    string
	source  string
	program *vm.Program
}

type replacer struct {
	key, value *vm.Program
}

// Option configures a [Set].
type Option func(*Set)

// WithLogger sets the logger that reports compiled expressions.
func WithLogger(logger log.Logger) Option {
	return func(s *Set) { s.logger = logger }
}

// functionEnv is the compile-time shape of a function's environment.
func functionEnv() map[string]any {
	return map[string]any{
		"args":    []any{},
		"colors":  map[string]string{},
		"numbers": map[string]float64{},
		"strings": map[string]string{},
	}
}

func replacerEnv() map[string]any {
	return map[string]any{"key": "", "value": ""}
}

// Load decodes and compiles a plugin file from r.
func Load(r io.Reader, opts ...Option) (*Set, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	return Compile(f, opts...)
}

// LoadFile decodes and compiles the plugin file at path.
func LoadFile(path string, opts ...Option) (*Set, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("path", path))
	}
	defer fd.Close()

	s, err := Load(fd, opts...)
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("path", path))
	}

	return s, nil
}

// Compile compiles every expression of f. Functions are ordered by name.
func Compile(f File, opts ...Option) (*Set, error) {
	s := &Set{}
	for _, opt := range opts {
		opt(s)
	}

	names := make([]string, 0, len(f.Functions))
	for name := range f.Functions {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		src := f.Functions[name]

		p, err := compile(src, functionEnv())
		if err != nil {
			return nil, err.With(slog.String("function", name))
		}

		s.logger.Trace("compile plugin function",
			slog.String("function", name), slog.String("source", src))

		s.functions = append(s.functions, function{name: name, source: src, program: p})
	}

	for i, r := range f.Replacers {
		var (
			rep replacer
			err *lang.Error
		)

		if r.Key != "" {
			if rep.key, err = compile(r.Key, replacerEnv()); err != nil {
				return nil, err.With(slog.Int("replacer", i))
			}
		}

		if r.Value != "" {
			if rep.value, err = compile(r.Value, replacerEnv()); err != nil {
				return nil, err.With(slog.Int("replacer", i))
			}
		}

		s.logger.Trace("compile plugin replacer",
			slog.Int("replacer", i), slog.String("key", r.Key), slog.String("value", r.Value))

		s.replacers = append(s.replacers, rep)
	}

	return s, nil
}

func compile(src string, env map[string]any) (*vm.Program, *lang.Error) {
	p, err := expr.Compile(src, expr.Env(env))
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", src))
	}

	return p, nil
}

// Functions returns the names of the functions in s.
func (s *Set) Functions() []string {
	names := make([]string, len(s.functions))
	for i, f := range s.functions {
		names[i] = f.name
	}

	return names
}

// Register adds the functions and replacers of s to reg.
func (s *Set) Register(reg *lang.Registry) error {
	for _, f := range s.functions {
		if err := reg.RegisterFunction(f.name, f.call); err != nil {
			return err
		}
	}

	for _, r := range s.replacers {
		reg.RegisterDeclarationReplacer(r.replace)
	}

	return nil
}

func (f function) call(ctx lang.Context, args ...lang.Value) (lang.Value, error) {
	in := make([]any, len(args))
	for i, a := range args {
		in[i] = argument(a)
	}

	env := map[string]any{
		"args":    in,
		"colors":  orEmpty(ctx.Colors),
		"numbers": orEmpty(ctx.Numbers),
		"strings": orEmpty(ctx.Strings),
	}

	out, err := vm.Run(f.program, env)
	if err != nil {
		return lang.Unresolved, err
	}

	return result(out, f.source)
}

func (r replacer) replace(d lang.Declaration) (lang.Declaration, error) {
	env := map[string]any{"key": d.Key, "value": d.Value}

	out := d

	for _, field := range []struct {
		program *vm.Program
		dst     *string
	}{
		{r.key, &out.Key},
		{r.value, &out.Value},
	} {
		if field.program == nil {
			continue
		}

		v, err := vm.Run(field.program, env)
		if err != nil {
			return d, err
		}

		s, ok := v.(string)
		if !ok {
			return d, ErrResult.With(slog.String("type", typeName(v)))
		}

		*field.dst = s
	}

	return out, nil
}

func argument(v lang.Value) any {
	switch v.Kind() {
	case lang.KindUnresolved:
		return nil
	case lang.KindNumber:
		f, _ := v.Number()

		return f
	default:
		return v.String()
	}
}

func result(v any, source string) (lang.Value, error) {
	switch v := v.(type) {
	case nil:
		return lang.Unresolved, nil
	case float64:
		return lang.NumberValue(v), nil
	case int:
		return lang.NumberValue(float64(v)), nil
	case int64:
		return lang.NumberValue(float64(v)), nil
	case string:
		return lang.StringValue(v), nil
	case bool:
		return lang.StringValue(strconv.FormatBool(v)), nil
	default:
		return lang.Unresolved, ErrResult.With(
			slog.String("type", typeName(v)),
			slog.String("source", source),
		)
	}
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }

func orEmpty[V any](m map[string]V) map[string]V {
	if m == nil {
		return map[string]V{}
	}

	return m
}
