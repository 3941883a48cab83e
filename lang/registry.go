package lang

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// Func is a function callable from expressions. Arguments arrive fully
// evaluated: nested calls have run, variables are resolved, literals are
// numbers or strings, and object literals are [KindOverride] values.
type Func func(ctx Context, args ...Value) (Value, error)

// Replacer rewrites a declaration before expressions are extracted from
// it.
type Replacer func(Declaration) (Declaration, error)

// function is a registered Func with the domain its variable arguments
// are resolved in.
type function struct {
	fn     Func
	domain func(i int) Domain
}

func anyDomain(int) Domain { return DomainAny }

// Registry holds the functions and declaration replacers available to
// passes. It is safe for concurrent use; a pass works on a [Registry.Clone]
// taken when it starts, so registration only affects later passes.
type Registry struct {
	mu        sync.RWMutex
	funcs     map[string]function
	replacers []Replacer
}

// NewRegistry returns a registry holding the built-in functions.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]function, len(builtins))}

	for name, b := range builtins {
		r.funcs[name] = b
	}

	return r
}

// RegisterFunction adds fn under name, replacing any function of the same
// name. Variable arguments of user functions are resolved in every
// context domain.
func (r *Registry) RegisterFunction(name string, fn Func) error {
	if fn == nil || name == "" || identLen(name) != len(name) {
		return ErrInvalidFunction.With(slog.String("name", name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.funcs[name] = function{fn: fn, domain: anyDomain}

	return nil
}

// RegisterDeclarationReplacer appends fn to the replacer chain.
func (r *Registry) RegisterDeclarationReplacer(fn Replacer) {
	if fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.replacers = append(r.replacers, fn)
}

// Lookup returns the function registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	f, ok := r.lookup(name)

	return f.fn, ok
}

func (r *Registry) lookup(name string) (function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.funcs[name]

	return f, ok
}

// Names returns the registered function names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.funcs))
}

// Replace runs the replacer chain over d in registration order. A replacer
// that fails is skipped: the next one receives its input unchanged. The
// returned error joins every failure.
func (r *Registry) Replace(d Declaration) (Declaration, error) {
	r.mu.RLock()
	chain := slices.Clone(r.replacers)
	r.mu.RUnlock()

	var errs []error

	for _, fn := range chain {
		next, err := fn(d)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		d = next
	}

	return d, errors.Join(errs...)
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &Registry{
		funcs:     maps.Clone(r.funcs),
		replacers: slices.Clone(r.replacers),
	}
}

// check reports the first function in c that is not registered.
func (r *Registry) check(c *Call) error {
	var missing string

	c.Walk(func(n *Call) bool {
		if _, ok := r.lookup(n.Name); !ok {
			missing = n.Name

			return false
		}

		return true
	})

	if missing != "" {
		return ErrUnknownFunction.Msg("unknown function " + missing).
			With(slog.String("function", missing))
	}

	return nil
}
