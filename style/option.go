package style

import (
	"github.com/ardnew/cssfn/lang"
	"github.com/ardnew/cssfn/log"
)

// Option configures an [Updater].
type Option func(*Updater)

// WithCSSVars enables live mode: stylesheets reference custom properties
// that are recomputed on every update.
func WithCSSVars(enable bool) Option {
	return func(u *Updater) { u.cssVars = enable }
}

// WithStandalone disables evaluation. Only declaration replacers run.
func WithStandalone(enable bool) Option {
	return func(u *Updater) { u.standalone = enable }
}

// WithLogger sets the logger of the updater and its passes.
func WithLogger(logger log.Logger) Option {
	return func(u *Updater) { u.logger = logger }
}

// WithCache sets the cache live mode compiles expressions into.
func WithCache(cache *lang.Cache) Option {
	return func(u *Updater) { u.cache = cache }
}

func applyDefaults(u *Updater) {
	if u.cssVars && u.cache == nil {
		u.cache = lang.NewCache()
	}
}

func applyOptions(u *Updater, opts ...Option) {
	for _, opt := range opts {
		opt(u)
	}
}
