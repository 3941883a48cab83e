package lang

import "github.com/ardnew/cssfn/log"

// Option configures a [Pass].
type Option func(*Pass)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(p *Pass) {
		p.logger = logger
	}
}

// WithMaxDepth bounds nested evaluation of variable bindings.
func WithMaxDepth(depth int) Option {
	return func(p *Pass) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithCache switches the pass to live mode: expressions are compiled into
// cache and replaced by var(--<hash>) references instead of literals.
func WithCache(cache *Cache) Option {
	return func(p *Pass) {
		p.cache = cache
	}
}

// WithEvaluation enables or disables evaluation. A pass without evaluation
// runs replacers and extraction only and leaves every expression as it is.
func WithEvaluation(enable bool) Option {
	return func(p *Pass) {
		p.evaluate = enable
	}
}

func applyDefaults(p *Pass) {
	p.maxDepth = DefaultMaxDepth
	p.evaluate = true
}

func applyOptions(p *Pass, opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}
