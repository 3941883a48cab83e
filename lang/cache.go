package lang

import (
	"iter"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"
)

// Hash returns the stable identifier of a raw expression: its xxh3 hash in
// base 36. It names the custom property the expression is published as.
func Hash(raw string) string {
	return strconv.FormatUint(xxh3.HashString(raw), 36)
}

// Property returns the custom property name for a hash, "--<hash>".
func Property(hash string) string { return "--" + hash }

// Compiled is a parsed expression bound to the variable table snapshot it
// was extracted at. It can be evaluated against any context without
// parsing again. A Compiled is immutable and safe for concurrent use.
type Compiled struct {
	raw      string
	call     *Call
	table    *Table
	reg      *Registry
	maxDepth int
}

// Raw returns the expression text, including its quotes.
func (c *Compiled) Raw() string { return c.raw }

// Call returns the parsed expression.
func (c *Compiled) Call() *Call { return c.call }

// Eval evaluates the expression against ctx. Binding values are memoized
// only for the duration of the call.
func (c *Compiled) Eval(ctx Context) (Value, error) {
	return newEvaluation(ctx, c.reg, c.table, c.maxDepth).call(c.call, c.table.Len())
}

// Cache maps expression hashes to compiled expressions. Entries are added
// once and never replaced; it persists across passes.
type Cache struct {
	entries sync.Map // hash -> *Compiled
	size    atomic.Int64
}

// NewCache returns an empty cache.
func NewCache() *Cache { return &Cache{} }

// Compile stores the compiled form of raw unless its hash is already
// present, and returns the hash with the entry the cache holds.
func (c *Cache) Compile(raw string, node *Call, table *Table, reg *Registry) (string, *Compiled) {
	return c.compile(raw, node, table, reg, DefaultMaxDepth)
}

func (c *Cache) compile(raw string, node *Call, table *Table, reg *Registry, depth int) (string, *Compiled) {
	hash := Hash(raw)

	if v, ok := c.entries.Load(hash); ok {
		return hash, v.(*Compiled) //nolint:forcetypeassert
	}

	if table == nil {
		table = NewTable()
	}

	entry := &Compiled{raw: raw, call: node, table: table, reg: reg, maxDepth: depth}

	v, loaded := c.entries.LoadOrStore(hash, entry)
	if !loaded {
		c.size.Add(1)
	}

	return hash, v.(*Compiled) //nolint:forcetypeassert
}

// Load returns the entry stored under hash.
func (c *Cache) Load(hash string) (*Compiled, bool) {
	v, ok := c.entries.Load(hash)
	if !ok {
		return nil, false
	}

	return v.(*Compiled), true //nolint:forcetypeassert
}

// Len returns the number of entries.
func (c *Cache) Len() int { return int(c.size.Load()) }

// All iterates over the entries by hash, in no particular order.
func (c *Cache) All() iter.Seq2[string, *Compiled] {
	return func(yield func(string, *Compiled) bool) {
		c.entries.Range(func(k, v any) bool {
			return yield(k.(string), v.(*Compiled)) //nolint:forcetypeassert
		})
	}
}

// Vars evaluates every entry against ctx and returns the custom property
// map, "--<hash>" to literal text. It stops at the first error.
func (c *Cache) Vars(ctx Context) (map[string]string, error) {
	vars := make(map[string]string, c.Len())

	for hash, entry := range c.All() {
		v, err := entry.Eval(ctx)
		if err != nil {
			return nil, err
		}

		vars[Property(hash)] = v.String()
	}

	return vars, nil
}
