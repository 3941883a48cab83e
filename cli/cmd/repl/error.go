package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds   = errors.New("index out of range")
	ErrNotExpression = errors.New("input is not an expression")
)
