package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Sentinel errors. Match with [errors.Is]; the returned values carry
// attributes describing the failing expression.
var (
	// ErrMalformedExpression reports unbalanced parentheses. Its message
	// always has the form "<raw> contains unbalanced parenthesis".
	ErrMalformedExpression = NewError("malformed expression")
	ErrSyntax              = NewError("syntax error")
	ErrUnknownFunction     = NewError("unknown function")
	ErrInvalidFunction     = NewError("invalid function registration")
	ErrEvaluation          = NewError("evaluation failed")
)

// Error is an error with structured logging attributes.
// It implements both error and [slog.LogValuer].
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
	base  *Error // sentinel this error was derived from
}

// NewError returns a sentinel Error with the given message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError converts err to an *Error, returning err itself when it already
// is one.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{err: err}
}

// Error returns "<msg>: <cause>", or whichever of the two is set.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is e or the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || (e.base != nil && e.base == t)
}

// LogValue renders the message, cause and attributes as a group.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs, base: e.sentinel()}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	merged := make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	merged = append(merged, e.attrs...)
	merged = append(merged, attrs...)

	return &Error{msg: e.msg, err: e.err, attrs: merged, base: e.sentinel()}
}

// Msg returns a copy of e with its message replaced.
func (e *Error) Msg(msg string) *Error {
	return &Error{msg: msg, err: e.err, attrs: e.attrs, base: e.sentinel()}
}

func (e *Error) sentinel() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// malformed returns the error reported for an expression with unbalanced
// parentheses.
func malformed(raw string) *Error {
	return ErrMalformedExpression.
		Msg(raw + " contains unbalanced parenthesis").
		With(slog.String("expression", raw))
}
