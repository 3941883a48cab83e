// Package lang evaluates the custom function syntax embedded in CSS
// declaration values.
//
// A declaration opts into the syntax by double-quoting a function call:
//
//	.title {
//	  --accent: "color(color-8)";
//	  color: "opacity(color(--accent), 0.5)";
//	  font: "font({theme: 'Title', size: '24px'})";
//	  margin: "calculate(+, unit(2, px), unit(number(--gap), px))";
//	}
//
// Each quoted call is replaced by the literal it evaluates to, or, in live
// mode, by a var(--<hash>) reference whose value is published separately
// and can be recomputed for a new [Context] without parsing again.
//
// # Grammar
//
// Informal EBNF:
//
//	Call     → Name '(' (Arg (',' Arg)*)? ')'
//	Arg      → Call | VarRef | Object | Literal
//	VarRef   → '--' Identifier
//	Object   → '{' (Key ':' Quoted (',' Key ':' Quoted)*)? '}'
//	Literal  → <text up to the next top-level ',' or ')'>
//
// Whitespace around separators is insignificant. Nesting of parentheses,
// braces and brackets outside quotes is checked on the whole expression
// before parsing; an unbalanced expression fails with
// [ErrMalformedExpression].
//
// # Variables
//
// A declaration whose key is "--name" binds name for the rest of the
// stylesheet. A reference to --name resolves against the bindings declared
// before the expression that uses it (most recent first) and then against
// the [Context] map for the kind of value the function expects. Anything
// else is [Unresolved] and renders as "undefined".
//
// # Built-in functions
//
//	color(ref)                      palette color
//	font(ref | {theme: ...})        font shorthand, optionally overridden
//	number(ref)                     number
//	string(ref)                     plain text
//	unit(value, suffix)             value and suffix concatenated
//	opacity(color, alpha)           rgba() with the given alpha
//	withoutOpacity(color)           rgb() with alpha dropped
//	darken(color, amount)           channels scaled by 1 - amount
//	join(c1, w1, c2, w2, ...)       weighted blend of colors
//	fallback(v1, v2, ...)           first present value, else the last
//	zeroAsTrue(ref)                 number for which 0 counts as present
//	calculate(op, t1, t2, ...)      calc() folding the terms with op
//	smartBGContrast(text, bg)       bg pushed to black or white if unreadable
//	readableFallback(b, s, f)       s if readable on b, else f
//	underline(ref)                  "underline" if the font is underlined
//	rgb, rgba, hsl, hsla            inline color literals
//
// Amounts and alphas are clamped to [0, 1]. Color text that does not parse
// is treated as black; numbers that do not parse are 0.
//
// # Passes
//
// A [Pass] drives one stylesheet: declarations go through the replacer
// chain of the [Registry] and the extractor, then [Pass.Finish] parses and
// evaluates every unique expression and [Pass.Substitute] rewrites each
// declaration by span.
package lang
