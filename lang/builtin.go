package lang

import "strings"

// builtins are the functions every [NewRegistry] starts with.
//
//nolint:gochecknoglobals
var builtins = map[string]function{
	"color":            {fn: colorFunc, domain: only(DomainColor)},
	"font":             {fn: fontFunc, domain: only(DomainFont)},
	"number":           {fn: numberFunc, domain: only(DomainNumber)},
	"string":           {fn: stringFunc, domain: only(DomainString)},
	"unit":             {fn: unitFunc, domain: first(DomainNumber, DomainString)},
	"opacity":          {fn: opacityFunc, domain: first(DomainColor, DomainNumber)},
	"withoutOpacity":   {fn: withoutOpacityFunc, domain: only(DomainColor)},
	"darken":           {fn: darkenFunc, domain: first(DomainColor, DomainNumber)},
	"join":             {fn: joinFunc, domain: alternate(DomainColor, DomainNumber)},
	"fallback":         {fn: fallbackFunc, domain: anyDomain},
	"zeroAsTrue":       {fn: zeroAsTrueFunc, domain: only(DomainNumber)},
	"calculate":        {fn: calculateFunc, domain: anyDomain},
	"smartBGContrast":  {fn: smartBGContrastFunc, domain: only(DomainColor)},
	"readableFallback": {fn: readableFallbackFunc, domain: only(DomainColor)},
	"underline":        {fn: underlineFunc, domain: only(DomainFont)},
	"rgb":              {fn: colorLiteral("rgb"), domain: only(DomainNumber)},
	"rgba":             {fn: colorLiteral("rgba"), domain: only(DomainNumber)},
	"hsl":              {fn: colorLiteral("hsl"), domain: only(DomainNumber)},
	"hsla":             {fn: colorLiteral("hsla"), domain: only(DomainNumber)},
}

func only(d Domain) func(int) Domain {
	return func(int) Domain { return d }
}

// first resolves the first argument in d and the rest in rest.
func first(d, rest Domain) func(int) Domain {
	return func(i int) Domain {
		if i == 0 {
			return d
		}

		return rest
	}
}

// alternate resolves even arguments in even and odd ones in odd.
func alternate(even, odd Domain) func(int) Domain {
	return func(i int) Domain {
		if i%2 == 0 {
			return even
		}

		return odd
	}
}

func argAt(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}

	return Unresolved
}

// amountAt returns argument i as a number in [0, 1], where a percentage
// counts as a fraction of 1. Anything else counts as 0.
func amountAt(args []Value, i int) float64 {
	v := argAt(args, i)

	f, ok := v.Number()
	if !ok && v.Kind() == KindString {
		if p, pct := strings.CutSuffix(strings.TrimSpace(v.String()), "%"); pct {
			f, _ = parseNumber(p)
			f /= 100
		}
	}

	return clamp01(f)
}

func colorFunc(ctx Context, args ...Value) (Value, error) {
	v := argAt(args, 0)

	switch v.Kind() {
	case KindColor:
		return v, nil

	case KindString, KindNumber:
		name := v.String()
		if c, ok := ctx.Colors[name]; ok {
			return ColorValue(c), nil
		}

		if c, ok := parseColor(name); ok {
			return ColorValue(c.String()), nil
		}
	}

	return Unresolved, nil
}

func fontFunc(ctx Context, args ...Value) (Value, error) {
	v := argAt(args, 0)

	switch v.Kind() {
	case KindFont:
		return v, nil

	case KindOverride:
		return FontValue(composeFont(ctx, Override{Entries: v.Entries()})), nil

	case KindString:
		if f, ok := ctx.Fonts[v.String()]; ok {
			return FontValue(f), nil
		}
	}

	return Unresolved, nil
}

func numberFunc(ctx Context, args ...Value) (Value, error) {
	v := argAt(args, 0)

	switch v.Kind() {
	case KindUnresolved:
		return Unresolved, nil

	case KindNumber:
		return v, nil
	}

	if n, ok := ctx.Numbers[v.String()]; ok {
		return NumberValue(n), nil
	}

	f, _ := v.Number()

	return NumberValue(f), nil
}

func stringFunc(ctx Context, args ...Value) (Value, error) {
	v := argAt(args, 0)

	switch v.Kind() {
	case KindUnresolved:
		return Unresolved, nil

	case KindString:
		if s, ok := ctx.Strings[v.String()]; ok {
			return StringValue(s), nil
		}
	}

	return StringValue(v.String()), nil
}

func unitFunc(_ Context, args ...Value) (Value, error) {
	v := argAt(args, 0)
	if v.Kind() == KindUnresolved {
		return Unresolved, nil
	}

	if len(args) < 2 {
		return StringValue(v.String()), nil
	}

	return StringValue(v.String() + args[1].String()), nil
}

func opacityFunc(_ Context, args ...Value) (Value, error) {
	v := argAt(args, 0)
	if v.Kind() == KindUnresolved {
		return Unresolved, nil
	}

	c := colorOrBlack(v)
	c.A = amountAt(args, 1)

	r, g, b := c.channels()

	return ColorValue("rgba(" + itoa(r) + ", " + itoa(g) + ", " + itoa(b) + ", " +
		formatNumber(c.A) + ")"), nil
}

func withoutOpacityFunc(_ Context, args ...Value) (Value, error) {
	v := argAt(args, 0)
	if v.Kind() == KindUnresolved {
		return Unresolved, nil
	}

	c := colorOrBlack(v)
	c.A = 1

	return ColorValue(c.String()), nil
}

func darkenFunc(_ Context, args ...Value) (Value, error) {
	v := argAt(args, 0)
	if v.Kind() == KindUnresolved {
		return Unresolved, nil
	}

	c := colorOrBlack(v)
	scale := 1 - amountAt(args, 1)

	r, g, b := c.channels()

	return ColorValue(fromChannels(
		float64(r)*scale, float64(g)*scale, float64(b)*scale, c.A,
	).String()), nil
}

func joinFunc(_ Context, args ...Value) (Value, error) {
	var sumR, sumG, sumB, sumA, total float64

	for i := 0; i+1 < len(args); i += 2 {
		if args[i].Kind() == KindUnresolved {
			return Unresolved, nil
		}

		w, _ := args[i+1].Number()
		if !(w > 0) {
			continue
		}

		c := colorOrBlack(args[i])
		r, g, b := c.channels()

		sumR += w * float64(r)
		sumG += w * float64(g)
		sumB += w * float64(b)
		sumA += w * c.A
		total += w
	}

	if total == 0 {
		return Unresolved, nil
	}

	return ColorValue(fromChannels(
		sumR/total, sumG/total, sumB/total, sumA/total,
	).String()), nil
}

func fallbackFunc(_ Context, args ...Value) (Value, error) {
	for _, v := range args {
		if v.IsPresent() {
			return v, nil
		}
	}

	if len(args) == 0 {
		return Unresolved, nil
	}

	return args[len(args)-1], nil
}

func zeroAsTrueFunc(_ Context, args ...Value) (Value, error) {
	v := argAt(args, 0)
	if v.Kind() == KindNumber {
		return v.withKeepZero(), nil
	}

	return v, nil
}

func calculateFunc(_ Context, args ...Value) (Value, error) {
	if len(args) < 2 {
		return Unresolved, nil
	}

	op, terms := args[0].String(), args[1:]

	if len(terms) == 1 {
		return terms[0], nil
	}

	part := make([]string, len(terms))
	for i, t := range terms {
		part[i] = t.String()
	}

	return StringValue("calc(" + strings.Join(part, " "+op+" ") + ")"), nil
}

func smartBGContrastFunc(_ Context, args ...Value) (Value, error) {
	text, bg := argAt(args, 0), argAt(args, 1)
	if text.Kind() == KindUnresolved || bg.Kind() == KindUnresolved {
		return Unresolved, nil
	}

	tc, bc := colorOrBlack(text), colorOrBlack(bg)
	if contrast(tc, bc) >= minBackgroundContrast {
		return bg, nil
	}

	if bc.luminance() < tc.luminance() {
		return ColorValue(bc.withLightness(0).String()), nil
	}

	return ColorValue(bc.withLightness(1).String()), nil
}

func readableFallbackFunc(_ Context, args ...Value) (Value, error) {
	base, suggestion, fallback := argAt(args, 0), argAt(args, 1), argAt(args, 2)

	if base.Kind() != KindUnresolved && suggestion.Kind() != KindUnresolved &&
		contrast(colorOrBlack(base), colorOrBlack(suggestion)) >= minReadableContrast {
		return suggestion, nil
	}

	return fallback, nil
}

func underlineFunc(_ Context, args ...Value) (Value, error) {
	if f, ok := argAt(args, 0).Font(); ok && f.Underline {
		return StringValue("underline"), nil
	}

	return StringValue(""), nil
}

// colorLiteral returns a function that re-serializes its arguments as the
// CSS color function name, so colors can be written inline.
func colorLiteral(name string) Func {
	return func(_ Context, args ...Value) (Value, error) {
		part := make([]string, len(args))
		for i, a := range args {
			part[i] = a.String()
		}

		return ColorValue(name + "(" + strings.Join(part, ", ") + ")"), nil
	}
}

// fromChannels builds a color from 8-bit channel values.
func fromChannels(r, g, b, a float64) rgba {
	c := rgba{A: clamp01(a)}
	c.R, c.G, c.B = clamp01(r/255), clamp01(g/255), clamp01(b/255)

	return c
}

func itoa(u uint8) string { return formatNumber(float64(u)) }
