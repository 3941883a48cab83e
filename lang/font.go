package lang

import "strings"

// Keys understood in a font override object literal.
const (
	overrideTheme      = "theme"
	overrideSize       = "size"
	overrideLineHeight = "lineHeight"
	overrideWeight     = "weight"
	overrideStyle      = "style"
)

// ParseFont parses a CSS font shorthand such as
//
//	font:normal normal normal 17px/1.4em raleway,sans-serif;
//
// The "font:" prefix and trailing semicolon are optional. Tokens before the
// size are matched to style, variant and weight by keyword; "normal" fills
// whichever is still unset, in that order. Everything after the size is the
// family list.
func ParseFont(shorthand string) Font {
	s := strings.TrimSpace(shorthand)
	s = strings.TrimPrefix(s, "font:")
	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))

	fields := strings.Fields(s)

	var (
		f                        Font
		haveStyle, haveVariant   bool
		haveWeight, haveFontSize bool
	)

	for i, tok := range fields {
		if startsNumeric(tok) && !isWeight(tok) {
			f.Size, f.LineHeight, _ = strings.Cut(tok, "/")
			f.Family = strings.Join(fields[i+1:], " ")
			haveFontSize = true

			break
		}

		switch {
		case tok == "italic" || tok == "oblique":
			f.Style, haveStyle = tok, true
		case tok == "small-caps":
			f.Variant, haveVariant = tok, true
		case isWeight(tok):
			f.Weight, haveWeight = tok, true
		case tok == "normal":
			switch {
			case !haveStyle:
				f.Style, haveStyle = tok, true
			case !haveVariant:
				f.Variant, haveVariant = tok, true
			case !haveWeight:
				f.Weight, haveWeight = tok, true
			}
		}
	}

	if !haveFontSize && len(fields) > 0 {
		f.Family = fields[len(fields)-1]
	}

	return f
}

func startsNumeric(s string) bool {
	return s != "" && (s[0] >= '0' && s[0] <= '9' || s[0] == '.')
}

func isWeight(s string) bool {
	switch s {
	case "bold", "bolder", "lighter",
		"100", "200", "300", "400", "500", "600", "700", "800", "900":
		return true
	}

	return false
}

// composeFont applies an override object literal to the preset named by
// its theme key. A missing theme starts from an all-normal font.
func composeFont(ctx Context, o Override) Font {
	var f Font

	if theme, ok := o.Get(overrideTheme); ok {
		f = ctx.Fonts[theme]
	}

	if v, ok := o.Get(overrideSize); ok {
		f.Size = v
	}

	if v, ok := o.Get(overrideLineHeight); ok {
		f.LineHeight = v
	}

	if v, ok := o.Get(overrideWeight); ok {
		f.Weight = v
	}

	if v, ok := o.Get(overrideStyle); ok {
		f.Style = v
	}

	return f
}
