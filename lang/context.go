package lang

import "strings"

// Context is the runtime data expressions are evaluated against. It is
// supplied by the host for each pass and never mutated by evaluation.
type Context struct {
	Colors  map[string]string  `json:"colors"  yaml:"colors"`
	Fonts   map[string]Font    `json:"fonts"   yaml:"fonts"`
	Numbers map[string]float64 `json:"numbers" yaml:"numbers"`
	Strings map[string]string  `json:"strings" yaml:"strings"`
}

// EmptyContext returns a Context whose maps are all empty but non-nil.
func EmptyContext() Context {
	return Context{
		Colors:  map[string]string{},
		Fonts:   map[string]Font{},
		Numbers: map[string]float64{},
		Strings: map[string]string{},
	}
}

// Font is a resolved font preset.
type Font struct {
	Style      string `json:"style,omitempty"      yaml:"style,omitempty"`
	Variant    string `json:"variant,omitempty"    yaml:"variant,omitempty"`
	Weight     string `json:"weight,omitempty"     yaml:"weight,omitempty"`
	Size       string `json:"size,omitempty"       yaml:"size,omitempty"`
	LineHeight string `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
	Family     string `json:"family,omitempty"     yaml:"family,omitempty"`
	Underline  bool   `json:"underline,omitempty"  yaml:"underline,omitempty"`
}

// Shorthand renders f as a CSS font shorthand:
//
//	style normal weight size/lineHeight family
//
// The variant is always rendered as "normal". Empty style or weight render
// as "normal"; an empty line height is left out.
func (f Font) Shorthand() string {
	part := []string{or(f.Style, "normal"), "normal", or(f.Weight, "normal")}

	size := f.Size
	if size != "" && f.LineHeight != "" {
		size += "/" + f.LineHeight
	}

	if size != "" {
		part = append(part, size)
	}

	if f.Family != "" {
		part = append(part, f.Family)
	}

	return strings.Join(part, " ")
}

// Domain is the kind of value a call site expects, used to pick the context
// map a variable is resolved from.
type Domain uint8

const (
	DomainAny Domain = iota
	DomainColor
	DomainFont
	DomainNumber
	DomainString
)

func (d Domain) String() string {
	switch d {
	case DomainColor:
		return "color"
	case DomainFont:
		return "font"
	case DomainNumber:
		return "number"
	case DomainString:
		return "string"
	default:
		return "any"
	}
}

// lookup finds name in the context map for d. DomainAny searches colors,
// numbers, strings and fonts, in that order.
func (c Context) lookup(name string, d Domain) (Value, bool) {
	switch d {
	case DomainColor:
		if s, ok := c.Colors[name]; ok {
			return ColorValue(s), true
		}

	case DomainFont:
		if f, ok := c.Fonts[name]; ok {
			return FontValue(f), true
		}

	case DomainNumber:
		if n, ok := c.Numbers[name]; ok {
			return NumberValue(n), true
		}

	case DomainString:
		if s, ok := c.Strings[name]; ok {
			return StringValue(s), true
		}

	case DomainAny:
		for _, d := range []Domain{DomainColor, DomainNumber, DomainString, DomainFont} {
			if v, ok := c.lookup(name, d); ok {
				return v, true
			}
		}
	}

	return Unresolved, false
}

func or(s, def string) string {
	if s == "" {
		return def
	}

	return s
}
