package palette

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/ardnew/cssfn/lang"
)

// ErrDecode reports a palette document that could not be read or decoded.
var ErrDecode = lang.NewError("decode palette")

// Defaults applied to font params that leave them out.
const (
	DefaultFontSize       = "17px"
	DefaultFontLineHeight = "1.4em"
)

// placeholder is the color value hosts emit for params that were never set.
const placeholder = "rgba(1,2,3,1)"

// Palette is the host data a stylesheet is evaluated against.
type Palette struct {
	SiteColors      []SiteColor           `json:"siteColors"      yaml:"siteColors"`
	SiteTextPresets map[string]TextPreset `json:"siteTextPresets" yaml:"siteTextPresets"`
	StyleParams     StyleParams           `json:"styleParams"     yaml:"styleParams"`
}

// SiteColor is one entry of the site color scheme.
type SiteColor struct {
	Name      string `json:"name"                yaml:"name"`
	Value     string `json:"value"               yaml:"value"`
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// TextPreset is a named site font. Value holds the CSS font shorthand; the
// remaining fields are used only when it is empty.
type TextPreset struct {
	Value       string `json:"value,omitempty"       yaml:"value,omitempty"`
	EditorKey   string `json:"editorKey,omitempty"   yaml:"editorKey,omitempty"`
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	FontFamily  string `json:"fontFamily,omitempty"  yaml:"fontFamily,omitempty"`
	Size        string `json:"size,omitempty"        yaml:"size,omitempty"`
	LineHeight  string `json:"lineHeight,omitempty"  yaml:"lineHeight,omitempty"`
	Style       string `json:"style,omitempty"       yaml:"style,omitempty"`
	Weight      string `json:"weight,omitempty"      yaml:"weight,omitempty"`
}

// StyleParams are the values a site owner set for one component.
type StyleParams struct {
	Numbers map[string]float64    `json:"numbers,omitempty" yaml:"numbers,omitempty"`
	Colors  map[string]ColorParam `json:"colors,omitempty"  yaml:"colors,omitempty"`
	Fonts   map[string]FontParam  `json:"fonts,omitempty"   yaml:"fonts,omitempty"`
}

// ColorParam is a color style param. ThemeName refers to a site color and
// takes precedence over the literal value.
type ColorParam struct {
	Value     string `json:"value,omitempty"     yaml:"value,omitempty"`
	RGBA      string `json:"rgba,omitempty"      yaml:"rgba,omitempty"`
	ThemeName string `json:"themeName,omitempty" yaml:"themeName,omitempty"`
}

// FontParam is a font style param, or a plain string when FontStyleParam
// is explicitly false.
type FontParam struct {
	Value          string    `json:"value,omitempty"          yaml:"value,omitempty"`
	Family         string    `json:"family,omitempty"         yaml:"family,omitempty"`
	CSSFontFamily  string    `json:"cssFontFamily,omitempty"  yaml:"cssFontFamily,omitempty"`
	Preset         string    `json:"preset,omitempty"         yaml:"preset,omitempty"`
	Size           float64   `json:"size,omitempty"           yaml:"size,omitempty"`
	Index          int       `json:"index,omitempty"          yaml:"index,omitempty"`
	FontParam      bool      `json:"fontParam,omitempty"      yaml:"fontParam,omitempty"`
	FontStyleParam *bool     `json:"fontStyleParam,omitempty" yaml:"fontStyleParam,omitempty"`
	Style          FontStyle `json:"style"                    yaml:"style"`
}

// FontStyle holds the decoration flags of a font param.
type FontStyle struct {
	Bold      bool `json:"bold"      yaml:"bold"`
	Italic    bool `json:"italic"    yaml:"italic"`
	Underline bool `json:"underline" yaml:"underline"`
}

// Load decodes a palette document from r.
func Load(r io.Reader) (*Palette, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	return &p, nil
}

// LoadFile decodes the palette document at path.
func LoadFile(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	p, err := Load(f)
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("path", path))
	}

	return p, nil
}

// Context resolves p into a [lang.Context]. It never fails; the signature
// lets a Palette serve as a provider for updaters. A nil Palette resolves
// to an empty context.
func (p *Palette) Context(context.Context) (lang.Context, error) {
	return p.Resolve(), nil
}

// Resolve returns the lang.Context described by p. Every map of the result
// is non-nil.
func (p *Palette) Resolve() lang.Context {
	ctx := lang.EmptyContext()
	if p == nil {
		return ctx
	}

	for _, c := range p.SiteColors {
		if c.Reference != "" {
			ctx.Colors[c.Reference] = c.Value
		}

		if c.Name != "" {
			ctx.Colors[c.Name] = c.Value
		}
	}

	for name, t := range p.SiteTextPresets {
		ctx.Fonts[name] = t.font()
	}

	for name, n := range p.StyleParams.Numbers {
		ctx.Numbers[name] = n
	}

	for name, c := range p.StyleParams.Colors {
		if s, ok := c.resolve(ctx.Colors); ok {
			ctx.Colors[name] = s
		}
	}

	for name, f := range p.StyleParams.Fonts {
		if f.FontStyleParam != nil && !*f.FontStyleParam {
			ctx.Strings[name] = f.Value

			continue
		}

		if font, ok := f.font(ctx.Fonts); ok {
			ctx.Fonts[name] = font
		}
	}

	return ctx
}

func (t TextPreset) font() lang.Font {
	if t.Value != "" {
		f := lang.ParseFont(t.Value)
		f.Variant = ""

		return f
	}

	return lang.Font{
		Style:      t.Style,
		Weight:     t.Weight,
		Size:       t.Size,
		LineHeight: t.LineHeight,
		Family:     t.FontFamily,
	}
}

func (c ColorParam) resolve(site map[string]string) (string, bool) {
	if c.ThemeName != "" {
		s, ok := site[c.ThemeName]

		return s, ok
	}

	s := c.Value
	if s == "" {
		s = c.RGBA
	}

	if s == "" || isPlaceholder(s) {
		return "", false
	}

	return lang.NormalizeColor(s), true
}

func isPlaceholder(s string) bool {
	return strings.Join(strings.Fields(s), "") == placeholder
}

// font resolves a font param. A param naming a known preset starts from
// it; otherwise the family is required.
func (f FontParam) font(presets map[string]lang.Font) (lang.Font, bool) {
	base, fromPreset := presets[f.Preset]
	if f.Preset == "" {
		fromPreset = false
	}

	family := f.family()
	if family == "" && !fromPreset {
		return lang.Font{}, false
	}

	out := lang.Font{
		Style:      "normal",
		Weight:     "normal",
		Size:       DefaultFontSize,
		LineHeight: DefaultFontLineHeight,
	}

	if fromPreset {
		out = base
		out.Variant = ""
	}

	if family != "" {
		out.Family = family
	}

	if f.Size > 0 {
		out.Size = strconv.FormatFloat(f.Size, 'f', -1, 64) + "px"
	}

	if f.Style.Bold {
		out.Weight = "bold"
	}

	if f.Style.Italic {
		out.Style = "italic"
	}

	out.Underline = f.Style.Underline

	return out, true
}

// family prefers the CSS family list, with its quotes removed, over the
// display family name.
func (f FontParam) family() string {
	if f.CSSFontFamily == "" {
		return f.Family
	}

	parts := strings.Split(f.CSSFontFamily, ",")
	for i, p := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(p), `'"`)
	}

	return strings.Join(parts, ",")
}
