package lang

import (
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Contrast thresholds, as WCAG 2 contrast ratios.
const (
	minBackgroundContrast = 3.0
	minReadableContrast   = 4.5
)

// rgba is a parsed color with straight alpha.
type rgba struct {
	colorful.Color

	A float64
}

// black is what unparseable color text degrades to.
//
//nolint:gochecknoglobals
var black = rgba{A: 1}

// parseColor parses CSS color text: hex (#rgb, #rgba, #rrggbb,
// #rrggbbaa), rgb()/rgba() with numbers or percentages, hsl()/hsla(),
// "transparent" and the CSS named colors.
func parseColor(s string) (rgba, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case s == "":
		return rgba{}, false

	case s == "transparent":
		return rgba{}, true

	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])

	case strings.HasPrefix(s, "rgb"):
		return parseRGB(s)

	case strings.HasPrefix(s, "hsl"):
		return parseHSL(s)
	}

	if c, ok := colornames.Map[s]; ok {
		return rgba{
			Color: colorful.Color{
				R: float64(c.R) / 255,
				G: float64(c.G) / 255,
				B: float64(c.B) / 255,
			},
			A: float64(c.A) / 255,
		}, true
	}

	return rgba{}, false
}

// colorOrBlack parses v as a color, degrading to black.
func colorOrBlack(v Value) rgba {
	if c, ok := parseColor(v.String()); ok {
		return c
	}

	return black
}

func parseHex(h string) (rgba, bool) {
	alpha := 1.0

	switch len(h) {
	case 3, 6:
	case 4:
		a, err := strconv.ParseUint(h[3:]+h[3:], 16, 8)
		if err != nil {
			return rgba{}, false
		}

		alpha, h = float64(a)/255, h[:3]

	case 8:
		a, err := strconv.ParseUint(h[6:], 16, 8)
		if err != nil {
			return rgba{}, false
		}

		alpha, h = float64(a)/255, h[:6]

	default:
		return rgba{}, false
	}

	c, err := colorful.Hex("#" + h)
	if err != nil {
		return rgba{}, false
	}

	return rgba{Color: c, A: alpha}, true
}

// functionArgs splits "name(a, b c / d)" into its arguments.
func functionArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}

	return strings.FieldsFunc(s[open+1:len(s)-1], func(r rune) bool {
		return r == ',' || r == '/' || r == ' ' || r == '\t'
	}), true
}

// component parses a number or percentage; percentages are scaled so that
// 100% equals full.
func component(s string, full float64) (float64, bool) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, false
		}

		return f / 100 * full, true
	}

	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "deg"), 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

func alphaArg(args []string) (float64, bool) {
	if len(args) < 4 {
		return 1, true
	}

	a, ok := component(args[3], 1)

	return clamp01(a), ok
}

func parseRGB(s string) (rgba, bool) {
	args, ok := functionArgs(s)
	if !ok || len(args) < 3 || len(args) > 4 {
		return rgba{}, false
	}

	var ch [3]float64

	for i := range ch {
		v, ok := component(args[i], 255)
		if !ok {
			return rgba{}, false
		}

		ch[i] = clamp01(v / 255)
	}

	a, ok := alphaArg(args)
	if !ok {
		return rgba{}, false
	}

	return rgba{Color: colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, A: a}, true
}

func parseHSL(s string) (rgba, bool) {
	args, ok := functionArgs(s)
	if !ok || len(args) < 3 || len(args) > 4 {
		return rgba{}, false
	}

	h, okH := component(args[0], 360)
	sat, okS := component(args[1], 1)
	l, okL := component(args[2], 1)

	if !okH || !okS || !okL {
		return rgba{}, false
	}

	a, ok := alphaArg(args)
	if !ok {
		return rgba{}, false
	}

	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	return rgba{Color: colorful.Hsl(h, clamp01(sat), clamp01(l)), A: a}, true
}

// channels returns the 8-bit channels of c, rounding half up.
func (c rgba) channels() (r, g, b uint8) {
	return c.Clamped().RGB255()
}

// String renders c as rgb(r, g, b), or rgba(r, g, b, a) when it is not
// opaque.
func (c rgba) String() string {
	r, g, b := c.channels()

	ch := strconv.Itoa(int(r)) + ", " + strconv.Itoa(int(g)) + ", " + strconv.Itoa(int(b))

	if c.A < 1 {
		return "rgba(" + ch + ", " + formatNumber(c.A) + ")"
	}

	return "rgb(" + ch + ")"
}

// luminance returns the WCAG relative luminance of c, ignoring alpha.
func (c rgba) luminance() float64 {
	r, g, b := c.Clamped().LinearRgb()

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// contrast returns the WCAG contrast ratio between a and b, in [1, 21].
func contrast(a, b rgba) float64 {
	la, lb := a.luminance(), b.luminance()
	if la < lb {
		la, lb = lb, la
	}

	return (la + 0.05) / (lb + 0.05)
}

// withLightness returns c with its HSL lightness replaced by l in [0, 1].
func (c rgba) withLightness(l float64) rgba {
	h, s, _ := c.Hsl()

	return rgba{Color: colorful.Hsl(h, s, l), A: c.A}
}

// normalizeColor renders parseable color text as rgb()/rgba() and returns
// anything else unchanged.
func normalizeColor(s string) string {
	if c, ok := parseColor(s); ok {
		return c.String()
	}

	return s
}

// NormalizeColor renders CSS color text as rgb(r, g, b) or
// rgba(r, g, b, a). Text that is not a color is returned unchanged.
func NormalizeColor(s string) string { return normalizeColor(s) }

func clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
