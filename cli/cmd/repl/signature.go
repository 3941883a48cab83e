package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/cssfn/lang"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// builtinParams are the parameter names of the built-in functions. A
// leading "..." marks a parameter that repeats.
//
//nolint:gochecknoglobals
var builtinParams = map[string][]string{
	"color":            {"ref"},
	"font":             {"ref|{theme, ...}"},
	"number":           {"ref"},
	"string":           {"ref"},
	"unit":             {"value", "suffix"},
	"opacity":          {"color", "alpha"},
	"withoutOpacity":   {"color"},
	"darken":           {"color", "amount"},
	"join":             {"...color", "...weight"},
	"fallback":         {"...value"},
	"zeroAsTrue":       {"ref"},
	"calculate":        {"op", "...term"},
	"smartBGContrast":  {"text", "background"},
	"readableFallback": {"background", "preferred", "fallback"},
	"underline":        {"font"},
	"rgb":              {"r", "g", "b"},
	"rgba":             {"r", "g", "b", "a"},
	"hsl":              {"h", "s", "l"},
	"hsla":             {"h", "s", "l", "a"},
}

// refDomain maps the functions that take a palette reference to the part
// of the context their reference names.
//
//nolint:gochecknoglobals
var refDomain = map[string]lang.Domain{
	"color":          lang.DomainColor,
	"withoutOpacity": lang.DomainColor,
	"opacity":        lang.DomainColor,
	"darken":         lang.DomainColor,
	"font":           lang.DomainFont,
	"underline":      lang.DomainFont,
	"number":         lang.DomainNumber,
	"zeroAsTrue":     lang.DomainNumber,
	"string":         lang.DomainString,
}

// functionCall is the innermost call enclosing the cursor.
type functionCall struct {
	name     string
	argIndex int
	inCall   bool
}

// frame is one open bracket during the scan in [detectFunctionCall]. Only
// parenthesis frames carry a function name.
type frame struct {
	name  string
	args  int
	paren bool
}

// detectFunctionCall scans input up to cursor and reports the innermost
// open call. Commas inside object literals and quoted strings do not
// advance the argument index.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	var (
		stack []frame
		quote byte
	)

	for i := 0; i < cursor; i++ {
		ch := input[i]

		if quote != 0 {
			if ch == quote {
				quote = 0
			}

			continue
		}

		switch ch {
		case '\'', '"':
			quote = ch
		case '(':
			stack = append(stack, frame{name: nameBefore(input, i), paren: true})
		case '{', '[':
			stack = append(stack, frame{})
		case ')', '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case ',':
			if n := len(stack); n > 0 && stack[n-1].paren {
				stack[n-1].args++
			}
		}
	}

	if len(stack) == 0 {
		return functionCall{}
	}

	top := stack[len(stack)-1]
	if !top.paren || top.name == "" {
		return functionCall{}
	}

	return functionCall{name: top.name, argIndex: top.args, inCall: true}
}

// nameBefore returns the identifier that ends at byte offset end.
func nameBefore(input string, end int) string {
	start := end

	for start > 0 && isIdentByte(input[start-1]) {
		start--
	}

	return input[start:end]
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '-' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// getSignature returns the parameter list of the function called name.
// Registered functions without a known parameter list take any number of
// arguments. ok is false for unknown functions.
func getSignature(reg *lang.Registry, name string) (params []string, ok bool) {
	if reg == nil {
		return nil, false
	}

	if _, ok := reg.Lookup(name); !ok {
		return nil, false
	}

	if params, ok := builtinParams[name]; ok {
		return params, true
	}

	return []string{"...args"}, true
}

// renderSignatureHint renders name(params) with the parameter at argIndex
// highlighted. Repeating parameters stay highlighted for every later
// argument, cycling through the group they belong to.
func renderSignatureHint(name string, params []string, argIndex int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	current := currentParam(params, argIndex)

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == current {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}

// currentParam maps an argument index to the parameter it fills, or -1.
func currentParam(params []string, argIndex int) int {
	if argIndex < len(params) {
		return argIndex
	}

	first := -1

	for i, p := range params {
		if strings.HasPrefix(p, "...") {
			first = i

			break
		}
	}

	if first < 0 {
		return -1
	}

	group := len(params) - first

	return first + (argIndex-first)%group
}
