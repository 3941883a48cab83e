package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/cssfn/lang"
)

// ctrlCommands are the available control-mode commands.
//
//nolint:gochecknoglobals
var ctrlCommands = []string{"help", "vars", "funcs", "bindings", "reset", "clear", "quit"}

// isWordBoundary reports whether r separates words for completion. Hyphens
// are part of words since palette keys and variable names contain them.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', '{', '}', '[', ']',
		',', ':', '\'', '"',
		'+', '*', '/', '%':
		return true
	}

	return false
}

// wordBounds returns the word at cursor and its byte offsets in input.
// The word is empty when the cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// contextNames returns the sorted keys of the part of ctx named by d.
// DomainAny yields the keys of every part.
func contextNames(ctx lang.Context, d lang.Domain) []string {
	var names []string

	if d == lang.DomainAny || d == lang.DomainColor {
		names = append(names, slices.Collect(maps.Keys(ctx.Colors))...)
	}

	if d == lang.DomainAny || d == lang.DomainFont {
		names = append(names, slices.Collect(maps.Keys(ctx.Fonts))...)
	}

	if d == lang.DomainAny || d == lang.DomainNumber {
		names = append(names, slices.Collect(maps.Keys(ctx.Numbers))...)
	}

	if d == lang.DomainAny || d == lang.DomainString {
		names = append(names, slices.Collect(maps.Keys(ctx.Strings))...)
	}

	slices.Sort(names)

	return slices.Compact(names)
}

// evalCandidates returns the completions for word typed inside call. A word
// starting with "--" completes session variables. The first argument of a
// function that takes a palette reference completes context keys of the
// matching kind, followed by function names for nested calls.
func (m model) evalCandidates(word string, call functionCall) []string {
	if strings.HasPrefix(word, "--") {
		vars := m.session.variables()
		for i, v := range vars {
			vars[i] = "--" + v
		}

		return vars
	}

	funcs := m.session.reg.Names()

	if !call.inCall || call.argIndex != 0 {
		return funcs
	}

	d, ok := refDomain[call.name]
	if !ok {
		return funcs
	}

	return append(contextNames(m.session.ctx, d), funcs...)
}

// computeMatches returns the fuzzy matches for the word at the cursor,
// best first, with the candidate list and the word boundaries. An empty
// word has no matches so the hint line stays visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, wordStart, wordEnd := wordBounds(input, cursor)
	if word == "" {
		return nil, nil, wordStart, wordEnd
	}

	if m.mode == modeCtrl {
		candidates = ctrlCommands
	} else {
		candidates = m.evalCandidates(word, detectFunctionCall(input, wordStart))
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, cut off with
// an ellipsis at width. The candidate being cycled with Tab is shown in
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
	isFunc func(string) bool,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx, isFunc)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += len(sep)
		}

		last := i == len(matches)-1
		if i > 0 && used+w+reserve > width && !(last && used+w <= width) {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted. Functions get a "()" suffix that completion does not
// insert.
func renderCandidate(match fuzzy.Match, selected bool, isFunc func(string) bool) string {
	base := suggestionStyle
	highlight := lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)

	if selected {
		base = selectedStyle
		highlight = highlight.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if isFunc != nil && isFunc(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
