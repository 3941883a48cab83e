package repl

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/cssfn/lang"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "color", 5, "color", 0, 5},
		{"after_paren", "color(col", 9, "col", 6, 9},
		{"after_comma", "opacity(x, 0.", 13, "0.", 11, 13},
		{"hyphenated", "color(color-1", 13, "color-1", 6, 13},
		{"variable", "number(--ga", 11, "--ga", 7, 11},
		{"object_value", "font({theme: 'Bo", 16, "Bo", 14, 16},
		{"object_key", "font({the", 9, "the", 6, 9},
		{"empty_at_boundary", "join(", 5, "", 5, 5},
		{"mid_word", "opacity", 3, "opacity", 0, 7},
		{"at_start", "unit", 0, "unit", 0, 4},
		{"calc_operator", "calculate(+,x", 13, "x", 12, 13},
		{"cursor_past_end", "unit", 9, "unit", 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func testContext() lang.Context {
	ctx := lang.EmptyContext()
	ctx.Colors["color-1"] = "rgb(255, 255, 255)"
	ctx.Colors["color-8"] = "rgb(255, 94, 139)"
	ctx.Fonts["Body-M"] = lang.ParseFont("normal normal normal 17px/1.4em arial")
	ctx.Numbers["gap"] = 4
	ctx.Strings["brand"] = "cssfn"

	return ctx
}

func TestContextNames(t *testing.T) {
	ctx := testContext()
	ctx.Numbers["color-1"] = 1

	tests := []struct {
		domain lang.Domain
		want   []string
	}{
		{lang.DomainColor, []string{"color-1", "color-8"}},
		{lang.DomainFont, []string{"Body-M"}},
		{lang.DomainNumber, []string{"color-1", "gap"}},
		{lang.DomainString, []string{"brand"}},
		{lang.DomainAny, []string{"Body-M", "brand", "color-1", "color-8", "gap"}},
	}

	for _, tt := range tests {
		t.Run(tt.domain.String(), func(t *testing.T) {
			if got := contextNames(ctx, tt.domain); !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func newTestModel(t *testing.T) model {
	t.Helper()

	s := newSession(testContext(), lang.NewRegistry(), testLogger())
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory), 0)

	return newModel(t.Context(), s, h, testLogger())
}

func TestEvalCandidates(t *testing.T) {
	m := newTestModel(t)

	if _, err := m.session.eval(`--accent: "color(color-8)"`); err != nil {
		t.Fatal(err)
	}

	funcs := m.session.reg.Names()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"top_level", "opa", funcs},
		{"color_ref", "color(co", append([]string{"color-1", "color-8"}, funcs...)},
		{"font_ref", "font(Bo", append([]string{"Body-M"}, funcs...)},
		{"second_arg", "opacity(x, 0", funcs},
		{"variable", "color(--a", []string{"--accent"}},
		{"untyped_call", "fallback(x", funcs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, _ := wordBounds(tt.input, len(tt.input))

			got := m.evalCandidates(word, detectFunctionCall(tt.input, start))
			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestComputeMatches(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("color(color-")

	matches, _, start, end := m.computeMatches()
	if start != 6 || end != 12 {
		t.Fatalf("expected word at [6, 12), got [%d, %d)", start, end)
	}

	if len(matches) < 2 || matches[0].Str != "color-1" && matches[0].Str != "color-8" {
		t.Errorf("expected palette colors first, got %v", matches)
	}

	m.input.SetValue("")

	if matches, _, _, _ := m.computeMatches(); matches != nil {
		t.Errorf("expected no matches for empty input, got %v", matches)
	}

	m = m.switchToMode(modeCtrl)
	m.input.SetValue("fu")

	matches, _, _, _ = m.computeMatches()
	if len(matches) == 0 || matches[0].Str != "funcs" {
		t.Errorf("expected funcs, got %v", matches)
	}
}

func TestRenderCandidateBar(t *testing.T) {
	matches := fuzzy.Find("c", []string{"color", "calculate", "color-1", "color-8"})
	isFunc := func(s string) bool { return s == "color" || s == "calculate" }

	if got := renderCandidateBar(matches, -1, false, 0, isFunc); got != "" {
		t.Errorf("expected empty bar at zero width, got %q", got)
	}

	if got := renderCandidateBar(nil, -1, false, 80, isFunc); got != "" {
		t.Errorf("expected empty bar without matches, got %q", got)
	}

	if got := renderCandidateBar(matches, 0, true, 80, isFunc); got == "" {
		t.Error("expected a candidate bar")
	}
}
