package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level %v, got %v", LevelInfo, logger.Level())
	}

	if logger.Format() != FormatJSON {
		t.Errorf("expected default format %v, got %v", FormatJSON, logger.Format())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}
}

func TestMake_LevelFiltersRecords(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		logFn   func(Logger)
		written bool
	}{
		{"trace below debug", LevelDebug, func(l Logger) { l.Trace("x") }, false},
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("x") }, true},
		{"info below error", LevelError, func(l Logger) { l.Info("x") }, false},
		{"error at error", LevelError, func(l Logger) { l.Error("x") }, true},
		{"warn above info", LevelInfo, func(l Logger) { l.Warn("x") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.logFn(Make(&buf, WithLevel(tt.level)))

			if got := buf.Len() > 0; got != tt.written {
				t.Errorf("expected written=%v, got %v (%q)", tt.written, got, buf.String())
			}
		})
	}
}

func TestMake_JSONRecord(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelTrace))
	logger.TraceContext(context.Background(), "pass start", slog.Int("sheets", 2))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("failed to decode JSON record %q: %v", buf.String(), err)
	}

	if rec["msg"] != "pass start" {
		t.Errorf("expected msg %q, got %v", "pass start", rec["msg"])
	}

	if rec["level"] != "TRACE" {
		t.Errorf("expected level %q, got %v", "TRACE", rec["level"])
	}

	if rec["sheets"] != float64(2) {
		t.Errorf("expected sheets=2, got %v", rec["sheets"])
	}
}

func TestMake_TextRecord(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(false))
	logger.Info("hello", slog.String("key", "value"))

	out := buf.String()
	for _, want := range []string{"level=INFO", "msg=hello", "key=value"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestMake_PrettyTextRecord(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(true), WithTimeLayout("none"))
	logger.With(slog.String("sheet", "main")).Warn("slow", slog.Int("ms", 12))

	out := buf.String()
	for _, want := range []string{"WARN", "slow", "sheet=", "main", "ms=", "12"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestWithTimeLayout(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		contains string
		absent   bool
	}{
		{"rfc3339", "RFC3339", `"time":"`, false},
		{"nano", "rfc3339-nano", ".", false},
		{"none", "none", `"time"`, true},
		{"empty", "", `"time"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			Make(&buf, WithTimeLayout(tt.layout)).Info("x")

			has := strings.Contains(buf.String(), tt.contains)
			if has == tt.absent {
				t.Errorf("layout %q: expected contains(%q)=%v, got %q",
					tt.layout, tt.contains, !tt.absent, buf.String())
			}
		})
	}
}

func TestWithCaller(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true)).Info("x")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller to reference log_test.go, got %q", buf.String())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError {
		t.Errorf("expected base level unchanged, got %v", base.Level())
	}

	wrapped.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected wrapped logger to write debug record, got %q", buf.String())
	}
}

func TestLogger_ZeroValueIsSilent(t *testing.T) {
	var logger Logger

	logger.Error("nothing happens")
	logger.With(slog.String("k", "v")).Info("still nothing")

	if logger.Level() != DefaultLevel {
		t.Errorf("expected %v, got %v", DefaultLevel, logger.Level())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat(" Text "); got != FormatText {
		t.Errorf("expected %v, got %v", FormatText, got)
	}

	if got := ParseFormat("xml"); got != DefaultFormat {
		t.Errorf("expected %v, got %v", DefaultFormat, got)
	}
}

func TestLevelsAndFormats(t *testing.T) {
	var levels []string
	for l := range Levels() {
		levels = append(levels, l)
	}

	if got := strings.Join(levels, ","); got != "trace,debug,info,warn,error" {
		t.Errorf("expected %q, got %q", "trace,debug,info,warn,error", got)
	}

	var formats []string
	for f := range Formats() {
		formats = append(formats, f)
	}

	if got := strings.Join(formats, ","); got != "json,text" {
		t.Errorf("expected %q, got %q", "json,text", got)
	}
}
