package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return NewWithHandler(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level}))
}

func TestLogger_ModuleChain(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug)
	l.Module("crossval").With("op", "fadd.s").Info("done")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}
	if entry["module"] != "crossval" {
		t.Errorf("module = %v, want crossval", entry["module"])
	}
	if entry["op"] != "fadd.s" {
		t.Errorf("op = %v, want fadd.s", entry["op"])
	}
	if entry["msg"] != "done" {
		t.Errorf("msg = %v, want done", entry["msg"])
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		level  slog.Level
		logFn  func(l *Logger)
		expect bool
	}{
		{slog.LevelInfo, func(l *Logger) { l.Debug("nope") }, false},
		{slog.LevelInfo, func(l *Logger) { l.Info("yes") }, true},
		{slog.LevelWarn, func(l *Logger) { l.Info("nope") }, false},
		{slog.LevelWarn, func(l *Logger) { l.Error("yes") }, true},
		{slog.LevelDebug, func(l *Logger) { l.Debug("yes") }, true},
	}
	for i, tt := range tests {
		var buf bytes.Buffer
		tt.logFn(newTestLogger(&buf, tt.level))
		if got := buf.Len() > 0; got != tt.expect {
			t.Errorf("case %d: emitted = %v, want %v", i, got, tt.expect)
		}
	}
}

func TestNewFormats(t *testing.T) {
	var text, js bytes.Buffer
	New(&text, slog.LevelInfo, FormatText).Info("hello", "k", 1)
	New(&js, slog.LevelInfo, FormatAuto).Info("hello", "k", 1)

	if !strings.Contains(text.String(), "msg=hello") || !strings.Contains(text.String(), "k=1") {
		t.Errorf("text output = %q", text.String())
	}
	// A bytes.Buffer is not a terminal, so auto selects JSON.
	if !json.Valid(bytes.TrimSpace(js.Bytes())) {
		t.Errorf("auto output is not JSON: %q", js.String())
	}
}

func TestDiscard(t *testing.T) {
	l := OrDiscard(nil)
	if l.Enabled(slog.LevelError) {
		t.Error("discard logger reports Error as enabled")
	}
	l.Error("dropped")
	if Default() == nil {
		t.Fatal("Default() is nil")
	}
	SetDefault(nil)
	if Default() == nil {
		t.Fatal("SetDefault(nil) cleared the default")
	}
}

func TestParse(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "": slog.LevelInfo,
		"warning": slog.LevelWarn, " error ": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) succeeded")
	}

	for in, want := range map[string]Format{"": FormatAuto, "JSON": FormatJSON, "text": FormatText} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) succeeded")
	}
}
