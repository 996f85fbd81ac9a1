package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_EmptyPathDiscards(t *testing.T) {
	l, c, err := New("", "debug")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l == nil || c == nil {
		t.Fatalf("expected logger and closer")
	}
	l.Info("dropped")
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNew_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "todo.log")
	l, c, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("command applied", "kind", "add")
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	line := strings.TrimSpace(string(b))
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("expected JSON log line; got %q (%v)", line, err)
	}
	if rec["msg"] != "command applied" || rec["kind"] != "add" {
		t.Fatalf("unexpected record: %#v", rec)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
}
