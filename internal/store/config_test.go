package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestConfig_MissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("TODO_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, &Config{}) {
		t.Fatalf("expected zero config; got %#v", cfg)
	}
}

func TestConfig_SaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODO_CONFIG_DIR", dir)

	want := &Config{
		Backend:   BackendFile,
		Workspace: "work",
		TUI:       TUIConfig{Glyphs: "ascii", DisableMouse: true},
		Log:       LogConfig{File: "/tmp/todo.log", Level: "debug"},
	}
	if err := SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(b), `backend = "file"`) {
		t.Fatalf("expected toml content; got:\n%s", b)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestConfig_RejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "syntax", body: "backend = \n"},
		{name: "unknown backend", body: "backend = \"redis\"\n"},
		{name: "unknown glyphs", body: "[tui]\nglyphs = \"emoji\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("TODO_CONFIG_DIR", dir)
			if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(tt.body), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := LoadConfig()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), "config.toml") {
				t.Fatalf("expected error to name the file; got %v", err)
			}
		})
	}
}

func TestWorkspaces(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODO_CONFIG_DIR", dir)

	names, err := ListWorkspaces()
	if err != nil {
		t.Fatalf("ListWorkspaces: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no workspaces; got %v", names)
	}

	for _, n := range []string{"work", "home"} {
		d, err := WorkspaceDir(n)
		if err != nil {
			t.Fatalf("WorkspaceDir(%q): %v", n, err)
		}
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
	}
	names, err = ListWorkspaces()
	if err != nil {
		t.Fatalf("ListWorkspaces: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"home", "work"}) {
		t.Fatalf("unexpected workspaces: %v", names)
	}

	for _, bad := range []string{"", "  ", "a/b", ".."} {
		if _, err := WorkspaceDir(bad); err == nil {
			t.Fatalf("expected error for workspace name %q", bad)
		}
	}
}
