package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestRenderMarkdownPlain(t *testing.T) {
	out := RenderMarkdownPlain("# Keys\n\nPress `enter` to add.", 60)
	if !strings.Contains(out, "Keys") || !strings.Contains(out, "enter") {
		t.Fatalf("expected heading and body in output; got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI escapes in plain output; got %q", out)
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	if got := RenderMarkdown("   \n", 80); got != "" {
		t.Fatalf("expected empty output; got %q", got)
	}
}

func TestRenderKeysHelp(t *testing.T) {
	got := xansi.Strip(renderKeysHelp(80))
	if !strings.Contains(got, "double-click") {
		t.Fatalf("expected keys help to describe mouse editing; got %q", got)
	}
}
