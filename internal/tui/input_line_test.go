package tui

import (
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestRenderInputLine_SingleLineFixedWidth(t *testing.T) {
	got := renderInputLine(20, "› Buy\nmilk")
	if w := xansi.StringWidth(got); w != 20 {
		t.Fatalf("expected width 20; got %d (%q)", w, got)
	}
	if xansi.Strip(got) != " › Buy milk         " {
		t.Fatalf("unexpected line: %q", xansi.Strip(got))
	}

	long := renderInputLine(12, "› a very long task text")
	if w := xansi.StringWidth(long); w != 12 {
		t.Fatalf("expected overflow cut to 12; got %d", w)
	}
}
