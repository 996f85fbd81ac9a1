package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's actual font. Instead, we can choose
// between Unicode and ASCII glyph sets for the toggle/remove affordances.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference picks the glyph set: TODO_TUI_GLYPHS wins over the config value.
func applyGlyphPreference(configured string) {
	v := strings.TrimSpace(os.Getenv("TODO_TUI_GLYPHS"))
	if v == "" {
		v = configured
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphChecked() string {
	if glyphs() == glyphSetASCII {
		return "[x]"
	}
	return "[✓]"
}

func glyphUnchecked() string {
	return "[ ]"
}

func glyphRemove() string {
	if glyphs() == glyphSetASCII {
		return "X"
	}
	return "✕"
}

func glyphSeparator() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "·"
}
