package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds.
// We use lipgloss.AdaptiveColor where possible and only apply "faint" styling
// on dark backgrounds (faint text on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorAccent     lipgloss.TerminalColor = ac("#b83f45", "#e06c75")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorInputBg    lipgloss.TerminalColor = ac("255", "236")
	colorDone       lipgloss.TerminalColor = ac("#5c9e6c", "#98c379")
	colorError      lipgloss.TerminalColor = ac("#b83f45", "#e06c75")
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleMuted  = lipgloss.NewStyle().Foreground(colorMuted)
	styleRow    = lipgloss.NewStyle()
	styleRowSel = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true)
	styleCheck  = lipgloss.NewStyle().Foreground(colorDone)
	styleDone   = lipgloss.NewStyle().Strikethrough(true).Foreground(colorMuted)
	styleRemove = lipgloss.NewStyle().Foreground(colorAccent)
	styleInput  = lipgloss.NewStyle().Background(colorInputBg)
	styleSelect = lipgloss.NewStyle().Reverse(true)
	styleError  = lipgloss.NewStyle().Foreground(colorError)

	styleFilter       = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	styleFilterActive = lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1)
)

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is useful for
// non-interactive CLI output but can accidentally disable colors in a TUI. For the TUI,
// we only honor NO_COLOR and otherwise follow the terminal's capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// TERM/COLORTERM can report stronger support than the detector (e.g. macOS Terminal.app).
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}
