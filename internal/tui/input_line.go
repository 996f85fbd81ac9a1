package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws a text input as one full-width line on the input background.
func renderInputLine(width int, inputView string) string {
	if width < 10 {
		width = 10
	}

	// A wrapped input view would push the list down a line.
	inputView = strings.NewReplacer("\n", " ", "\r", " ").Replace(inputView)

	line := lipgloss.PlaceHorizontal(
		width,
		lipgloss.Left,
		" "+inputView,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > width {
		line = xansi.Cut(line, 0, width) + "\x1b[0m"
	}
	return line
}
