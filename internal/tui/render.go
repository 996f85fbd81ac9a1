package tui

import (
	"strings"

	"todo-cli/internal/docs"
	"todo-cli/internal/model"
	"todo-cli/internal/mutate"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Screen layout, top to bottom: header, new-task field, blank, list, blank, footer, hint line.
const (
	layoutHeaderY = 0
	layoutInputY  = 1
	layoutListY   = 3
	// lines outside the list: header, input, two blanks, footer, hint
	layoutChrome = 6
)

func (m appModel) listHeight() int {
	h := m.height - layoutChrome
	if h < 3 {
		h = 3
	}
	return h
}

func (m appModel) footerY() int { return layoutListY + m.listHeight() + 1 }

// footerHit is a clickable span of the footer line, in cells [x0, x1).
type footerHit struct {
	x0, x1 int
	filter model.Filter
	clear  bool
}

// footerLayout renders the footer line and reports where its links landed.
func footerLayout(v mutate.View) (string, []footerHit) {
	var b strings.Builder
	hits := []footerHit{}
	x := 0
	add := func(s string) int {
		b.WriteString(s)
		w := xansi.StringWidth(s)
		x += w
		return w
	}

	add(styleMuted.Render(model.ItemsLeftLabel(v.Remaining)))
	add("   ")
	for _, f := range model.Filters() {
		st := styleFilter
		if f == v.Filter {
			st = styleFilterActive
		}
		x0 := x
		add(st.Render(f.Label()))
		hits = append(hits, footerHit{x0: x0, x1: x, filter: f})
	}
	if v.Completed > 0 {
		add("   ")
		x0 := x
		add(styleRemove.Render("Clear completed"))
		hits = append(hits, footerHit{x0: x0, x1: x, clear: true})
	}
	return b.String(), hits
}

func (m appModel) View() string {
	header := styleHeader.Render("todos")
	if strings.TrimSpace(m.title) != "" {
		header += styleMuted.Render(" " + glyphSeparator() + " " + m.title)
	}

	if m.showHelp {
		body := renderKeysHelp(m.width)
		return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
	}

	lines := make([]string, 0, layoutChrome+1)
	lines = append(lines, header)
	lines = append(lines, renderInputLine(m.width, m.input.View()))
	lines = append(lines, "")
	lines = append(lines, m.listView())
	lines = append(lines, "")

	footer, _ := footerLayout(m.rend.view)
	lines = append(lines, footer)
	lines = append(lines, m.hintLine())
	return strings.Join(lines, "\n")
}

func (m appModel) listView() string {
	h := m.listHeight()
	if len(m.list.Items()) == 0 {
		msg := "Nothing to do."
		switch {
		case m.rend.view.Total == 0:
			msg = "Nothing to do. Type a task and press enter."
		case m.rend.view.Filter == model.FilterActive:
			msg = "No active tasks."
		case m.rend.view.Filter == model.FilterCompleted:
			msg = "No completed tasks."
		}
		return lipgloss.NewStyle().Height(h).Render(styleMuted.Render("  " + msg))
	}
	return lipgloss.NewStyle().Height(h).MaxHeight(h).Render(m.list.View())
}

func (m appModel) hintLine() string {
	if m.status != "" {
		st := styleMuted
		if m.statusErr {
			st = styleError
		}
		return fitWidth(st.Render(m.status), m.width)
	}
	var hint string
	switch m.focus {
	case focusEdit:
		hint = "enter save · esc cancel"
	case focusList:
		hint = "space toggle · e edit · d remove · f filter · C clear completed · tab new · ? help · q quit"
	default:
		hint = "enter add · tab list · ctrl+c quit"
	}
	hint = strings.ReplaceAll(hint, "·", glyphSeparator())
	return styleMuted.Render(xansi.Truncate(hint, m.width, "…"))
}

func renderKeysHelp(width int) string {
	md, ok := docs.Get("keys")
	if !ok {
		return ""
	}
	return strings.TrimRight(RenderMarkdown(md, width), "\n")
}
