package tui

import (
	"fmt"
	"io"
	"strings"

	"todo-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

// taskRow is one visible task in the list.
type taskRow struct {
	task model.Task
}

func (r taskRow) FilterValue() string { return r.task.Text }

const (
	// "[ ] " occupies the first columns of every row; clicks there toggle.
	rowToggleWidth = 4
	// " ✕" occupies the last columns; clicks there remove.
	rowRemoveWidth = 2
)

// taskDelegate draws rows as "[ ] text ... ✕". The row being edited renders the editor instead.
type taskDelegate struct {
	editor *editor
	// focused is false while the new-task field has focus, so the cursor row isn't highlighted.
	focused *bool
}

func (d taskDelegate) Height() int                             { return 1 }
func (d taskDelegate) Spacing() int                            { return 0 }
func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(taskRow)
	if !ok {
		return
	}
	contentW := m.Width()
	if contentW < rowToggleWidth+rowRemoveWidth+4 {
		fmt.Fprint(w, "")
		return
	}
	selected := index == m.Index() && d.focused != nil && *d.focused

	box := styleCheck.Render(glyphUnchecked())
	if row.task.Completed {
		box = styleCheck.Render(glyphChecked())
	}
	labelW := contentW - rowToggleWidth - rowRemoveWidth

	editing := d.editor != nil && d.editor.active && d.editor.taskID == row.task.ID
	var label string
	if editing {
		label = d.editor.View(labelW)
	} else {
		text := fitWidth(row.task.Text, labelW)
		if row.task.Completed {
			label = faintIfDark(styleDone).Render(text)
		} else {
			label = text
		}
	}
	remove := " " + styleRemove.Render(glyphRemove())

	line := box + " " + fitWidth(label, labelW) + remove
	if selected && !editing {
		line = styleRowSel.Render(xansi.Strip(line))
	} else {
		line = styleRow.Render(line)
	}
	fmt.Fprint(w, line)
}

// fitWidth pads or cuts s (which may contain ANSI sequences) to exactly w cells.
func fitWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	sw := xansi.StringWidth(s)
	switch {
	case sw < w:
		return s + strings.Repeat(" ", w-sw)
	case sw > w:
		if w == 1 {
			return xansi.Truncate(s, 1, "")
		}
		return xansi.Truncate(s, w, "…")
	default:
		return s
	}
}

func newTaskList(d taskDelegate) list.Model {
	l := list.New([]list.Item{}, d, 0, 0)
	// We render our own header/footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	// Add Emacs-style navigation aliases (common muscle memory).
	l.KeyMap.CursorUp.SetKeys(append(l.KeyMap.CursorUp.Keys(), "ctrl+p")...)
	l.KeyMap.CursorDown.SetKeys(append(l.KeyMap.CursorDown.Keys(), "ctrl+n")...)
	return l
}

func rowsFor(tasks []model.Task) []list.Item {
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskRow{task: t})
	}
	return items
}
