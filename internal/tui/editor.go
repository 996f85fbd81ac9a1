package tui

import (
	"todo-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

// editor is the inline text-edit session for one task. At most one is active: any
// re-render of the rows ends it.
type editor struct {
	active   bool
	taskID   string
	original string
	input    textinput.Model
	// selectAll emulates a fully selected field: the next typed text replaces the value.
	selectAll bool
}

func newEditor() editor {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 500
	return editor{input: in}
}

// Begin opens the editor on t, pre-filled with its text, all of it selected.
func (e *editor) Begin(t model.Task) tea.Cmd {
	e.active = true
	e.taskID = t.ID
	e.original = t.Text
	e.selectAll = t.Text != ""
	e.input.SetValue(t.Text)
	e.input.CursorEnd()
	return e.input.Focus()
}

// End closes the session and returns the task id and the field value at that moment.
func (e *editor) End() (id, value string) {
	id, value = e.taskID, e.input.Value()
	e.active = false
	e.taskID = ""
	e.original = ""
	e.selectAll = false
	e.input.Blur()
	e.input.SetValue("")
	return id, value
}

func (e editor) Value() string { return e.input.Value() }

// Update feeds a key to the field. Confirm/cancel/focus keys are handled by the caller.
func (e *editor) Update(msg tea.KeyMsg) tea.Cmd {
	if e.selectAll {
		e.selectAll = false
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			e.input.SetValue("")
		case tea.KeyBackspace, tea.KeyDelete, tea.KeyCtrlH:
			e.input.SetValue("")
			return nil
		case tea.KeyLeft, tea.KeyHome, tea.KeyCtrlA:
			e.input.CursorStart()
			return nil
		case tea.KeyRight, tea.KeyEnd, tea.KeyCtrlE:
			e.input.CursorEnd()
			return nil
		}
	}
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

func (e editor) View(width int) string {
	if e.selectAll {
		return styleSelect.Render(fitWidth(e.input.Value(), min(width, xansi.StringWidth(e.input.Value()))))
	}
	e.input.Width = max(width-1, 1)
	return styleInput.Render(e.input.View())
}
