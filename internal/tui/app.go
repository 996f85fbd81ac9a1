package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"todo-cli/internal/logging"
	"todo-cli/internal/model"
	"todo-cli/internal/mutate"
	"todo-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
	focusEdit
)

const doubleClickWindow = 500 * time.Millisecond

// Options configures the interactive app.
type Options struct {
	Logger *slog.Logger
	// Title is shown next to the app name (e.g. the workspace).
	Title        string
	Glyphs       string
	DisableMouse bool
}

// renderer receives every view the controller produces; the model rebuilds its rows from it.
type renderer struct {
	view mutate.View
}

func (r *renderer) render(v mutate.View) { r.view = v }

type lastClick struct {
	taskID string
	at     time.Time
}

type appModel struct {
	ctrl   *mutate.Controller
	rend   *renderer
	logger *slog.Logger
	title  string

	width  int
	height int

	focus       focusArea
	listFocused *bool

	input  textinput.Model
	list   list.Model
	editor *editor

	showHelp  bool
	status    string
	statusErr bool

	click lastClick
	now   func() time.Time
}

func newAppModel(st *store.Store, opts Options) appModel {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	r := &renderer{}
	ed := newEditor()
	m := appModel{
		rend:        r,
		logger:      logger,
		title:       opts.Title,
		listFocused: new(bool),
		editor:      &ed,
		now:         time.Now,
	}
	m.ctrl = mutate.NewController(st, &model.Selector{}, mutate.WithRenderer(r.render), mutate.WithLogger(logger))

	m.input = textinput.New()
	m.input.Placeholder = "What needs to be done?"
	m.input.Prompt = "› "
	m.input.CharLimit = 500
	m.input.Focus()

	m.list = newTaskList(taskDelegate{editor: m.editor, focused: m.listFocused})
	m.resize(80, 24)

	m.ctrl.Render()
	m.syncRows()
	return m
}

func (m appModel) Init() tea.Cmd { return textinput.Blink }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.BlurMsg:
		// Leaving the terminal is a focus loss: an open edit commits.
		if m.focus == focusEdit {
			m.commitEdit()
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			switch msg.String() {
			case "?", "esc", "q", "enter":
				m.showHelp = false
			}
			return m, nil
		}
		switch m.focus {
		case focusEdit:
			return m.updateEdit(msg)
		case focusList:
			return m.updateList(msg)
		default:
			return m.updateInput(msg)
		}
	}

	// Cursor blink and other internal messages go to whichever field is focused.
	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		m.input, cmd = m.input.Update(msg)
	case focusEdit:
		m.editor.input, cmd = m.editor.input.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.input.Value()
		if model.NormalizeText(text) == "" {
			return m, nil
		}
		m.dispatch(mutate.Add(text))
		m.input.SetValue("")
		return m, nil
	case "esc":
		m.input.SetValue("")
		return m, nil
	case "tab", "down":
		if len(m.list.Items()) > 0 {
			m.setFocus(focusList)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "tab", "shift+tab", "i", "/", "esc":
		m.setFocus(focusInput)
		return m, nil
	case "up", "k":
		if m.list.Index() == 0 {
			m.setFocus(focusInput)
			return m, nil
		}
	case " ", "x":
		if t, ok := m.selectedTask(); ok {
			m.dispatch(mutate.Toggle(t.ID))
		}
		return m, nil
	case "d", "delete":
		if t, ok := m.selectedTask(); ok {
			m.dispatch(mutate.Remove(t.ID))
		}
		return m, nil
	case "enter", "e":
		cmd := m.beginEdit()
		return m, cmd
	case "1":
		m.dispatch(mutate.SetFilter(model.FilterAll))
		return m, nil
	case "2":
		m.dispatch(mutate.SetFilter(model.FilterActive))
		return m, nil
	case "3":
		m.dispatch(mutate.SetFilter(model.FilterCompleted))
		return m, nil
	case "f":
		m.dispatch(mutate.SetFilter(m.ctrl.Filter().Next()))
		return m, nil
	case "C":
		m.dispatch(mutate.ClearCompleted())
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitEdit()
		return m, nil
	case "esc":
		m.cancelEdit()
		return m, nil
	case "tab", "shift+tab", "up", "down":
		// Moving focus away from the field commits, like a blur.
		m.commitEdit()
		return m, nil
	}
	cmd := m.editor.Update(msg)
	return m, cmd
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.focus == focusList {
			m.list.CursorUp()
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.focus == focusList {
			m.list.CursorDown()
		}
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.focus == focusEdit {
		// Clicking anywhere moves focus out of the edit field.
		m.commitEdit()
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if msg.Y == layoutInputY {
		m.setFocus(focusInput)
		return m, nil
	}
	if idx, ok := m.rowAt(msg.Y); ok {
		m.list.Select(idx)
		t, _ := m.selectedTask()
		m.setFocus(focusList)
		switch {
		case msg.X < rowToggleWidth:
			m.dispatch(mutate.Toggle(t.ID))
		case msg.X >= m.list.Width()-rowRemoveWidth:
			m.dispatch(mutate.Remove(t.ID))
		default:
			now := m.now()
			if m.click.taskID == t.ID && now.Sub(m.click.at) <= doubleClickWindow {
				m.click = lastClick{}
				cmd := m.beginEdit()
				return m, cmd
			}
			m.click = lastClick{taskID: t.ID, at: now}
		}
		return m, nil
	}
	if msg.Y == m.footerY() {
		_, hits := footerLayout(m.rend.view)
		for _, h := range hits {
			if msg.X < h.x0 || msg.X >= h.x1 {
				continue
			}
			if h.clear {
				m.dispatch(mutate.ClearCompleted())
			} else {
				m.dispatch(mutate.SetFilter(h.filter))
			}
			break
		}
	}
	return m, nil
}

func (m *appModel) dispatch(cmd mutate.Command) {
	if _, err := m.ctrl.Dispatch(context.Background(), cmd); err != nil {
		m.status = "Could not save: " + err.Error()
		if !errors.As(err, new(mutate.PersistError)) {
			m.status = "Error: " + err.Error()
		}
		m.statusErr = true
	} else if m.statusErr {
		m.status = ""
		m.statusErr = false
	}
	m.syncRows()
}

func (m *appModel) beginEdit() tea.Cmd {
	t, ok := m.selectedTask()
	if !ok {
		return nil
	}
	m.setFocus(focusEdit)
	return m.editor.Begin(t)
}

func (m *appModel) commitEdit() {
	if !m.editor.active {
		m.setFocus(focusList)
		return
	}
	id, value := m.editor.End()
	m.setFocus(focusList)
	m.dispatch(mutate.Edit(id, value))
}

func (m *appModel) cancelEdit() {
	m.editor.End()
	m.setFocus(focusList)
	m.ctrl.Render()
	m.syncRows()
}

func (m *appModel) setFocus(f focusArea) {
	m.focus = f
	*m.listFocused = f == focusList
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// syncRows replaces every row with the latest rendered view. Any open editor is dropped.
func (m *appModel) syncRows() {
	curID := ""
	if t, ok := m.selectedTask(); ok {
		curID = t.ID
	}
	if m.editor.active {
		m.editor.End()
	}
	if m.focus == focusEdit {
		m.setFocus(focusList)
	}

	items := rowsFor(m.rend.view.Tasks)
	m.list.SetItems(items)
	if curID != "" {
		for i, it := range items {
			if it.(taskRow).task.ID == curID {
				m.list.Select(i)
				break
			}
		}
	}
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	if len(items) == 0 && m.focus == focusList {
		m.setFocus(focusInput)
	}
}

func (m appModel) selectedTask() (model.Task, bool) {
	row, ok := m.list.SelectedItem().(taskRow)
	if !ok {
		return model.Task{}, false
	}
	return row.task, true
}

// rowAt maps a screen line to an index into the list items.
func (m appModel) rowAt(y int) (int, bool) {
	off := y - layoutListY
	if off < 0 || off >= m.listHeight() {
		return 0, false
	}
	idx := m.list.Paginator.Page*m.list.Paginator.PerPage + off
	if idx >= len(m.list.Items()) {
		return 0, false
	}
	return idx, true
}

func (m *appModel) resize(w, h int) {
	if w < 30 {
		w = 30
	}
	m.width = w
	m.height = h
	// prompt, leading pad and cursor
	m.input.Width = w - 5
	m.list.SetSize(w, m.listHeight())
}
