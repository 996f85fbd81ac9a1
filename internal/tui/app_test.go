package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"todo-cli/internal/model"
	"todo-cli/internal/mutate"
	"todo-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

func newTestApp(t *testing.T) (appModel, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	st := store.New(kv)
	st.Load(context.Background())
	return newAppModel(st, Options{}), kv
}

func send(m appModel, msgs ...tea.Msg) appModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(appModel)
	}
	return m
}

func typed(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func texts(m appModel) []string {
	out := []string{}
	for _, t := range m.rend.view.Tasks {
		out = append(out, t.Text)
	}
	return out
}

func addTasks(m appModel, texts ...string) appModel {
	for _, s := range texts {
		m = send(m, typed(s), keyEnter)
	}
	return m
}

func TestApp_AddFromInput(t *testing.T) {
	m, kv := newTestApp(t)
	m = send(m, typed("  Buy milk  "), keyEnter)

	if got := texts(m); len(got) != 1 || got[0] != "Buy milk" {
		t.Fatalf("expected [Buy milk]; got %v", got)
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared; got %q", m.input.Value())
	}
	raw, ok, _ := kv.Get(context.Background(), store.DefaultKey)
	if !ok || !strings.Contains(raw, `"Buy milk"`) {
		t.Fatalf("expected task persisted; got ok=%v raw=%q", ok, raw)
	}
	if !strings.Contains(xansi.Strip(m.View()), "1 item left") {
		t.Fatalf("expected footer count in view")
	}
}

func TestApp_BlankInputIgnored(t *testing.T) {
	m, kv := newTestApp(t)
	m = send(m, typed("   "), keyEnter)
	if len(m.rend.view.Tasks) != 0 {
		t.Fatalf("expected no tasks; got %v", texts(m))
	}
	if _, ok, _ := kv.Get(context.Background(), store.DefaultKey); ok {
		t.Fatalf("expected nothing persisted for blank input")
	}
}

func TestApp_NewestFirst(t *testing.T) {
	m, _ := newTestApp(t)
	m = addTasks(m, "Buy milk", "Walk dog")
	if got := texts(m); len(got) != 2 || got[0] != "Walk dog" || got[1] != "Buy milk" {
		t.Fatalf("expected newest first; got %v", got)
	}
}

func TestApp_ToggleAndRemoveFromList(t *testing.T) {
	m, _ := newTestApp(t)
	m = addTasks(m, "Buy milk")
	m = send(m, keyTab, keySpace)
	if !m.rend.view.Tasks[0].Completed || m.rend.view.Remaining != 0 {
		t.Fatalf("expected task completed; got %+v", m.rend.view)
	}
	m = send(m, typed("x"))
	if m.rend.view.Tasks[0].Completed {
		t.Fatalf("expected task active again")
	}
	m = send(m, typed("d"))
	if len(m.rend.view.Tasks) != 0 {
		t.Fatalf("expected task removed; got %v", texts(m))
	}
	if m.focus != focusInput {
		t.Fatalf("expected focus back on input once the list is empty; got %v", m.focus)
	}
}

func TestApp_EditCommitReplacesSelectedText(t *testing.T) {
	m, _ := newTestApp(t)
	m = addTasks(m, "Buy milk")
	m = send(m, keyTab, keyEnter)
	if m.focus != focusEdit || !m.editor.active || !m.editor.selectAll {
		t.Fatalf("expected editor open with text selected; focus=%v active=%v", m.focus, m.editor.active)
	}
	m = send(m, typed("Buy oat milk"), keyEnter)
	if got := texts(m); got[0] != "Buy oat milk" {
		t.Fatalf("expected edited text; got %v", got)
	}
	if m.focus != focusList || m.editor.active {
		t.Fatalf("expected editor closed; focus=%v", m.focus)
	}
}

func TestApp_EditCancelKeepsText(t *testing.T) {
	m, kv := newTestApp(t)
	m = addTasks(m, "Buy milk")
	before, _, _ := kv.Get(context.Background(), store.DefaultKey)
	m = send(m, keyTab, keyEnter, typed("nope"), keyEsc)
	if got := texts(m); got[0] != "Buy milk" {
		t.Fatalf("expected text unchanged; got %v", got)
	}
	after, _, _ := kv.Get(context.Background(), store.DefaultKey)
	if before != after {
		t.Fatalf("expected cancel not to persist")
	}
}

func TestApp_BlurCommitsEdit(t *testing.T) {
	m, _ := newTestApp(t)
	m = addTasks(m, "Buy milk")
	m = send(m, keyTab, keyEnter, typed("Walk dog"), tea.BlurMsg{})
	if got := texts(m); got[0] != "Walk dog" {
		t.Fatalf("expected blur to commit; got %v", got)
	}
}

func TestApp_EmptyEditRemovesTask(t *testing.T) {
	m, _ := newTestApp(t)
	m = addTasks(m, "Buy milk", "Walk dog")
	m = send(m, keyTab, keyEnter, tea.KeyMsg{Type: tea.KeyBackspace}, keyEnter)
	if got := texts(m); len(got) != 1 || got[0] != "Buy milk" {
		t.Fatalf("expected edited task removed; got %v", got)
	}
}

func TestApp_EditCursorKeysKeepText(t *testing.T) {
	m, _ := newTestApp(t)
	m = addTasks(m, "Buy milk")
	m = send(m, keyTab, keyEnter, tea.KeyMsg{Type: tea.KeyEnd}, typed("s"), keyEnter)
	if got := texts(m); got[0] != "Buy milks" {
		t.Fatalf("expected appended text; got %v", got)
	}
}

func TestApp_FilterKeys(t *testing.T) {
	m, _ := newTestApp(t)
	m = addTasks(m, "Buy milk", "Walk dog")
	m = send(m, keyTab, keySpace) // completes "Walk dog"

	m = send(m, typed("2"))
	if m.rend.view.Filter != model.FilterActive || len(m.rend.view.Tasks) != 1 || m.rend.view.Tasks[0].Text != "Buy milk" {
		t.Fatalf("expected only active tasks; got %+v", m.rend.view)
	}
	m = send(m, typed("3"))
	if len(m.rend.view.Tasks) != 1 || m.rend.view.Tasks[0].Text != "Walk dog" {
		t.Fatalf("expected only completed tasks; got %v", texts(m))
	}
	if m.rend.view.Remaining != 1 {
		t.Fatalf("expected remaining to ignore the filter; got %d", m.rend.view.Remaining)
	}
	m = send(m, typed("f"))
	if m.rend.view.Filter != model.FilterAll {
		t.Fatalf("expected filter to cycle back to all; got %q", m.rend.view.Filter)
	}
}

func TestApp_ClearCompleted(t *testing.T) {
	m, _ := newTestApp(t)
	m = addTasks(m, "Buy milk", "Walk dog")
	m = send(m, keyTab, keySpace, typed("C"))
	if got := texts(m); len(got) != 1 || got[0] != "Buy milk" {
		t.Fatalf("expected completed task cleared; got %v", got)
	}
}

func TestApp_PersistFailureShowsStatus(t *testing.T) {
	m, kv := newTestApp(t)
	kv.SetErr = errors.New("disk full")
	m = addTasks(m, "Buy milk")
	if got := texts(m); len(got) != 1 {
		t.Fatalf("expected in-memory task to render; got %v", got)
	}
	if !m.statusErr || !strings.Contains(m.status, "disk full") {
		t.Fatalf("expected error status; got %q", m.status)
	}

	kv.SetErr = nil
	m = send(m, keyTab, keySpace)
	if m.status != "" {
		t.Fatalf("expected status cleared after a successful save; got %q", m.status)
	}
}

func TestApp_MouseToggleRemoveAndFooter(t *testing.T) {
	m, _ := newTestApp(t)
	m = addTasks(m, "Buy milk", "Walk dog")

	m = send(m, click(1, layoutListY+1))
	if !m.rend.view.Tasks[1].Completed {
		t.Fatalf("expected click on box to toggle second row; got %+v", m.rend.view.Tasks)
	}

	_, hits := footerLayout(m.rend.view)
	var clear *footerHit
	for i := range hits {
		if hits[i].clear {
			clear = &hits[i]
		}
	}
	if clear == nil {
		t.Fatalf("expected clear completed link when a task is completed")
	}
	m = send(m, click(clear.x0, m.footerY()))
	if got := texts(m); len(got) != 1 || got[0] != "Walk dog" {
		t.Fatalf("expected footer click to clear completed; got %v", got)
	}

	m = send(m, click(m.list.Width()-1, layoutListY))
	if len(m.rend.view.Tasks) != 0 {
		t.Fatalf("expected click on remove glyph to delete; got %v", texts(m))
	}
}

func TestApp_DoubleClickEdits(t *testing.T) {
	m, _ := newTestApp(t)
	m = addTasks(m, "Buy milk")
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m = send(m, click(10, layoutListY))
	if m.focus != focusList {
		t.Fatalf("expected single click to select the row; got %v", m.focus)
	}
	now = now.Add(200 * time.Millisecond)
	m = send(m, click(10, layoutListY))
	if m.focus != focusEdit || m.editor.taskID != m.rend.view.Tasks[0].ID {
		t.Fatalf("expected double click to open the editor; focus=%v", m.focus)
	}

	// A click elsewhere is a focus loss and commits.
	m = send(m, typed("Walk dog"), click(0, layoutInputY))
	if got := texts(m); got[0] != "Walk dog" {
		t.Fatalf("expected click-away to commit; got %v", got)
	}
}

func TestFooterLayout_FilterHits(t *testing.T) {
	line, hits := footerLayout(mutate.View{Filter: model.FilterActive, Remaining: 2, Total: 2})
	if !strings.Contains(xansi.Strip(line), "2 items left") {
		t.Fatalf("expected count in footer; got %q", xansi.Strip(line))
	}
	if len(hits) != 3 {
		t.Fatalf("expected a hit per filter and no clear link; got %d", len(hits))
	}
	for i, f := range model.Filters() {
		if hits[i].filter != f || hits[i].x1 <= hits[i].x0 {
			t.Fatalf("unexpected hit %d: %+v", i, hits[i])
		}
	}
}
