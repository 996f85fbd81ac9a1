package mutate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"todo-cli/internal/model"
	"todo-cli/internal/store"
)

// Kind names a user command.
type Kind string

const (
	KindAdd            Kind = "add"
	KindToggle         Kind = "toggle"
	KindRemove         Kind = "remove"
	KindEdit           Kind = "edit"
	KindFilter         Kind = "filter"
	KindClearCompleted Kind = "clear-completed"
)

// Command is one user input event translated into an intent.
type Command struct {
	Kind   Kind
	ID     string
	Text   string
	Filter model.Filter
}

func Add(text string) Command { return Command{Kind: KindAdd, Text: text} }
func Toggle(id string) Command { return Command{Kind: KindToggle, ID: id} }
func Remove(id string) Command { return Command{Kind: KindRemove, ID: id} }
func Edit(id, text string) Command { return Command{Kind: KindEdit, ID: id, Text: text} }
func SetFilter(f model.Filter) Command { return Command{Kind: KindFilter, Filter: f} }
func ClearCompleted() Command { return Command{Kind: KindClearCompleted} }

// View is the render input: the filtered tasks plus counts over the whole list.
type View struct {
	Filter    model.Filter `json:"filter" yaml:"filter"`
	Tasks     []model.Task `json:"tasks" yaml:"tasks"`
	Remaining int          `json:"remaining" yaml:"remaining"`
	Completed int          `json:"completed" yaml:"completed"`
	Total     int          `json:"total" yaml:"total"`
}

// Result reports what a command did.
type Result struct {
	Command Command
	// Task is the affected task after the command, when it still exists.
	Task *model.Task
	// Changed is false for no-ops (blank add, unknown id, same filter).
	Changed bool
}

type handler func(ctx context.Context, c *Controller, cmd Command) (Result, error)

var handlers = map[Kind]handler{
	KindAdd:            handleAdd,
	KindToggle:         handleToggle,
	KindRemove:         handleRemove,
	KindEdit:           handleEdit,
	KindFilter:         handleFilter,
	KindClearCompleted: handleClearCompleted,
}

// Controller routes commands to Store mutations and notifies the renderer afterwards.
// Dispatch calls are serialized; each command (mutation, persist, render) completes
// before the next one starts.
type Controller struct {
	mu       sync.Mutex
	store    *store.Store
	selector *model.Selector
	render   func(View)
	logger   *slog.Logger
}

type Option func(*Controller)

// WithRenderer registers the hook invoked after every command.
func WithRenderer(fn func(View)) Option {
	return func(c *Controller) { c.render = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewController(st *store.Store, sel *model.Selector, opts ...Option) *Controller {
	if sel == nil {
		sel = &model.Selector{}
	}
	c := &Controller{
		store:    st,
		selector: sel,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dispatch applies cmd. Persist failures are logged and returned as PersistError; the
// render hook still runs so the view matches the in-memory list. Failures before any
// mutation (such as id generation) are returned as is.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	h, ok := handlers[cmd.Kind]
	if !ok {
		return Result{Command: cmd}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
	}

	c.mu.Lock()
	res, err := h(ctx, c, cmd)
	res.Command = cmd
	view := c.viewLocked()
	render := c.render
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("command failed", "kind", cmd.Kind, "id", cmd.ID, "err", err)
		var se *store.SaveError
		if errors.As(err, &se) {
			err = PersistError{Kind: cmd.Kind, Err: err}
		}
	} else {
		c.logger.Debug("command applied", "kind", cmd.Kind, "id", cmd.ID, "changed", res.Changed, "remaining", view.Remaining)
	}
	if render != nil {
		render(view)
	}
	return res, err
}

// View returns the current render input.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) Filter() model.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selector.Current()
}

// Render pushes the current view to the render hook without mutating anything.
func (c *Controller) Render() {
	v := c.View()
	if c.render != nil {
		c.render(v)
	}
}

func (c *Controller) viewLocked() View {
	all := c.store.Tasks()
	f := c.selector.Current()
	remaining := model.Remaining(all)
	return View{
		Filter:    f,
		Tasks:     model.Visible(all, f),
		Remaining: remaining,
		Completed: len(all) - remaining,
		Total:     len(all),
	}
}

func (c *Controller) taskResult(id string, changed bool) Result {
	if t, ok := c.store.Find(id); ok {
		return Result{Task: &t, Changed: changed}
	}
	return Result{Changed: changed}
}

func handleAdd(ctx context.Context, c *Controller, cmd Command) (Result, error) {
	t, err := c.store.Add(ctx, cmd.Text)
	if t == nil {
		return Result{}, err
	}
	return Result{Task: t, Changed: true}, err
}

func handleToggle(ctx context.Context, c *Controller, cmd Command) (Result, error) {
	_, existed := c.store.Find(cmd.ID)
	err := c.store.ToggleComplete(ctx, cmd.ID)
	return c.taskResult(cmd.ID, existed), err
}

func handleRemove(ctx context.Context, c *Controller, cmd Command) (Result, error) {
	_, existed := c.store.Find(cmd.ID)
	err := c.store.Remove(ctx, cmd.ID)
	return Result{Changed: existed}, err
}

func handleEdit(ctx context.Context, c *Controller, cmd Command) (Result, error) {
	before, existed := c.store.Find(cmd.ID)
	err := c.store.EditText(ctx, cmd.ID, cmd.Text)
	res := c.taskResult(cmd.ID, false)
	switch {
	case !existed:
	case res.Task == nil:
		res.Changed = true
	default:
		res.Changed = res.Task.Text != before.Text
	}
	return res, err
}

func handleFilter(_ context.Context, c *Controller, cmd Command) (Result, error) {
	prev := c.selector.Current()
	c.selector.Set(cmd.Filter)
	return Result{Changed: prev != c.selector.Current()}, nil
}

func handleClearCompleted(ctx context.Context, c *Controller, _ Command) (Result, error) {
	before := c.store.Len()
	err := c.store.ClearCompleted(ctx)
	return Result{Changed: c.store.Len() != before}, err
}
