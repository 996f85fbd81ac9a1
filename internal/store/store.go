package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"todo-cli/internal/model"
)

// DefaultKey is the storage key the task list is persisted under.
const DefaultKey = "todo_v1"

const maxIDAttempts = 8

// Store owns the canonical, ordered (newest first) task list and persists it into a KV.
//
// Store is not safe for concurrent use; callers serialize access (see mutate.Controller).
type Store struct {
	kv    KV
	key   string
	newID func() (string, error)
	tasks []model.Task
}

type Option func(*Store)

// WithKey overrides the persistence key.
func WithKey(key string) Option {
	return func(s *Store) {
		if strings.TrimSpace(key) != "" {
			s.key = key
		}
	}
}

// WithIDGenerator replaces the id generator (tests use deterministic ids).
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		key:   DefaultKey,
		newID: newTaskID,
		tasks: []model.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Key() string { return s.key }

// Load replaces the in-memory list with the persisted one. A missing key, a read
// failure or malformed content all yield an empty list.
func (s *Store) Load(ctx context.Context) {
	s.tasks = []model.Task{}
	if s.kv == nil {
		return
	}
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil || !ok {
		return
	}
	tasks, err := decodeTasks(raw)
	if err != nil {
		return
	}
	s.tasks = tasks
}

// SaveError reports a failed write of the list. The in-memory list already holds the change.
type SaveError struct {
	Key string
	Err error
}

func (e *SaveError) Error() string { return fmt.Sprintf("save %s: %v", e.Key, e.Err) }

func (e *SaveError) Unwrap() error { return e.Err }

// Save writes the current list under the persistence key. Failures are *SaveError.
func (s *Store) Save(ctx context.Context) error {
	if s.kv == nil {
		return &SaveError{Key: s.key, Err: errors.New("no storage configured")}
	}
	raw, err := encodeTasks(s.tasks)
	if err != nil {
		return &SaveError{Key: s.key, Err: err}
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return &SaveError{Key: s.key, Err: err}
	}
	return nil
}

// Reset empties the in-memory list without persisting.
func (s *Store) Reset() {
	s.tasks = []model.Task{}
}

// Tasks returns a copy of the list in stored order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) Find(id string) (model.Task, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

// Add prepends a new active task. Text that is empty after trimming is rejected:
// the returned task is nil and nothing is persisted.
func (s *Store) Add(ctx context.Context, text string) (*model.Task, error) {
	text = model.NormalizeText(text)
	if text == "" {
		return nil, nil
	}
	id, err := s.nextID()
	if err != nil {
		return nil, err
	}
	t := model.Task{ID: id, Text: text}
	s.tasks = append([]model.Task{t}, s.tasks...)
	return &t, s.Save(ctx)
}

// ToggleComplete flips the completion flag of the task with id (no change if unknown).
func (s *Store) ToggleComplete(ctx context.Context, id string) error {
	if i := s.indexOf(id); i >= 0 {
		s.tasks[i].Completed = !s.tasks[i].Completed
	}
	return s.Save(ctx)
}

// Remove deletes the task with id (no change if unknown).
func (s *Store) Remove(ctx context.Context, id string) error {
	s.removeAt(s.indexOf(id))
	return s.Save(ctx)
}

// EditText replaces the task's text, or removes the task when text is empty after trimming.
func (s *Store) EditText(ctx context.Context, id, text string) error {
	i := s.indexOf(id)
	if text = model.NormalizeText(text); text == "" {
		s.removeAt(i)
	} else if i >= 0 {
		s.tasks[i].Text = text
	}
	return s.Save(ctx)
}

// ClearCompleted removes every completed task, keeping the relative order of the rest.
func (s *Store) ClearCompleted(ctx context.Context) error {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return s.Save(ctx)
}

type AmbiguousIDError struct {
	Prefix  string
	Matches []string
}

func (e AmbiguousIDError) Error() string {
	return fmt.Sprintf("ambiguous task id %q matches %d tasks", e.Prefix, len(e.Matches))
}

// Resolve maps an exact id or a unique id prefix to a task id. Unknown ids resolve
// to themselves so the mutation stays a no-op.
func (s *Store) Resolve(idOrPrefix string) (string, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" || s.indexOf(idOrPrefix) >= 0 {
		return idOrPrefix, nil
	}
	var matches []string
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, idOrPrefix) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return idOrPrefix, nil
	case 1:
		return matches[0], nil
	default:
		return "", AmbiguousIDError{Prefix: idOrPrefix, Matches: matches}
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int) {
	if i < 0 || i >= len(s.tasks) {
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
}

func (s *Store) nextID() (string, error) {
	return s.uniqueID(func(id string) bool { return s.indexOf(id) >= 0 })
}

func (s *Store) uniqueID(taken func(string) bool) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", err
		}
		if id != "" && !taken(id) {
			return id, nil
		}
	}
	return "", errors.New("could not generate a unique task id")
}

func encodeTasks(tasks []model.Task) (string, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeTasks(raw string) ([]model.Task, error) {
	if strings.TrimSpace(raw) == "" {
		return []model.Task{}, nil
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}
