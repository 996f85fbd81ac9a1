package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"todo-cli/internal/model"
)

// WriteTasksJSONL writes one task per line.
func WriteTasksJSONL(path string, tasks []model.Task) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	for _, t := range tasks {
		if err := enc.Encode(t); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadTasksJSONL reads tasks from a JSONL file. Blank lines are skipped.
func ReadTasksJSONL(path string) ([]model.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []model.Task
	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var t model.Task
		if err := json.Unmarshal([]byte(line), &t); err != nil {
			return nil, fmt.Errorf("parse tasks jsonl line %d: %w", n, err)
		}
		out = append(out, t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Task{}
	}
	return out, nil
}

// Import merges tasks into the list (or replaces it) and persists once. Texts are
// trimmed, blank tasks are skipped, and missing or colliding ids are regenerated.
// Imported tasks keep their order and go after the existing ones. The list is left
// untouched when an id cannot be generated.
func (s *Store) Import(ctx context.Context, tasks []model.Task, replace bool) (int, error) {
	next := []model.Task{}
	if !replace {
		next = append(next, s.tasks...)
	}
	seen := make(map[string]bool, len(next)+len(tasks))
	for _, t := range next {
		seen[t.ID] = true
	}
	taken := func(id string) bool { return seen[id] || s.indexOf(id) >= 0 }

	added := 0
	for _, t := range tasks {
		t.Text = model.NormalizeText(t.Text)
		if t.Text == "" {
			continue
		}
		t.ID = strings.TrimSpace(t.ID)
		if t.ID == "" || seen[t.ID] {
			id, err := s.uniqueID(taken)
			if err != nil {
				return 0, err
			}
			t.ID = id
		}
		seen[t.ID] = true
		next = append(next, t)
		added++
	}
	s.tasks = next
	return added, s.Save(ctx)
}
