package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"todo-cli/internal/model"
)

const defaultFileName = "todo.md"

type WriteOptions struct {
	Title     string
	Filter    model.Filter
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written" yaml:"written"`
}

// Write renders tasks to markdown at to. When to is an existing directory the file is
// named todo.md inside it.
func Write(tasks []model.Task, to string, opt WriteOptions) (WriteResult, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	to = filepath.Clean(to)
	if st, err := os.Stat(to); err == nil && st.IsDir() {
		to = filepath.Join(to, defaultFileName)
	}
	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return WriteResult{}, err
	}

	md := RenderChecklist(tasks, RenderOptions{Title: opt.Title, Filter: opt.Filter})
	if err := writeFile(to, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{to}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
