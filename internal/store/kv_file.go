package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const fileKVName = "storage.json"

// FileKV stores all keys in one JSON object on disk. Writes replace the file atomically.
type FileKV struct {
	path string
}

func NewFileKV(path string) *FileKV {
	return &FileKV{path: filepath.Clean(path)}
}

func (f *FileKV) Path() string { return f.path }

func (f *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileKV) Set(_ context.Context, key, value string) error {
	values, err := f.read()
	if err != nil {
		// A corrupt file only loses the other keys; the key being written wins.
		values = map[string]string{}
	}
	values[key] = value
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(dir, ".storage-*.tmp", f.path, append(b, '\n'), 0o644)
}

func (f *FileKV) Close() error { return nil }

func (f *FileKV) read() (map[string]string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	values := map[string]string{}
	if len(b) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, err
	}
	if values == nil {
		// A literal null decodes without error.
		values = map[string]string{}
	}
	return values, nil
}
