package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// KV is the flat local key-value storage the task list is persisted into.
type KV interface {
	// Get returns ok=false when the key has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Backends lists the supported storage backends; the first one is the default.
func Backends() []string {
	return []string{BackendSQLite, BackendFile, BackendMemory}
}

// OpenKV opens the storage backend rooted at dir.
func OpenKV(ctx context.Context, backend, dir string) (KV, error) {
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend == "" {
		backend = BackendSQLite
	}
	switch backend {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendFile:
		if strings.TrimSpace(dir) == "" {
			return nil, fmt.Errorf("file backend: missing dir")
		}
		return NewFileKV(filepath.Join(dir, fileKVName)), nil
	case BackendSQLite:
		if strings.TrimSpace(dir) == "" {
			return nil, fmt.Errorf("sqlite backend: missing dir")
		}
		return OpenSQLiteKV(ctx, filepath.Join(dir, sqliteKVName))
	default:
		return nil, fmt.Errorf("unknown storage backend: %q (expected %s)", backend, strings.Join(Backends(), "|"))
	}
}

// MemoryKV keeps values in process memory. SetErr, when non-nil, is returned by every Set.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
	SetErr error
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Close() error { return nil }
