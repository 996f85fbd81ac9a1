package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	configFileName   = "config.toml"
	DefaultWorkspace = "default"
)

// Config is the user configuration stored at <config dir>/config.toml.
type Config struct {
	// Backend is the storage backend (sqlite|file|memory).
	Backend string `toml:"backend,omitempty"`

	// Workspace selects the current workspace when --workspace is not passed.
	Workspace string `toml:"workspace,omitempty"`

	TUI TUIConfig `toml:"tui"`
	Log LogConfig `toml:"log"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set (unicode|ascii).
	Glyphs string `toml:"glyphs,omitempty"`
	// DisableMouse turns off mouse reporting in the TUI.
	DisableMouse bool `toml:"disable_mouse,omitempty"`
}

type LogConfig struct {
	// File enables logging to the given path. Empty disables logging.
	File  string `toml:"file,omitempty"`
	Level string `toml:"level,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.todo).
	if v := strings.TrimSpace(os.Getenv("TODO_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todo"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadConfig reads the config file. A missing file yields the zero Config.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if _, err := toml.Decode(string(b), &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if b := strings.TrimSpace(c.Backend); b != "" {
		ok := false
		for _, known := range Backends() {
			if strings.EqualFold(b, known) {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("unknown backend %q", c.Backend)
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.TUI.Glyphs)) {
	case "", "unicode", "utf8", "ascii":
	default:
		return fmt.Errorf("unknown glyphs %q", c.TUI.Glyphs)
	}
	return nil
}

func SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.toml.*.tmp", path, buf.Bytes(), 0o600)
}

func NormalizeWorkspaceName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("workspace name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid workspace name: %q", name)
	}
	return name, nil
}

// WorkspaceDir is the storage root for a named workspace.
func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

// ListWorkspaces returns the names of workspaces that exist on disk, sorted.
func ListWorkspaces() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	out := []string{}
	ents, err := os.ReadDir(filepath.Join(dir, "workspaces"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return nil, err
	}
	for _, e := range ents {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
