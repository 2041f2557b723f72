package configinfra

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	configdomain "kw3c.dev/cli/internal/core/domain/config"
	configports "kw3c.dev/cli/internal/core/ports/config"
)

// fileConfig maps config.toml keys.
type fileConfig struct {
	InstallRoot string      `toml:"install_root"`
	ToolPath    interface{} `toml:"tool_path"`
	Bundle      string      `toml:"bundle"`
	BundleDir   string      `toml:"bundle_dir"`
	Locale      string      `toml:"locale"`
	LogLevel    string      `toml:"log_level"`
}

// FileLoader reads a TOML config file (priority 3). Relative install_root and
// bundle_dir values are taken relative to the file's directory.
type FileLoader struct {
	path     string
	explicit bool
}

// NewFileLoader reads path. When path is empty, $KW3C_CONFIG is used, then
// DefaultConfigPath(). A missing default file is not an error; a missing
// explicit one is.
func NewFileLoader(path string) *FileLoader {
	return newFileLoader(path, os.Getenv)
}

func newFileLoader(path string, getenv func(string) string) *FileLoader {
	if p := strings.TrimSpace(path); p != "" {
		return &FileLoader{path: p, explicit: true}
	}
	if p := strings.TrimSpace(getenv(EnvConfigFile)); p != "" {
		return &FileLoader{path: p, explicit: true}
	}
	return &FileLoader{path: DefaultConfigPath(getenv)}
}

func (l *FileLoader) Name() string { return "file" }

// Path returns the file the loader reads, which may not exist
func (l *FileLoader) Path() string { return l.path }

func (l *FileLoader) Load(ctx context.Context) (configdomain.Snapshot, error) {
	snap := make(configdomain.Snapshot)
	if l.path == "" {
		return snap, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(l.path, &raw)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !l.explicit {
			return snap, nil
		}
		return nil, fmt.Errorf("load config file %s: %w", l.path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load config file %s: unknown key %q", l.path, undecoded[0].String())
	}

	add := func(field string, v interface{}) {
		snap[field] = configdomain.Entry{Key: field, Value: v, Source: "file", SourcePath: l.path, Priority: configdomain.PriorityFile}
	}
	dir := filepath.Dir(l.path)

	if meta.IsDefined("install_root") {
		add(configdomain.FieldInstallRoot, relativeTo(dir, raw.InstallRoot))
	}
	if meta.IsDefined("tool_path") {
		segments, err := toolPathValue(raw.ToolPath)
		if err != nil {
			return nil, fmt.Errorf("load config file %s: %w", l.path, err)
		}
		add(configdomain.FieldToolPath, segments)
	}
	if meta.IsDefined("bundle") {
		add(configdomain.FieldBundle, strings.TrimSpace(raw.Bundle))
	}
	if meta.IsDefined("bundle_dir") {
		add(configdomain.FieldBundleDir, relativeTo(dir, raw.BundleDir))
	}
	if meta.IsDefined("locale") {
		add(configdomain.FieldLocale, strings.TrimSpace(raw.Locale))
	}
	if meta.IsDefined("log_level") {
		add(configdomain.FieldLogLevel, strings.TrimSpace(raw.LogLevel))
	}

	return snap, nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/kw3c/config.toml, falling back
// to ~/.config/kw3c/config.toml. It returns "" when neither can be determined.
func DefaultConfigPath(getenv func(string) string) string {
	if dir := strings.TrimSpace(getenv("XDG_CONFIG_HOME")); dir != "" {
		return filepath.Join(dir, "kw3c", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "kw3c", "config.toml")
}

// tool_path may be written as one string ("KW3CValidator/KW3C.exe") or an array.
func toolPathValue(v interface{}) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{strings.TrimSpace(t)}, nil
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("tool_path entries must be strings, got %T", item)
			}
			out = append(out, strings.TrimSpace(s))
		}
		return out, nil
	}
	return nil, fmt.Errorf("tool_path must be a string or an array of strings, got %T", v)
}

func relativeTo(dir, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

var _ configports.Loader = (*FileLoader)(nil)
