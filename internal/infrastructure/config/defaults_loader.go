package configinfra

import (
	"context"
	"os"
	"path/filepath"

	configdomain "kw3c.dev/cli/internal/core/domain/config"
	"kw3c.dev/cli/internal/core/domain/messages"
	"kw3c.dev/cli/internal/core/domain/toolpath"
	configports "kw3c.dev/cli/internal/core/ports/config"
	"kw3c.dev/cli/internal/infrastructure/i18n"
)

// DefaultLocale is used when the environment names no usable locale
const DefaultLocale = "en"

// DefaultsLoader supplies built-in values (priority 10).
type DefaultsLoader struct {
	executable func() (string, error)
	getenv     func(string) string
}

func NewDefaultsLoader() *DefaultsLoader {
	return &DefaultsLoader{executable: os.Executable, getenv: os.Getenv}
}

func (l *DefaultsLoader) Name() string { return "default" }

// Load implements Loader. The installation root defaults to the directory of
// the running executable; it is left unset when that cannot be determined.
func (l *DefaultsLoader) Load(ctx context.Context) (configdomain.Snapshot, error) {
	snap := make(configdomain.Snapshot)
	add := func(field, sourcePath string, v interface{}) {
		snap[field] = configdomain.Entry{Key: field, Value: v, Source: "default", SourcePath: sourcePath, Priority: configdomain.PriorityDefault}
	}

	if root, ok := l.executableDir(); ok {
		add(configdomain.FieldInstallRoot, "executable", root)
	}
	add(configdomain.FieldToolPath, "builtin", append([]string(nil), toolpath.DefaultValidatorSegments...))
	add(configdomain.FieldBundle, "builtin", messages.DefaultBundle)
	add(configdomain.FieldLogLevel, "builtin", "info")

	if locale := i18n.LocaleFromEnv(l.getenv); locale != "" {
		add(configdomain.FieldLocale, "LANG", locale)
	} else {
		add(configdomain.FieldLocale, "builtin", DefaultLocale)
	}

	return snap, nil
}

func (l *DefaultsLoader) executableDir() (string, bool) {
	exe, err := l.executable()
	if err != nil || exe == "" {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), true
}

var _ configports.Loader = (*DefaultsLoader)(nil)
