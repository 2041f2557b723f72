package configinfra

import (
	"context"
	"os"
	"strings"

	configdomain "kw3c.dev/cli/internal/core/domain/config"
	configports "kw3c.dev/cli/internal/core/ports/config"
)

// Environment variables read by EnvLoader.
const (
	EnvInstallRoot = "KW3C_INSTALL_ROOT"
	EnvToolPath    = "KW3C_TOOL_PATH"
	EnvBundle      = "KW3C_BUNDLE"
	EnvBundleDir   = "KW3C_BUNDLE_DIR"
	EnvLocale      = "KW3C_LOCALE"
	EnvLogLevel    = "KW3C_LOG_LEVEL"
	EnvConfigFile  = "KW3C_CONFIG" // read by FileLoader when --config is not given
)

type EnvLoader struct {
	getenv func(string) string
}

func NewEnvLoader() *EnvLoader { return &EnvLoader{getenv: os.Getenv} }

func (l *EnvLoader) Name() string { return "env" }

// Load implements Loader by returning the environment snapshot.
func (l *EnvLoader) Load(ctx context.Context) (configdomain.Snapshot, error) {
	return l.LoadEnv(), nil
}

// LoadEnv builds a snapshot from KW3C_* environment variables (priority 2).
func (l *EnvLoader) LoadEnv() configdomain.Snapshot {
	snap := make(configdomain.Snapshot)
	add := func(key, field string, convert func(string) interface{}) {
		if v := strings.TrimSpace(l.getenv(key)); v != "" {
			val := interface{}(v)
			if convert != nil {
				val = convert(v)
			}
			snap[field] = configdomain.Entry{Key: field, Value: val, Source: "env", SourcePath: key, Priority: configdomain.PriorityEnv}
		}
	}

	add(EnvInstallRoot, configdomain.FieldInstallRoot, nil)
	add(EnvToolPath, configdomain.FieldToolPath, func(s string) interface{} { return splitToolPath(s) })
	add(EnvBundle, configdomain.FieldBundle, nil)
	add(EnvBundleDir, configdomain.FieldBundleDir, nil)
	add(EnvLocale, configdomain.FieldLocale, nil)
	add(EnvLogLevel, configdomain.FieldLogLevel, nil)

	return snap
}

// splitToolPath splits on the OS list separator. Each part may still contain
// '/' separators, which path resolution handles.
func splitToolPath(s string) []string {
	parts := strings.Split(s, string(os.PathListSeparator))
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

var _ configports.Loader = (*EnvLoader)(nil)
