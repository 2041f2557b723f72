package configdomain

import (
	"fmt"
	"sort"
	"strings"
)

// Field names shared by every loader.
const (
	FieldInstallRoot = "install_root"
	FieldToolPath    = "tool_path"
	FieldBundle      = "bundle"
	FieldBundleDir   = "bundle_dir"
	FieldLocale      = "locale"
	FieldLogLevel    = "log_level"
)

// Priorities, lower wins.
const (
	PriorityFlag    = 1
	PriorityEnv     = 2
	PriorityFile    = 3
	PriorityDefault = 10
)

// Entry represents a single configuration value with provenance and priority.
type Entry struct {
	Key        string
	Value      interface{}
	Source     string
	SourcePath string
	Priority   int
}

// Snapshot is a collection of config entries keyed by field name.
type Snapshot map[string]Entry

// Merge merges another snapshot into this one respecting priority
// (lower number indicates higher priority).
func (s Snapshot) Merge(other Snapshot) {
	for k, e := range other {
		if existing, ok := s[k]; !ok || e.Priority <= existing.Priority {
			s[k] = e
		}
	}
}

// String returns the string value of field, or "" when unset or not a string.
func (s Snapshot) String(field string) string {
	if e, ok := s[field]; ok {
		if v, ok := e.Value.(string); ok {
			return v
		}
	}
	return ""
}

// Strings returns the string slice value of field.
func (s Snapshot) Strings(field string) []string {
	e, ok := s[field]
	if !ok {
		return nil
	}
	switch v := e.Value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		return []string{v}
	}
	return nil
}

// Fields returns the populated field names, sorted
func (s Snapshot) Fields() []string {
	fields := make([]string, 0, len(s))
	for k := range s {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// Settings is the typed view of a merged snapshot.
type Settings struct {
	InstallRoot string
	ToolPath    []string
	Bundle      string
	BundleDir   string
	Locale      string
	LogLevel    string
}

// SettingsFrom extracts typed settings from a merged snapshot.
func SettingsFrom(s Snapshot) Settings {
	return Settings{
		InstallRoot: strings.TrimSpace(s.String(FieldInstallRoot)),
		ToolPath:    s.Strings(FieldToolPath),
		Bundle:      strings.TrimSpace(s.String(FieldBundle)),
		BundleDir:   strings.TrimSpace(s.String(FieldBundleDir)),
		Locale:      strings.TrimSpace(s.String(FieldLocale)),
		LogLevel:    strings.ToLower(strings.TrimSpace(s.String(FieldLogLevel))),
	}
}
