package configinfra

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	configdomain "kw3c.dev/cli/internal/core/domain/config"
	"kw3c.dev/cli/internal/core/domain/toolpath"
	configports "kw3c.dev/cli/internal/core/ports/config"
	"kw3c.dev/cli/internal/infrastructure/i18n"
	"kw3c.dev/cli/internal/infrastructure/logging"
)

// FieldError reports an invalid value together with where it came from.
type FieldError struct {
	Field  string
	Source string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s (from %s): %v", e.Field, e.Source, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ConfigValidator validates configuration values
type ConfigValidator struct{}

// NewConfigValidator creates a new configuration validator
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateInstallRoot requires a non-empty absolute path
func (v *ConfigValidator) ValidateInstallRoot(root string) error {
	_, err := toolpath.NewInstallationRoot(root)
	return err
}

// ValidateToolPath requires at least one segment and no empty ones
func (v *ConfigValidator) ValidateToolPath(segments []string) error {
	_, err := toolpath.SplitSegments(segments)
	return err
}

// ValidateBundle requires a bare bundle name
func (v *ConfigValidator) ValidateBundle(bundle string) error {
	if strings.TrimSpace(bundle) == "" {
		return fmt.Errorf("bundle name cannot be empty")
	}
	if strings.ContainsAny(bundle, `/\`) {
		return fmt.Errorf("bundle name %q must not contain path separators", bundle)
	}
	return nil
}

// ValidateBundleDir accepts "" (use embedded bundles) or an existing directory
func (v *ConfigValidator) ValidateBundleDir(dir string) error {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(filepath.Clean(dir))
	if err != nil {
		return fmt.Errorf("bundle directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("bundle directory %s is not a directory", dir)
	}
	return nil
}

// ValidateLocale accepts what the catalog accepts: a BCP 47 tag ("ko-KR"), a
// POSIX value ("ko_KR.UTF-8") or a comma separated preference list ("ko,en").
// At least one entry must be usable.
func (v *ConfigValidator) ValidateLocale(locale string) error {
	if strings.TrimSpace(locale) == "" {
		return fmt.Errorf("locale cannot be empty")
	}
	if len(i18n.ParseLocales(locale)) == 0 {
		return fmt.Errorf("invalid locale %q: no recognizable language tag", locale)
	}
	return nil
}

// ValidateLogLevel validates log level value
func (v *ConfigValidator) ValidateLogLevel(level string) error {
	_, err := logging.ParseLevel(level)
	return err
}

// Validate implements configports.Validator. Every invalid field is reported.
func (v *ConfigValidator) Validate(snap configdomain.Snapshot) error {
	s := configdomain.SettingsFrom(snap)
	checks := []struct {
		field string
		err   error
	}{
		{configdomain.FieldInstallRoot, v.ValidateInstallRoot(s.InstallRoot)},
		{configdomain.FieldToolPath, v.ValidateToolPath(s.ToolPath)},
		{configdomain.FieldBundle, v.ValidateBundle(s.Bundle)},
		{configdomain.FieldBundleDir, v.ValidateBundleDir(s.BundleDir)},
		{configdomain.FieldLocale, v.ValidateLocale(s.Locale)},
		{configdomain.FieldLogLevel, v.ValidateLogLevel(s.LogLevel)},
	}

	var errs []error
	for _, c := range checks {
		if c.err != nil {
			errs = append(errs, &FieldError{Field: c.field, Source: snap[c.field].Source, Err: c.err})
		}
	}
	return errors.Join(errs...)
}

var _ configports.Validator = (*ConfigValidator)(nil)
