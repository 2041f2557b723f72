package configinfra

import (
	"context"
	"fmt"

	configdomain "kw3c.dev/cli/internal/core/domain/config"
	configports "kw3c.dev/cli/internal/core/ports/config"
)

// CompositeConfigRepository merges the snapshots of several loaders by
// priority and validates the result.
type CompositeConfigRepository struct {
	loaders   []configports.Loader
	validator configports.Validator
}

// NewCompositeConfigRepository creates a repository over loaders. A nil
// validator skips validation.
func NewCompositeConfigRepository(validator configports.Validator, loaders ...configports.Loader) *CompositeConfigRepository {
	return &CompositeConfigRepository{loaders: loaders, validator: validator}
}

// NewDefaultRepository wires flags, environment, config file and defaults.
func NewDefaultRepository(configPath string, overrides map[string]interface{}) *CompositeConfigRepository {
	return NewCompositeConfigRepository(
		NewConfigValidator(),
		NewDefaultsLoader(),
		NewFileLoader(configPath),
		NewEnvLoader(),
		NewOverridesLoader(overrides),
	)
}

// Sources returns loader names in registration order
func (r *CompositeConfigRepository) Sources() []string {
	names := make([]string, 0, len(r.loaders))
	for _, l := range r.loaders {
		names = append(names, l.Name())
	}
	return names
}

// ConfigPath returns the path read by the repository's file loader, or ""
// when it has none.
func (r *CompositeConfigRepository) ConfigPath() string {
	for _, l := range r.loaders {
		if fl, ok := l.(*FileLoader); ok {
			return fl.Path()
		}
	}
	return ""
}

// Load merges every loader's snapshot. The merged snapshot is returned even
// when validation fails so that callers can show where bad values came from.
func (r *CompositeConfigRepository) Load(ctx context.Context) (configdomain.Snapshot, error) {
	merged := make(configdomain.Snapshot)
	for _, loader := range r.loaders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap, err := loader.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", loader.Name(), err)
		}
		merged.Merge(snap)
	}

	if r.validator != nil {
		if err := r.validator.Validate(merged); err != nil {
			return merged, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return merged, nil
}

// LoadSettings is Load followed by configdomain.SettingsFrom
func (r *CompositeConfigRepository) LoadSettings(ctx context.Context) (configdomain.Settings, configdomain.Snapshot, error) {
	snap, err := r.Load(ctx)
	if err != nil {
		return configdomain.Settings{}, snap, err
	}
	return configdomain.SettingsFrom(snap), snap, nil
}
