package configinfra

import (
	"context"

	configdomain "kw3c.dev/cli/internal/core/domain/config"
	configports "kw3c.dev/cli/internal/core/ports/config"
)

// OverridesLoader turns command line flag values into a snapshot (priority 1).
// Empty strings are treated as "flag not given".
type OverridesLoader struct {
	values map[string]interface{}
}

func NewOverridesLoader(values map[string]interface{}) *OverridesLoader {
	return &OverridesLoader{values: values}
}

func (l *OverridesLoader) Name() string { return "flags" }

func (l *OverridesLoader) Load(ctx context.Context) (configdomain.Snapshot, error) {
	snap := make(configdomain.Snapshot)
	for field, v := range l.values {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			if t == "" {
				continue
			}
		case []string:
			if len(t) == 0 {
				continue
			}
		}
		snap[field] = configdomain.Entry{Key: field, Value: v, Source: "cli", SourcePath: "command_line_flag", Priority: configdomain.PriorityFlag}
	}
	return snap, nil
}

var _ configports.Loader = (*OverridesLoader)(nil)
