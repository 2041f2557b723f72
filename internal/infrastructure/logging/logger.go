package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured
const DefaultLevel = zerolog.InfoLevel

var levels = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"disabled": zerolog.Disabled,
	"off":      zerolog.Disabled,
}

// ParseLevel parses a configured level name
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultLevel, nil
	}
	level, ok := levels[name]
	if !ok {
		return DefaultLevel, fmt.Errorf("unknown log level %q (use trace, debug, info, warn, error or disabled)", name)
	}
	return level, nil
}

// LevelOrDefault is ParseLevel with unknown names mapped to DefaultLevel
func LevelOrDefault(name string) zerolog.Level {
	level, _ := ParseLevel(name)
	return level
}

// New creates the console logger used by the CLI. Output goes to w, which is
// stderr in production so that command output on stdout stays clean.
func New(app string, level zerolog.Level, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(w),
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}

// NewJSON creates a logger writing one JSON object per line
func NewJSON(app string, level zerolog.Level, w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", app).Logger()
}
