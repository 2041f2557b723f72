package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
		wantErr  bool
	}{
		{"", zerolog.InfoLevel, false},
		{"trace", zerolog.TraceLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{" warn ", zerolog.WarnLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"off", zerolog.Disabled, false},
		{"disabled", zerolog.Disabled, false},
		{"verbose", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestLevelOrDefault(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, LevelOrDefault("debug"))
	assert.Equal(t, DefaultLevel, LevelOrDefault("nonsense"))
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("kw3c", zerolog.WarnLevel, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("key", "value").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=value")
	assert.NotContains(t, out, "\x1b[", "non-terminal output should not be colored")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON("kw3c", zerolog.InfoLevel, &buf)

	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"app":"kw3c"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}
