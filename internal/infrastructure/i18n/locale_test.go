package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestParsePOSIXLocale(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"ko_KR.UTF-8", "ko-KR", true},
		{"en_US", "en-US", true},
		{"de_DE@euro", "de-DE", true},
		{"ja", "ja", true},
		{"C", "", false},
		{"POSIX", "", false},
		{"C.UTF-8", "", false},
		{"", "", false},
		{"!!", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tag, ok := ParsePOSIXLocale(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, tag.String())
			}
		})
	}
}

func TestLocaleFromEnv_Precedence(t *testing.T) {
	env := map[string]string{
		"LANG":        "en_US.UTF-8",
		"LC_MESSAGES": "ko_KR.UTF-8",
	}
	getenv := func(k string) string { return env[k] }
	assert.Equal(t, "ko-KR", LocaleFromEnv(getenv))

	env["LC_ALL"] = "ja_JP.UTF-8"
	assert.Equal(t, "ja-JP", LocaleFromEnv(getenv))

	env["LC_ALL"] = "C"
	assert.Equal(t, "ko-KR", LocaleFromEnv(getenv), "C carries no language and should be skipped")

	assert.Empty(t, LocaleFromEnv(func(string) string { return "" }))
}

func TestParseLocales(t *testing.T) {
	tags := ParseLocales("ko-KR, en ,,C,fr_FR")
	assert.Equal(t, []language.Tag{
		language.MustParse("ko-KR"),
		language.English,
		language.MustParse("fr-FR"),
	}, tags)
}
