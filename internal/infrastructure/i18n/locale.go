package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// localeEnvVars are consulted in POSIX precedence order.
var localeEnvVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// LocaleFromEnv derives a BCP 47 tag from POSIX locale variables such as
// LANG=ko_KR.UTF-8. It returns "" when nothing usable is set.
func LocaleFromEnv(getenv func(string) string) string {
	for _, name := range localeEnvVars {
		if tag, ok := ParsePOSIXLocale(getenv(name)); ok {
			return tag.String()
		}
	}
	return ""
}

// ParsePOSIXLocale converts ko_KR.UTF-8@euro style values to a language tag.
// "C" and "POSIX" carry no language and are rejected.
func ParsePOSIXLocale(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	if value == "" || value == "C" || value == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
	if err != nil || tag == language.Und {
		return language.Und, false
	}
	return tag, true
}

// ParseLocales parses a comma separated preference list, skipping bad entries.
func ParseLocales(value string) []language.Tag {
	var tags []language.Tag
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if tag, ok := ParsePOSIXLocale(part); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}
