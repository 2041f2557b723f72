package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"kw3c.dev/cli/internal/core/domain/messages"
)

func TestCheckIntegrity_ReportsGapsPerLocale(t *testing.T) {
	source := mapSource(map[string]string{
		"messages.yaml":    "a: A\nb: B\nstale: S\n",
		"messages_ko.yaml": "a: 가\n",
	})
	declared := []messages.Key{"b", "a"}

	report, err := CheckIntegrity(context.Background(), source, "messages", declared)
	require.NoError(t, err)
	require.Len(t, report.Locales, 2)

	byLocale := map[language.Tag]LocaleReport{}
	for _, lr := range report.Locales {
		byLocale[lr.Locale] = lr
	}

	def := byLocale[language.Und]
	assert.True(t, def.Complete())
	assert.Equal(t, []messages.Key{"stale"}, def.Extra)

	ko := byLocale[language.Korean]
	assert.False(t, ko.Complete())
	assert.Equal(t, []messages.Key{"b"}, ko.Missing)
	assert.Empty(t, ko.Extra)

	assert.False(t, report.Complete())
	assert.Equal(t, 1, report.MissingCount())
	assert.Equal(t, "messages", report.Bundle)

	assert.NoError(t, def.Err())
	require.Error(t, ko.Err())
	assert.ErrorIs(t, ko.Err(), messages.ErrMissingTranslation)
	assert.Contains(t, ko.Err().Error(), "ko: missing translation: b")
	assert.ErrorIs(t, report.Err(), messages.ErrMissingTranslation)
}

func TestCheckIntegrity_MarkerLikeValueCountsAsMissing(t *testing.T) {
	source := mapSource(map[string]string{"messages.yaml": "a: A\nb: \"!b!\"\n"})

	report, err := CheckIntegrity(context.Background(), source, "messages", []messages.Key{"a", "b"})
	require.NoError(t, err)
	require.Len(t, report.Locales, 1)
	assert.Equal(t, []messages.Key{"b"}, report.Locales[0].Missing)
	assert.Empty(t, report.Locales[0].Extra)
}

func TestIntegrityReport_CompleteHasNoError(t *testing.T) {
	report := IntegrityReport{Bundle: "messages", Locales: []LocaleReport{{Locale: language.Und}}}

	assert.True(t, report.Complete())
	assert.NoError(t, report.Err())
}

func TestCheckIntegrity_PropagatesSourceErrors(t *testing.T) {
	source := mapSource(map[string]string{"messages.yaml": "a: [broken\n"})

	_, err := CheckIntegrity(context.Background(), source, "messages", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default table")
}

func TestDescribeLocale(t *testing.T) {
	assert.Equal(t, "default", DescribeLocale(language.Und))
	assert.Equal(t, "ko-KR", DescribeLocale(language.MustParse("ko-KR")))
}
