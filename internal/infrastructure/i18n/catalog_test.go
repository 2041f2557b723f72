package i18n

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"pgregory.net/rapid"

	"kw3c.dev/cli/internal/core/domain/messages"
	msgports "kw3c.dev/cli/internal/core/ports/messages"
)

func mapSource(files map[string]string) *YAMLSource {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return NewFSSource(fsys, "test")
}

func TestCatalog_EndToEndLookup(t *testing.T) {
	source := mapSource(map[string]string{
		"messages.yaml": "sqlmap_err_QueryId_duplication: Query ID already exists\n",
	})
	catalog := NewCatalog(source)

	require.NoError(t, catalog.Initialize(context.Background(), "messages"))
	assert.Equal(t, "Query ID already exists", catalog.Get(messages.SqlMapErrQueryIDDuplication))
	assert.Equal(t, "!unknown_key_xyz!", catalog.Get("unknown_key_xyz"))
	assert.True(t, messages.IsSentinel(catalog.Get("unknown_key_xyz")))
}

func TestCatalog_EmptyValueIsDistinctFromMissing(t *testing.T) {
	source := mapSource(map[string]string{
		"messages.yaml": "blank: \"\"\n",
	})
	catalog := NewCatalog(source)
	require.NoError(t, catalog.Initialize(context.Background(), "messages"))

	assert.True(t, catalog.Has("blank"))
	assert.Equal(t, "", catalog.Get("blank"))
	assert.NotEqual(t, catalog.Get("blank"), catalog.Get("absent"))
}

func TestCatalog_LocaleFallback(t *testing.T) {
	files := map[string]string{
		"messages.yaml":       "greeting: Hello\nfarewell: Goodbye\nonly_default: Default\n",
		"messages_ko.yaml":    "greeting: 안녕하세요\nfarewell: 안녕히 가세요\n",
		"messages_ko_KR.yaml": "farewell: 안녕히 계세요\n",
	}

	tests := []struct {
		name         string
		preferred    []language.Tag
		expectLocale language.Tag
		expectChain  []language.Tag
		greeting     string
		farewell     string
		onlyDefault  string
	}{
		{
			name:         "ExactRegionalMatch",
			preferred:    []language.Tag{language.MustParse("ko-KR")},
			expectLocale: language.MustParse("ko-KR"),
			expectChain:  []language.Tag{language.Und, language.Korean, language.MustParse("ko-KR")},
			greeting:     "안녕하세요",
			farewell:     "안녕히 계세요",
			onlyDefault:  "Default",
		},
		{
			name:         "BaseLanguageMatch",
			preferred:    []language.Tag{language.Korean},
			expectLocale: language.Korean,
			expectChain:  []language.Tag{language.Und, language.Korean},
			greeting:     "안녕하세요",
			farewell:     "안녕히 가세요",
			onlyDefault:  "Default",
		},
		{
			name:         "NoMatchFallsBackToDefault",
			preferred:    []language.Tag{language.French},
			expectLocale: language.English,
			expectChain:  []language.Tag{language.Und},
			greeting:     "Hello",
			farewell:     "Goodbye",
			onlyDefault:  "Default",
		},
		{
			name:         "NoPreferenceUsesDefault",
			preferred:    nil,
			expectLocale: language.English,
			expectChain:  []language.Tag{language.Und},
			greeting:     "Hello",
			farewell:     "Goodbye",
			onlyDefault:  "Default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := NewCatalog(mapSource(files), WithPreferred(tt.preferred...))
			require.NoError(t, catalog.Initialize(context.Background(), "messages"))

			assert.Equal(t, tt.expectLocale, catalog.Locale())
			assert.Equal(t, tt.expectChain, catalog.Chain())
			assert.Equal(t, tt.greeting, catalog.Get("greeting"))
			assert.Equal(t, tt.farewell, catalog.Get("farewell"))
			assert.Equal(t, tt.onlyDefault, catalog.Get("only_default"))
			assert.Equal(t, "messages", catalog.Bundle())
		})
	}
}

func TestCatalog_MarkerLikeValueOnlyAffectsItsKey(t *testing.T) {
	var buf bytes.Buffer
	source := mapSource(map[string]string{
		"messages.yaml": "sqlmap_err_QueryId_duplication: Query ID already exists\nalert_title: \"!Warning!\"\n",
	})
	catalog := NewCatalog(source, WithLogger(zerolog.New(&buf)))

	require.NoError(t, catalog.Initialize(context.Background(), "messages"))
	assert.Equal(t, "Query ID already exists", catalog.Get(messages.SqlMapErrQueryIDDuplication))
	assert.False(t, catalog.Has("alert_title"))
	assert.Equal(t, messages.Sentinel("alert_title"), catalog.Get("alert_title"))
	assert.Contains(t, buf.String(), "looks like a missing-translation marker")
	assert.Contains(t, buf.String(), `"key":"alert_title"`)
}

func TestCatalog_MarkerLikeLocalizedValueFallsBack(t *testing.T) {
	source := mapSource(map[string]string{
		"messages.yaml":    "alert_title: Warning\n",
		"messages_ko.yaml": "alert_title: \"!경고!\"\n",
	})
	catalog := NewCatalog(source, WithPreferred(language.Korean))

	require.NoError(t, catalog.Initialize(context.Background(), "messages"))
	assert.Equal(t, "Warning", catalog.Get("alert_title"))
}

func TestCatalog_LocalizedTableWithoutDefault(t *testing.T) {
	source := mapSource(map[string]string{"messages_ko.yaml": "greeting: 안녕하세요\n"})

	matched := NewCatalog(source, WithPreferred(language.Korean))
	require.NoError(t, matched.Initialize(context.Background(), "messages"))
	assert.Equal(t, "안녕하세요", matched.Get("greeting"))

	unmatched := NewCatalog(source, WithPreferred(language.German))
	err := unmatched.Initialize(context.Background(), "messages")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBundleNotFound)
	assert.False(t, unmatched.Initialized())
}

func TestCatalog_InitializeRunsOnce(t *testing.T) {
	source := &countingSource{BundleSource: mapSource(map[string]string{"messages.yaml": "a: A\n"})}
	catalog := NewCatalog(source)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, catalog.Initialize(context.Background(), "messages"))
		}()
	}
	wg.Wait()

	require.NoError(t, catalog.Initialize(context.Background(), "other"))
	assert.Equal(t, 1, source.localeCalls(), "bundle should be listed exactly once")
	assert.Equal(t, "messages", catalog.Bundle(), "later calls must not reload")
}

func TestCatalog_InitializeFailureIsSticky(t *testing.T) {
	catalog := NewCatalog(mapSource(map[string]string{}))

	first := catalog.Initialize(context.Background(), "messages")
	second := catalog.Initialize(context.Background(), "messages")

	require.Error(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, "!a!", catalog.Get("a"))
}

func TestCatalog_GetBeforeInitializeReturnsSentinel(t *testing.T) {
	var buf bytes.Buffer
	catalog := NewCatalog(mapSource(map[string]string{"messages.yaml": "a: A\n"}), WithLogger(zerolog.New(&buf)))

	assert.Equal(t, messages.Sentinel("a"), catalog.Get("a"))
	assert.False(t, catalog.Has("a"))
	assert.Nil(t, catalog.Keys())
	assert.Equal(t, language.Und, catalog.Locale())
	assert.Contains(t, buf.String(), "before catalog initialization")
}

func TestCatalog_MissingKeyLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	catalog := NewCatalog(mapSource(map[string]string{"messages.yaml": "a: A\n"}), WithLogger(zerolog.New(&buf)))
	require.NoError(t, catalog.Initialize(context.Background(), "messages"))

	for i := 0; i < 5; i++ {
		catalog.Get("nope")
	}

	assert.Equal(t, 1, strings.Count(buf.String(), "missing translation"))
	assert.Contains(t, buf.String(), `"key":"nope"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestCatalog_Format(t *testing.T) {
	source := mapSource(map[string]string{
		"messages.yaml": "kw3c_launch_failed: \"Could not start ({0}): {1}\"\n",
	})
	catalog := NewCatalog(source)
	require.NoError(t, catalog.Initialize(context.Background(), "messages"))

	assert.Equal(t, "Could not start (/opt/kw3c): denied", catalog.Format(messages.LaunchFailed, "/opt/kw3c", "denied"))
	assert.Equal(t, "!kw3c_launch_started!", catalog.Format(messages.LaunchStarted, "/opt/kw3c"))
}

func TestCatalog_Keys(t *testing.T) {
	catalog := NewCatalog(mapSource(map[string]string{"messages.yaml": "b: B\na: A\n"}))
	require.NoError(t, catalog.Initialize(context.Background(), "messages"))

	assert.Equal(t, []messages.Key{"a", "b"}, catalog.Keys())
}

func TestCatalog_PropertyBased_GetIsPure(t *testing.T) {
	catalog := NewCatalog(NewEmbeddedSource(), WithPreferred(language.Korean))
	require.NoError(t, catalog.Initialize(context.Background(), messages.DefaultBundle))
	declared := messages.Declared()

	rapid.Check(t, func(rt *rapid.T) {
		var key messages.Key
		if rapid.Bool().Draw(rt, "declared") {
			key = rapid.SampledFrom(declared).Draw(rt, "key")
		} else {
			key = messages.Key(rapid.StringMatching(`[a-z_]{1,24}`).Draw(rt, "key"))
		}

		first := catalog.Get(key)
		second := catalog.Get(key)

		assert.Equal(rt, first, second, "repeated lookups should agree")
		assert.NotEmpty(rt, first, "lookups should never produce an ambiguous empty string")
		assert.Equal(rt, catalog.Has(key), !messages.IsSentinel(first))
	})
}

type countingSource struct {
	msgports.BundleSource
	mu    sync.Mutex
	calls int
}

func (s *countingSource) Locales(ctx context.Context, bundle string) ([]language.Tag, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.BundleSource.Locales(ctx, bundle)
}

func (s *countingSource) localeCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
