package i18n

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"kw3c.dev/cli/internal/core/domain/messages"
	msgports "kw3c.dev/cli/internal/core/ports/messages"
)

// Option configures a Catalog
type Option func(*Catalog)

// WithPreferred sets the locales to match against, most preferred first
func WithPreferred(tags ...language.Tag) Option {
	return func(c *Catalog) {
		c.preferred = append([]language.Tag(nil), tags...)
	}
}

// WithDefaultLocale names the language of the default table
func WithDefaultLocale(tag language.Tag) Option {
	return func(c *Catalog) {
		c.defaultLocale = tag
	}
}

// WithLogger sets the logger that receives missing-translation reports
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// loaded is the immutable state published once by Initialize.
type loaded struct {
	bundle string
	locale language.Tag
	chain  []language.Tag
	table  map[messages.Key]string
}

// Catalog maps message keys to text from the bundle matching the active
// locale. It is initialized exactly once; lookups read an immutable table and
// need no locking.
type Catalog struct {
	source        msgports.BundleSource
	preferred     []language.Tag
	defaultLocale language.Tag
	logger        zerolog.Logger

	once    sync.Once
	initErr error
	state   atomic.Pointer[loaded]
	missed  sync.Map
}

// NewCatalog creates an uninitialized catalog reading from source
func NewCatalog(source msgports.BundleSource, opts ...Option) *Catalog {
	c := &Catalog{
		source:        source,
		defaultLocale: language.English,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "catalog").Logger()
	return c
}

// Initialize loads bundle for the preferred locales. Only the first call does
// any work; later calls return the first call's result.
func (c *Catalog) Initialize(ctx context.Context, bundle string) error {
	c.once.Do(func() {
		state, err := c.load(ctx, bundle)
		if err != nil {
			c.initErr = fmt.Errorf("failed to initialize message bundle %q: %w", bundle, err)
			return
		}
		c.state.Store(state)
		c.logger.Debug().
			Str("bundle", bundle).
			Str("locale", state.locale.String()).
			Int("keys", len(state.table)).
			Msg("message bundle loaded")
	})
	return c.initErr
}

// Initialized reports whether a bundle has been loaded
func (c *Catalog) Initialized() bool {
	return c.state.Load() != nil
}

// Get returns the text for key or messages.Sentinel(key) when the loaded
// bundle has no entry (or nothing is loaded yet).
func (c *Catalog) Get(key messages.Key) string {
	state := c.state.Load()
	if state != nil {
		if text, ok := state.table[key]; ok {
			return text
		}
	}
	c.reportMissing(key, state)
	return messages.Sentinel(key)
}

// Format returns Get(key) with positional arguments substituted. The
// sentinel is returned unformatted.
func (c *Catalog) Format(key messages.Key, args ...any) string {
	text := c.Get(key)
	if !c.Has(key) {
		return text
	}
	return messages.Format(text, args...)
}

// Has reports whether key has an entry in the loaded bundle
func (c *Catalog) Has(key messages.Key) bool {
	state := c.state.Load()
	if state == nil {
		return false
	}
	_, ok := state.table[key]
	return ok
}

// Keys returns every key with an entry, sorted
func (c *Catalog) Keys() []messages.Key {
	state := c.state.Load()
	if state == nil {
		return nil
	}
	keys := make([]messages.Key, 0, len(state.table))
	for k := range state.table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Locale returns the most specific locale that was loaded
func (c *Catalog) Locale() language.Tag {
	state := c.state.Load()
	if state == nil {
		return language.Und
	}
	return state.locale
}

// Chain returns the tables merged into the catalog, least specific first.
// language.Und stands for the default table.
func (c *Catalog) Chain() []language.Tag {
	state := c.state.Load()
	if state == nil {
		return nil
	}
	return append([]language.Tag(nil), state.chain...)
}

// Bundle returns the logical bundle name that was loaded
func (c *Catalog) Bundle() string {
	state := c.state.Load()
	if state == nil {
		return ""
	}
	return state.bundle
}

func (c *Catalog) reportMissing(key messages.Key, state *loaded) {
	if _, seen := c.missed.LoadOrStore(key, struct{}{}); seen {
		return
	}
	event := c.logger.Warn().Str("key", string(key))
	if state == nil {
		event.Msg("message lookup before catalog initialization")
		return
	}
	event.Str("bundle", state.bundle).Str("locale", state.locale.String()).Msg("missing translation")
}

func (c *Catalog) load(ctx context.Context, bundle string) (*loaded, error) {
	if c.source == nil {
		return nil, errors.New("no bundle source configured")
	}
	available, err := c.source.Locales(ctx, bundle)
	if err != nil {
		return nil, err
	}

	chain, locale := c.fallbackChain(available)
	if len(chain) == 0 {
		return nil, fmt.Errorf("%w: no default table and no table matching %v", ErrBundleNotFound, c.preferred)
	}

	table := make(map[messages.Key]string)
	for _, tag := range chain {
		part, err := c.source.Table(ctx, bundle, tag)
		if err != nil {
			return nil, err
		}
		for k, v := range part {
			if messages.IsSentinel(v) {
				// Treated as missing; a less specific table may still supply it.
				c.logger.Warn().
					Str("key", string(k)).
					Str("bundle", bundle).
					Str("locale", DescribeLocale(tag)).
					Msg("ignoring translation that looks like a missing-translation marker")
				continue
			}
			table[k] = v
		}
	}

	return &loaded{bundle: bundle, locale: locale, chain: chain, table: table}, nil
}

// fallbackChain orders the tables to merge, least specific first: the
// default table, then each ancestor of the matched locale that has a table,
// then the matched locale itself.
func (c *Catalog) fallbackChain(available []language.Tag) ([]language.Tag, language.Tag) {
	hasDefault := false
	var supported []language.Tag
	for _, tag := range available {
		if tag == language.Und {
			hasDefault = true
			continue
		}
		supported = append(supported, tag)
	}

	var chain []language.Tag
	if hasDefault {
		chain = append(chain, language.Und)
	}

	matched, ok := matchLocale(supported, c.preferred)
	if !ok {
		return chain, c.defaultLocale
	}

	var specific []language.Tag
	for tag := matched; tag != language.Und; tag = tag.Parent() {
		if contains(supported, tag) {
			specific = append([]language.Tag{tag}, specific...)
		}
	}
	return append(chain, specific...), matched
}

func matchLocale(supported, preferred []language.Tag) (language.Tag, bool) {
	if len(supported) == 0 || len(preferred) == 0 {
		return language.Und, false
	}
	_, idx, conf := language.NewMatcher(supported).Match(preferred...)
	if conf == language.No {
		return language.Und, false
	}
	return supported[idx], true
}

func contains(tags []language.Tag, tag language.Tag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

var _ msgports.Catalog = (*Catalog)(nil)
