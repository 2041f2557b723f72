package messages

import (
	"context"

	"golang.org/x/text/language"

	"kw3c.dev/cli/internal/core/domain/messages"
)

// Catalog resolves message keys to localized text.
type Catalog interface {
	// Get returns the localized text for key, or messages.Sentinel(key)
	Get(key messages.Key) string

	// Format is Get followed by positional placeholder substitution
	Format(key messages.Key, args ...any) string

	// Has reports whether key has an entry in the loaded bundle
	Has(key messages.Key) bool

	// Locale returns the tag of the most specific bundle that was loaded
	Locale() language.Tag
}

// BundleSource reads raw key/text tables for one bundle.
type BundleSource interface {
	// Locales lists the locales the bundle has a table for. The default
	// table is reported as language.Und.
	Locales(ctx context.Context, bundle string) ([]language.Tag, error)

	// Table reads the table for the given locale; language.Und is the default table
	Table(ctx context.Context, bundle string, locale language.Tag) (map[messages.Key]string, error)
}
