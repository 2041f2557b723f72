package services

import (
	"context"
	"sort"

	"golang.org/x/text/language"

	"kw3c.dev/cli/internal/core/domain/messages"
	msgports "kw3c.dev/cli/internal/core/ports/messages"
	"kw3c.dev/cli/internal/infrastructure/i18n"
)

// MessageCatalog is the catalog view used by CatalogService
type MessageCatalog interface {
	msgports.Catalog
	Keys() []messages.Key
	Bundle() string
}

// MessageEntry is one row of a catalog listing
type MessageEntry struct {
	Key      messages.Key
	Text     string
	Declared bool
	Missing  bool
}

// CatalogService exposes lookups, listings and integrity checks of the
// loaded message bundle
type CatalogService struct {
	catalog MessageCatalog
	source  msgports.BundleSource
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog MessageCatalog, source msgports.BundleSource) *CatalogService {
	return &CatalogService{catalog: catalog, source: source}
}

// Lookup returns the text for key with args substituted, and whether the key
// was found. A missing key yields the sentinel.
func (s *CatalogService) Lookup(key messages.Key, args ...any) (string, bool) {
	return s.catalog.Format(key, args...), s.catalog.Has(key)
}

// List returns every declared key plus any undeclared key present in the
// bundle, sorted by key.
func (s *CatalogService) List() []MessageEntry {
	seen := make(map[messages.Key]bool)
	var keys []messages.Key
	for _, k := range messages.Declared() {
		seen[k] = true
		keys = append(keys, k)
	}
	for _, k := range s.catalog.Keys() {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	entries := make([]MessageEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, MessageEntry{
			Key:      k,
			Text:     s.catalog.Get(k),
			Declared: messages.IsDeclared(k),
			Missing:  !s.catalog.Has(k),
		})
	}
	return entries
}

// Check compares every table of the loaded bundle against the declared keys
func (s *CatalogService) Check(ctx context.Context) (i18n.IntegrityReport, error) {
	return i18n.CheckIntegrity(ctx, s.source, s.catalog.Bundle(), messages.Declared())
}

// Locale returns the locale of the loaded bundle
func (s *CatalogService) Locale() language.Tag {
	return s.catalog.Locale()
}

// Bundle returns the loaded bundle name
func (s *CatalogService) Bundle() string {
	return s.catalog.Bundle()
}

