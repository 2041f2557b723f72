package i18n

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/language"

	"kw3c.dev/cli/internal/core/domain/messages"
	msgports "kw3c.dev/cli/internal/core/ports/messages"
)

// LocaleReport lists integrity gaps for one table of a bundle.
type LocaleReport struct {
	Locale  language.Tag
	Missing []messages.Key // declared but absent, or holding a marker-like value
	Extra   []messages.Key // present but never looked up
}

// Complete reports whether every declared key is present
func (r LocaleReport) Complete() bool {
	return len(r.Missing) == 0
}

// Err returns nil for a complete table, otherwise one error per missing key,
// each matching messages.ErrMissingTranslation.
func (r LocaleReport) Err() error {
	errs := make([]error, 0, len(r.Missing))
	for _, key := range r.Missing {
		errs = append(errs, fmt.Errorf("%s: %w: %s", DescribeLocale(r.Locale), messages.ErrMissingTranslation, key))
	}
	return errors.Join(errs...)
}

// IntegrityReport covers every table of a bundle.
type IntegrityReport struct {
	Bundle  string
	Locales []LocaleReport
}

// Complete reports whether every table has every declared key
func (r IntegrityReport) Complete() bool {
	for _, l := range r.Locales {
		if !l.Complete() {
			return false
		}
	}
	return true
}

// MissingCount totals declared keys absent across all tables
func (r IntegrityReport) MissingCount() int {
	n := 0
	for _, l := range r.Locales {
		n += len(l.Missing)
	}
	return n
}

// Err joins the errors of every incomplete table
func (r IntegrityReport) Err() error {
	errs := make([]error, 0, len(r.Locales))
	for _, l := range r.Locales {
		if err := l.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CheckIntegrity compares every table of bundle against the declared keys.
// Tables are checked on their own, without fallback merging.
func CheckIntegrity(ctx context.Context, source msgports.BundleSource, bundle string, declared []messages.Key) (IntegrityReport, error) {
	locales, err := source.Locales(ctx, bundle)
	if err != nil {
		return IntegrityReport{}, err
	}

	report := IntegrityReport{Bundle: bundle}
	for _, locale := range locales {
		table, err := source.Table(ctx, bundle, locale)
		if err != nil {
			return IntegrityReport{}, fmt.Errorf("failed to read %s table: %w", DescribeLocale(locale), err)
		}
		report.Locales = append(report.Locales, compareTable(locale, table, declared))
	}
	return report, nil
}

func compareTable(locale language.Tag, table map[messages.Key]string, declared []messages.Key) LocaleReport {
	lr := LocaleReport{Locale: locale}
	want := make(map[messages.Key]bool, len(declared))
	for _, key := range declared {
		want[key] = true
		if text, ok := table[key]; !ok || messages.IsSentinel(text) {
			lr.Missing = append(lr.Missing, key)
		}
	}
	for key := range table {
		if !want[key] {
			lr.Extra = append(lr.Extra, key)
		}
	}
	sortKeys(lr.Missing)
	sortKeys(lr.Extra)
	return lr
}

func sortKeys(keys []messages.Key) {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
}

// DescribeLocale names a table for humans; Und is the default table
func DescribeLocale(tag language.Tag) string {
	if tag == language.Und {
		return "default"
	}
	return tag.String()
}
