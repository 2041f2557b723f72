package i18n

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"kw3c.dev/cli/internal/core/domain/messages"
	msgports "kw3c.dev/cli/internal/core/ports/messages"
)

//go:embed bundles/*.yaml
var embedded embed.FS

const bundleExt = ".yaml"

// ErrBundleNotFound is returned when no table exists for a bundle at all
var ErrBundleNotFound = errors.New("bundle not found")

// YAMLSource reads bundles stored as flat YAML mappings. The default table
// lives in <bundle>.yaml and localized tables in <bundle>_<locale>.yaml, where
// locale uses either '_' or '-' separators (messages_ko_KR.yaml).
type YAMLSource struct {
	fsys fs.FS
	name string
}

// NewEmbeddedSource returns the bundles compiled into the binary
func NewEmbeddedSource() *YAMLSource {
	sub, err := fs.Sub(embedded, "bundles")
	if err != nil {
		panic(fmt.Sprintf("embedded bundles: %v", err))
	}
	return &YAMLSource{fsys: sub, name: "embedded"}
}

// NewDirSource reads bundles from a directory on disk
func NewDirSource(dir string) *YAMLSource {
	return &YAMLSource{fsys: os.DirFS(dir), name: dir}
}

// NewFSSource reads bundles from an arbitrary filesystem
func NewFSSource(fsys fs.FS, name string) *YAMLSource {
	return &YAMLSource{fsys: fsys, name: name}
}

// Name describes where the bundles come from
func (s *YAMLSource) Name() string {
	return s.name
}

// Locales implements BundleSource
func (s *YAMLSource) Locales(ctx context.Context, bundle string) ([]language.Tag, error) {
	if err := validBundleName(bundle); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list bundles in %s: %w", s.name, err)
	}

	var tags []language.Tag
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}
		tag, ok := localeOf(bundle, entry.Name())
		if !ok {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrBundleNotFound, bundle, s.name)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
	return tags, nil
}

// Table implements BundleSource
func (s *YAMLSource) Table(ctx context.Context, bundle string, locale language.Tag) (map[messages.Key]string, error) {
	if err := validBundleName(bundle); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := fileName(bundle, locale)
	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		// Tables may be written with either separator.
		data, err = fs.ReadFile(s.fsys, strings.ReplaceAll(name, "-", "_"))
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (%s) in %s", ErrBundleNotFound, bundle, locale, s.name)
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return parseTable(name, data)
}

func parseTable(name string, data []byte) (map[messages.Key]string, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	table := make(map[messages.Key]string, len(raw))
	for k, v := range raw {
		key := strings.TrimSpace(k)
		if key == "" {
			return nil, fmt.Errorf("%s: empty message key", name)
		}
		table[messages.Key(key)] = v
	}
	return table, nil
}

func fileName(bundle string, locale language.Tag) string {
	if locale == language.Und {
		return bundle + bundleExt
	}
	return bundle + "_" + locale.String() + bundleExt
}

// localeOf extracts the locale encoded in a bundle file name.
func localeOf(bundle, file string) (language.Tag, bool) {
	if path.Ext(file) != bundleExt {
		return language.Und, false
	}
	stem := strings.TrimSuffix(file, bundleExt)
	if stem == bundle {
		return language.Und, true
	}
	suffix, ok := strings.CutPrefix(stem, bundle+"_")
	if !ok || suffix == "" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(suffix, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

func validBundleName(bundle string) error {
	if strings.TrimSpace(bundle) == "" {
		return errors.New("bundle name cannot be empty")
	}
	if strings.ContainsAny(bundle, `/\`) {
		return fmt.Errorf("bundle name %q must not contain path separators", bundle)
	}
	return nil
}

var _ msgports.BundleSource = (*YAMLSource)(nil)
