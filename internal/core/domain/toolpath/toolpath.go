package toolpath

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyRoot    = errors.New("installation root cannot be empty")
	ErrRelativeRoot = errors.New("installation root must be an absolute path")
	ErrNoSegments   = errors.New("relative segments cannot be empty")
	ErrEmptySegment = errors.New("relative segment cannot be empty")
)

// DefaultValidatorSegments locates the bundled validator below the installation root.
var DefaultValidatorSegments = []string{"KW3CValidator", "KW3C.exe"}

// ResolutionError reports malformed input handed to Resolve.
type ResolutionError struct {
	Root     string
	Segments []string
	Err      error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %q under %q: %v", strings.Join(e.Segments, "/"), e.Root, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// InstallationRoot is a value object for the directory the host application is installed in
type InstallationRoot struct {
	value string
}

// NewInstallationRoot creates an InstallationRoot with validation
func NewInstallationRoot(path string) (InstallationRoot, error) {
	if strings.TrimSpace(path) == "" {
		return InstallationRoot{}, ErrEmptyRoot
	}
	if !filepath.IsAbs(path) {
		return InstallationRoot{}, ErrRelativeRoot
	}
	return InstallationRoot{value: filepath.Clean(path)}, nil
}

// Value returns the cleaned absolute path
func (r InstallationRoot) Value() string {
	return r.value
}

// String implements the Stringer interface
func (r InstallationRoot) String() string {
	return r.value
}

// IsZero reports whether the root was never set
func (r InstallationRoot) IsZero() bool {
	return r.value == ""
}

// ToolPath is the absolute location of a bundled tool. It is derived on every
// resolution and never cached.
type ToolPath struct {
	root     InstallationRoot
	segments []string
	value    string
}

// Root returns the installation root the path was resolved against
func (p ToolPath) Root() InstallationRoot {
	return p.root
}

// Segments returns a copy of the normalized relative segments
func (p ToolPath) Segments() []string {
	return append([]string(nil), p.segments...)
}

// String returns the OS-native path
func (p ToolPath) String() string {
	return p.value
}

// Base returns the executable file name
func (p ToolPath) Base() string {
	return filepath.Base(p.value)
}

// Resolve joins relative segments onto an installation root. It is purely
// syntactic: the target is never stat'ed. Segments may themselves contain
// forward slashes, which are split and re-joined with the native separator.
func Resolve(root string, segments ...string) (ToolPath, error) {
	fail := func(err error) (ToolPath, error) {
		return ToolPath{}, &ResolutionError{Root: root, Segments: append([]string(nil), segments...), Err: err}
	}

	installRoot, err := NewInstallationRoot(root)
	if err != nil {
		return fail(err)
	}
	return ResolveUnder(installRoot, segments...)
}

// ResolveUnder is Resolve for an already validated root.
func ResolveUnder(root InstallationRoot, segments ...string) (ToolPath, error) {
	fail := func(err error) (ToolPath, error) {
		return ToolPath{}, &ResolutionError{Root: root.Value(), Segments: append([]string(nil), segments...), Err: err}
	}

	if root.IsZero() {
		return fail(ErrEmptyRoot)
	}
	parts, err := SplitSegments(segments)
	if err != nil {
		return fail(err)
	}

	joined := filepath.Join(append([]string{root.Value()}, parts...)...)
	return ToolPath{root: root, segments: parts, value: joined}, nil
}

// SplitSegments normalizes segment input by splitting on both '/' and the
// native separator. Empty parts are rejected rather than silently dropped.
func SplitSegments(segments []string) ([]string, error) {
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}

	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			return nil, ErrEmptySegment
		}
		normalized := strings.ReplaceAll(segment, string(filepath.Separator), "/")
		for _, part := range strings.Split(normalized, "/") {
			if part == "" {
				return nil, ErrEmptySegment
			}
			parts = append(parts, part)
		}
	}
	return parts, nil
}
