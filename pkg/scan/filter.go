package scan

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExtensions returns the built-in allow-list of source file
// extensions eligible for comparison (C/C++ family, CUDA, Python)
func DefaultExtensions() []string {
	return []string{
		".cpp", ".c", ".cc", ".cxx",
		".hpp", ".h", ".hxx",
		".cu", ".cuh",
		".py", ".pyx",
	}
}

// DefaultSkipDirs returns the built-in denylist of directory names
// excluded from the walk. Hidden directories (dot-prefixed) are always
// skipped regardless of this list, which covers VCS metadata.
func DefaultSkipDirs() []string {
	return []string{
		"__pycache__",
		"build",
		"dist",
		"node_modules",
		"venv",
		"target",
	}
}

// Filter decides which relative paths take part in a comparison.
// A path is kept iff its extension is in the allow-list AND it matches
// at least one include pattern when includes were given AND it matches
// no exclude pattern. Patterns use doublestar glob semantics against
// the forward-slash relative path.
type Filter struct {
	extensions map[string]struct{}
	skipDirs   map[string]struct{}
	include    []string
	exclude    []string
}

// NewFilter creates a filter from an extension allow-list, a directory
// denylist and optional include/exclude glob patterns. Patterns are
// validated eagerly so a malformed glob fails the run up front rather
// than silently matching nothing.
func NewFilter(extensions, skipDirs, include, exclude []string) (*Filter, error) {
	f := &Filter{
		extensions: make(map[string]struct{}, len(extensions)),
		skipDirs:   make(map[string]struct{}, len(skipDirs)),
		include:    include,
		exclude:    exclude,
	}

	for _, ext := range extensions {
		f.extensions[strings.ToLower(ext)] = struct{}{}
	}
	for _, dir := range skipDirs {
		f.skipDirs[dir] = struct{}{}
	}

	for _, pattern := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern: %q", pattern)
		}
	}

	return f, nil
}

// SkipDir reports whether a directory with the given name must be
// pruned from the walk
func (f *Filter) SkipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, skip := f.skipDirs[name]
	return skip
}

// Match reports whether the forward-slash relative path is eligible
// for comparison
func (f *Filter) Match(relPath string) bool {
	ext := strings.ToLower(filepath.Ext(relPath))
	if _, ok := f.extensions[ext]; !ok {
		return false
	}

	if len(f.include) > 0 {
		included := false
		for _, pattern := range f.include {
			if ok, _ := doublestar.Match(pattern, relPath); ok {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}

	for _, pattern := range f.exclude {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return false
		}
	}

	return true
}
