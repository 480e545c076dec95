package scan

import (
	"context"
	"fmt"

	"github.com/sdejongh/diffnorris/pkg/logging"
	"github.com/sdejongh/diffnorris/pkg/storage"
)

// Scanner enumerates the comparable files of a tree.
// Enumeration is a pure query: the tree is never mutated.
type Scanner struct {
	filter *Filter
	logger logging.Logger
}

// NewScanner creates a scanner with the given filter
func NewScanner(filter *Filter, logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Scanner{filter: filter, logger: logger}
}

// Enumerate walks the backend and returns the deduplicated set of
// relative paths eligible for comparison. Ordering is not significant;
// callers sort when determinism is needed.
func (s *Scanner) Enumerate(ctx context.Context, backend storage.Backend) (map[string]struct{}, error) {
	entries, err := backend.List(ctx, s.filter.SkipDir)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", backend.Root(), err)
	}

	paths := make(map[string]struct{})
	for _, entry := range entries {
		if s.filter.Match(entry.RelativePath) {
			paths[entry.RelativePath] = struct{}{}
		}
	}

	s.logger.Debug(ctx, "tree enumerated", logging.Fields{
		"root":     backend.Root(),
		"scanned":  len(entries),
		"eligible": len(paths),
	})

	return paths, nil
}
