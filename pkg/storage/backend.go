package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a file
type FileInfo struct {
	Path         string
	RelativePath string // forward-slash normalized, relative to the backend root
	Size         int64
	ModTime      time.Time
}

// Backend defines the read-only interface over a tree of files.
// The local filesystem is the only implementation today; a resolved
// remote repository is read through the same interface once cloned.
type Backend interface {
	// List returns all regular files under the root recursively.
	// skipDir is consulted with each directory name; returning true
	// prunes that directory from the walk. The walk is best-effort:
	// an unreadable subdirectory is skipped, never fatal.
	List(ctx context.Context, skipDir func(name string) bool) ([]FileInfo, error)

	// Read opens the file at the given relative path for reading
	Read(ctx context.Context, relPath string) (io.ReadCloser, error)

	// Stat returns metadata for the file at the given relative path
	Stat(ctx context.Context, relPath string) (*FileInfo, error)

	// Exists checks if a file exists at the given relative path
	Exists(ctx context.Context, relPath string) (bool, error)

	// Root returns the absolute root directory of the backend
	Root() string

	// Close releases any resources held by the backend
	Close() error
}
