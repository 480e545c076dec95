package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local is a read-only filesystem backend rooted at a directory
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend. The root must
// exist and be a directory.
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Local{rootPath: absPath}, nil
}

// List returns all regular files under the root recursively,
// pruning directories for which skipDir returns true. Unreadable
// subdirectories are skipped rather than failing the walk.
func (l *Local) List(ctx context.Context, skipDir func(name string) bool) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(l.rootPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Best-effort walk: skip what cannot be read
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if p != l.rootPath && skipDir != nil && skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(l.rootPath, p)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		files = append(files, FileInfo{
			Path:         p,
			RelativePath: filepath.ToSlash(relPath),
			Size:         info.Size(),
			ModTime:      info.ModTime(),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return files, nil
}

// Read opens a file for reading
func (l *Local) Read(ctx context.Context, relPath string) (io.ReadCloser, error) {
	file, err := os.Open(l.fullPath(relPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Stat returns file metadata
func (l *Local) Stat(ctx context.Context, relPath string) (*FileInfo, error) {
	fullPath := l.fullPath(relPath)

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &FileInfo{
		Path:         fullPath,
		RelativePath: filepath.ToSlash(relPath),
		Size:         info.Size(),
		ModTime:      info.ModTime(),
	}, nil
}

// Exists checks if a file exists at the given relative path
func (l *Local) Exists(ctx context.Context, relPath string) (bool, error) {
	_, err := os.Stat(l.fullPath(relPath))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Root returns the absolute root directory
func (l *Local) Root() string {
	return l.rootPath
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}

func (l *Local) fullPath(relPath string) string {
	return filepath.Join(l.rootPath, filepath.FromSlash(relPath))
}
