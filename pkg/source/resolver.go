package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sdejongh/diffnorris/pkg/logging"
)

// IsRemote reports whether a source specifier is a repository URL
// rather than a local path
func IsRemote(specifier string) bool {
	return strings.HasPrefix(specifier, "http://") || strings.HasPrefix(specifier, "https://")
}

// Cache is the directory where resolved remote sources live.
// A remote specifier maps to a fixed entry name, so a second run with
// the same URL reuses the existing clone instead of re-fetching.
type Cache struct {
	root string
}

// NewCache creates a clone cache rooted at the given directory.
// An empty root selects the per-user default location.
func NewCache(root string) (*Cache, error) {
	if root == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate cache directory: %w", err)
		}
		root = filepath.Join(base, "diffnorris", "repos")
	}
	return &Cache{root: root}, nil
}

// Root returns the cache root directory
func (c *Cache) Root() string {
	return c.root
}

// Entry returns the cache directory for a remote specifier
func (c *Cache) Entry(specifier string) string {
	return filepath.Join(c.root, DeriveName(specifier))
}

// DeriveName turns a repository URL into a filesystem-safe directory
// name. Hugging Face URLs keep the owner segment to avoid collisions
// between same-named repos of different owners.
func DeriveName(specifier string) string {
	trimmed := strings.TrimSuffix(specifier, "/")
	parts := strings.Split(trimmed, "/")
	name := strings.TrimSuffix(parts[len(parts)-1], ".git")
	if strings.Contains(specifier, "huggingface.co") && len(parts) >= 2 {
		name = parts[len(parts)-2] + "_" + name
	}
	return name
}

// Resolver turns source specifiers into existing local directories.
// Local paths pass through untouched; remote URLs are shallow-cloned
// into the cache once and reused afterwards.
type Resolver struct {
	cache  *Cache
	gitBin string
	logger logging.Logger
}

// NewResolver creates a resolver backed by the given clone cache
func NewResolver(cache *Cache, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Resolver{cache: cache, gitBin: "git", logger: logger}
}

// Resolve returns the local directory for a source specifier, with the
// optional subdirectory appended. The returned directory is verified to
// exist; any failure here is fatal for the whole comparison.
func (r *Resolver) Resolve(ctx context.Context, specifier, subdir string) (string, error) {
	dir := specifier

	if IsRemote(specifier) {
		target := r.cache.Entry(specifier)
		if _, err := os.Stat(target); os.IsNotExist(err) {
			if err := os.MkdirAll(r.cache.Root(), 0755); err != nil {
				return "", fmt.Errorf("failed to create cache directory: %w", err)
			}
			if err := r.clone(ctx, specifier, target); err != nil {
				return "", err
			}
			r.logger.Info(ctx, "repository cloned", logging.Fields{"url": specifier, "dir": target})
		} else {
			r.logger.Debug(ctx, "reusing cached clone", logging.Fields{"url": specifier, "dir": target})
		}
		dir = target
	}

	if subdir != "" {
		dir = filepath.Join(dir, filepath.FromSlash(subdir))
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", dir)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", dir)
	}

	return dir, nil
}

// clone performs a shallow clone of the repository into target.
// Hugging Face repositories skip LFS blobs, which would otherwise pull
// multi-gigabyte model weights nobody diffs line by line.
func (r *Resolver) clone(ctx context.Context, url, target string) error {
	args := []string{"clone", "--depth", "1"}

	var env []string
	if strings.Contains(url, "huggingface.co") {
		env = append(os.Environ(), "GIT_LFS_SKIP_SMUDGE=1")
		args = append(args, "--filter=blob:none")
	}
	args = append(args, url, target)

	cmd := exec.CommandContext(ctx, r.gitBin, args...)
	cmd.Env = env
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Drop a partial clone so the next run retries from scratch
		os.RemoveAll(target)
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("failed to clone %s: %s", url, msg)
	}

	return nil
}
