package overlay

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/isomer/internal/fsops"
)

// WorkTree is the staging directory the overlay engine populates and the
// mastering tool consumes. It is a scoped resource: a tree created with
// NewEphemeralWorkTree is removed by Close, while a caller-supplied tree
// opened with OpenWorkTree is left in place.
type WorkTree struct {
	fs        fsops.FS
	path      string
	ephemeral bool
}

// OpenWorkTree wraps an existing, caller-owned directory. The directory
// must already exist; its contents are fair game but the directory itself
// is never removed, so a mount point or permission-bearing directory
// survives.
func OpenWorkTree(fsys fsops.FS, path string) (*WorkTree, error) {
	info, err := fsys.Lstat(path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("working directory does not exist: %q", path)
	}
	return &WorkTree{fs: fsys, path: path}, nil
}

// NewEphemeralWorkTree creates a temporary working directory owned by the
// returned WorkTree. Close removes it.
func NewEphemeralWorkTree(fsys fsops.FS) (*WorkTree, error) {
	dir, err := os.MkdirTemp("", "isomer-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}
	return &WorkTree{fs: fsys, path: dir, ephemeral: true}, nil
}

// Path returns the working directory path.
func (w *WorkTree) Path() string {
	return w.path
}

// Join returns relPath resolved under the working directory.
func (w *WorkTree) Join(relPath string) string {
	return filepath.Join(w.path, filepath.FromSlash(relPath))
}

// Clean empties the working directory without otherwise changing it.
// Files and symlinks are unlinked, directories removed recursively.
func (w *WorkTree) Clean() error {
	entries, err := w.fs.ReadDir(w.path)
	if err != nil {
		return fmt.Errorf("failed to read working directory %s: %w", w.path, err)
	}
	for _, entry := range entries {
		full := filepath.Join(w.path, entry.Name())
		if entry.IsDir() {
			err = w.fs.RemoveAll(full)
		} else {
			err = w.fs.Remove(full)
		}
		if err != nil {
			return fmt.Errorf("failed to clean %s: %w", full, err)
		}
	}
	return nil
}

// Close releases the working tree. Ephemeral trees are removed; opened
// trees are untouched. Close is safe to call more than once.
func (w *WorkTree) Close() error {
	if !w.ephemeral || w.path == "" {
		return nil
	}
	path := w.path
	w.path = ""
	if err := w.fs.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove working directory %s: %w", path, err)
	}
	return nil
}
