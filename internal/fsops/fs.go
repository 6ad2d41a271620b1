// Package fsops provides filesystem operations with safety guarantees.
//
// All filesystem mutations performed while staging a working tree go
// through the FS interface, which keeps the overlay engine testable and
// funnels path handling through a single place.
//
// Key features:
//   - Atomic writes using temp file + rename
//   - Path validation for relative paths
//   - Symlink-aware operations
//   - Testable via the FS interface
package fsops

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FS provides an abstraction for filesystem operations.
// All working-tree mutations must go through this interface.
type FS interface {
	// Lstat returns file info without following symlinks.
	Lstat(path string) (os.FileInfo, error)

	// ReadDir reads the entries of a directory.
	ReadDir(path string) ([]os.DirEntry, error)

	// Mkdir creates a single directory.
	Mkdir(path string, perm os.FileMode) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// Remove removes a file, symlink, or empty directory.
	Remove(path string) error

	// RemoveAll removes a path and all its contents.
	RemoveAll(path string) error

	// Symlink creates a symbolic link at newname pointing at oldname.
	Symlink(oldname, newname string) error

	// WalkDir walks the file tree rooted at root.
	WalkDir(root string, fn fs.WalkDirFunc) error

	// AtomicWrite writes data to path atomically using temp file + rename.
	AtomicWrite(path string, data []byte, perm os.FileMode) error
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// Lstat returns file info without following symlinks.
func (fsys *RealFS) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// ReadDir reads the entries of a directory.
func (fsys *RealFS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// Mkdir creates a single directory.
func (fsys *RealFS) Mkdir(path string, perm os.FileMode) error {
	return os.Mkdir(path, perm)
}

// MkdirAll creates a directory and all parent directories.
func (fsys *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove removes a file, symlink, or empty directory.
func (fsys *RealFS) Remove(path string) error {
	return os.Remove(path)
}

// RemoveAll removes a path and all its contents.
func (fsys *RealFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// Symlink creates a symbolic link at newname pointing at oldname.
func (fsys *RealFS) Symlink(oldname, newname string) error {
	return os.Symlink(oldname, newname)
}

// WalkDir walks the file tree rooted at root.
func (fsys *RealFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

// AtomicWrite writes data to path atomically using temp file + rename.
func (fsys *RealFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	// Create parent directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	// Create temp file in the same directory as target
	tmpFile, err := os.CreateTemp(dir, ".isomer-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	// Atomically rename temp file to target
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	// Success - don't clean up temp file
	tmpFile = nil
	return nil
}

// ValidateRelPath validates a relative path for safety.
// Returns an error if the path is invalid or would escape the tree root.
func ValidateRelPath(relPath string) error {
	// Clean the path first
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	// Reject empty or current directory
	if cleaned == "" || cleaned == "." {
		return fmt.Errorf("invalid path: empty or current directory")
	}

	// Reject absolute paths
	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid path: must be relative, got absolute path %q", cleaned)
	}

	// Reject path traversal attempts
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("invalid path: path traversal not allowed in %q", cleaned)
	}

	return nil
}
