package overlay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/isomer/internal/fsops"
)

func TestOpenWorkTree_RequiresExistingDirectory(t *testing.T) {
	fsys := fsops.NewRealFS()

	if _, err := OpenWorkTree(fsys, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}

	dir := t.TempDir()
	tree, err := OpenWorkTree(fsys, dir)
	if err != nil {
		t.Fatalf("OpenWorkTree() error = %v", err)
	}
	if tree.Path() != dir {
		t.Errorf("Path() = %q, want %q", tree.Path(), dir)
	}
}

func TestWorkTree_CleanEmptiesWithoutRemovingRoot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "file"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub/deeper"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("/nowhere", filepath.Join(dir, "dangling")); err != nil {
		t.Fatal(err)
	}

	tree, err := OpenWorkTree(fsops.NewRealFS(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := tree.Clean(); err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("working directory removed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("directory not empty after Clean: %v", entries)
	}
}

func TestWorkTree_CloseLeavesOpenedTree(t *testing.T) {
	dir := t.TempDir()
	tree, err := OpenWorkTree(fsops.NewRealFS(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := tree.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("caller-supplied directory was removed: %v", err)
	}
}

func TestWorkTree_EphemeralRemovedOnClose(t *testing.T) {
	tree, err := NewEphemeralWorkTree(fsops.NewRealFS())
	if err != nil {
		t.Fatalf("NewEphemeralWorkTree() error = %v", err)
	}
	dir := tree.Path()
	if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := tree.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("ephemeral directory still present: %v", err)
	}

	// Close is idempotent
	if err := tree.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
