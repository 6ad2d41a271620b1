package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("volume_id = 'X'\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(old)
	})
}

func TestCfgDir(t *testing.T) {
	t.Setenv(EnvCfgDir, "")
	if got := CfgDir(); got != DefaultCfgDir {
		t.Errorf("CfgDir() = %q, want %q", got, DefaultCfgDir)
	}

	t.Setenv(EnvCfgDir, "/custom/dir")
	if got := CfgDir(); got != "/custom/dir" {
		t.Errorf("CfgDir() = %q, want /custom/dir", got)
	}
}

func TestLocateFlavor_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.conf")
	writeFile(t, path)

	got, err := LocateFlavor(path)
	if err != nil {
		t.Fatalf("LocateFlavor() error = %v", err)
	}
	if got != path {
		t.Errorf("LocateFlavor() = %q, want %q", got, path)
	}
}

func TestLocateFlavor_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "rhel9.cfg"))
	chdir(t, dir)
	t.Setenv(EnvCfgDir, filepath.Join(dir, "no-such-dir"))

	got, err := LocateFlavor("rhel9")
	if err != nil {
		t.Fatalf("LocateFlavor() error = %v", err)
	}
	if filepath.Base(got) != "rhel9.cfg" {
		t.Errorf("LocateFlavor() = %q", got)
	}
}

func TestLocateFlavor_ConfigDirectory(t *testing.T) {
	cfgDir := t.TempDir()
	writeFile(t, filepath.Join(cfgDir, "rhel9.cfg"))
	t.Setenv(EnvCfgDir, cfgDir)
	chdir(t, t.TempDir()) // empty cwd so the cfg dir is reached

	got, err := LocateFlavor("rhel9")
	if err != nil {
		t.Fatalf("LocateFlavor() error = %v", err)
	}
	if got != filepath.Join(cfgDir, "rhel9.cfg") {
		t.Errorf("LocateFlavor() = %q", got)
	}
}

func TestLocateFlavor_CwdWinsOverConfigDir(t *testing.T) {
	cwd := t.TempDir()
	cfgDir := t.TempDir()
	writeFile(t, filepath.Join(cwd, "rhel9.cfg"))
	writeFile(t, filepath.Join(cfgDir, "rhel9.cfg"))
	t.Setenv(EnvCfgDir, cfgDir)
	chdir(t, cwd)

	got, err := LocateFlavor("rhel9")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(cwd, "rhel9.cfg") {
		t.Errorf("LocateFlavor() = %q, want the cwd copy", got)
	}
}

func TestLocateFlavor_ReplacesExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "rhel9.cfg"))
	chdir(t, dir)
	t.Setenv(EnvCfgDir, filepath.Join(dir, "no-such-dir"))

	got, err := LocateFlavor("rhel9.flavor")
	if err != nil {
		t.Fatalf("LocateFlavor() error = %v", err)
	}
	if filepath.Base(got) != "rhel9.cfg" {
		t.Errorf("LocateFlavor() = %q", got)
	}
}

func TestLocateFlavor_NotFound(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvCfgDir, filepath.Join(t.TempDir(), "no-such-dir"))

	_, err := LocateFlavor("nope")
	if !errors.Is(err, ErrFlavorNotFound) {
		t.Fatalf("error = %v, want ErrFlavorNotFound", err)
	}
}
