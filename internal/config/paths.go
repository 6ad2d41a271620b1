// Package config resolves flavor names to configuration file paths.
//
// A flavor is looked up in three places, in order: as an explicit file
// path, as a .cfg file in the current working directory, and as a .cfg
// file in the configuration directory. The configuration directory
// defaults to /etc/isomer and can be overridden with ISOMER_CFG_DIR.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultCfgDir is the fallback configuration directory.
	DefaultCfgDir = "/etc/isomer"

	// EnvCfgDir overrides the configuration directory.
	EnvCfgDir = "ISOMER_CFG_DIR"

	cfgExt = ".cfg"
)

// ErrFlavorNotFound indicates a flavor name resolved to no config file.
var ErrFlavorNotFound = errors.New("unable to locate flavor")

// CfgDir returns the configuration directory, honoring ISOMER_CFG_DIR.
func CfgDir() string {
	if dir := os.Getenv(EnvCfgDir); dir != "" {
		return dir
	}
	return DefaultCfgDir
}

// LocateFlavor resolves a flavor name or path to a config file path.
func LocateFlavor(flavor string) (string, error) {
	// An explicit path to a file wins
	if isRegularFile(flavor) {
		return flavor, nil
	}

	name := withCfgExt(filepath.Base(flavor))

	// A .cfg file in the current working directory
	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, name)
		if isRegularFile(candidate) {
			return candidate, nil
		}
	}

	// A .cfg file in the configuration directory
	candidate := filepath.Join(CfgDir(), name)
	if isRegularFile(candidate) {
		return candidate, nil
	}

	return "", fmt.Errorf("%w: %s", ErrFlavorNotFound, flavor)
}

// withCfgExt replaces any existing extension with .cfg.
func withCfgExt(name string) string {
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return name + cfgExt
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
