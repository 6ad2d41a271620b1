// Package overlay composes a working directory tree from a source tree
// plus a flavor's include/exclude/override rules.
//
// The engine never copies payload data: files surface in the working tree
// as symlinks back to the source (or to an include override's target), so
// content and permissions pass through transparently and large payloads
// are not duplicated. Only directories and the optional rendered boot
// menu are created in place.
package overlay

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/danieljhkim/isomer/internal/flavor"
	"github.com/danieljhkim/isomer/internal/fsops"
)

const dirMode = 0755

// Engine builds working trees. It holds no per-run state; the same engine
// may populate any number of trees sequentially. Concurrent populates of
// the same tree are not supported.
type Engine struct {
	fs  fsops.FS
	log zerolog.Logger
}

// New creates an Engine using fsys for all mutations and log for progress
// messages.
func New(fsys fsops.FS, log zerolog.Logger) *Engine {
	return &Engine{fs: fsys, log: log}
}

// Populate clears tree and rebuilds it from source under spec's rules.
//
// Every entry of the source walk is resolved with first-match-wins
// precedence: an exclude pattern skips the entry (and prunes descent for
// directories), an include override replaces it with a symlink to the
// override target (consuming the override, and pruning descent for
// directories), and otherwise directories are created and files become
// symlinks to their source. Include entries never visited by the walk are
// materialized afterwards with parents auto-created. Finally the grub
// template, if any, is rendered into the tree.
//
// A failed Populate leaves the tree partially populated; clearing happens
// only at the start of the next run.
func (e *Engine) Populate(tree *WorkTree, spec *flavor.Spec, source string) error {
	source, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("failed to resolve source directory: %w", err)
	}
	info, err := e.fs.Lstat(source)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("source directory does not exist: %q", source)
	}

	if err := tree.Clean(); err != nil {
		return err
	}

	// The spec is read-only; consume overrides from a copy.
	pending := make(map[string]string, len(spec.Include))
	for k, v := range spec.Include {
		pending[k] = v
	}

	err = e.fs.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if path == source {
			return nil
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		excluded, err := MatchAny(spec.Exclude, rel)
		if err != nil {
			return err
		}
		if excluded {
			if d.IsDir() {
				e.log.Info().Str("path", rel).Msg("excluded directory")
				return fs.SkipDir
			}
			e.log.Info().Str("path", rel).Msg("excluded file")
			return nil
		}

		if target, ok := pending[rel]; ok {
			delete(pending, rel)
			if err := e.fs.Symlink(target, tree.Join(rel)); err != nil {
				return fmt.Errorf("failed to link %s: %w", rel, err)
			}
			e.log.Info().Str("path", rel).Str("target", target).Msg("linked override")
			if d.IsDir() {
				// The override replaces the whole subtree.
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if err := e.fs.Mkdir(tree.Join(rel), dirMode); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", rel, err)
			}
			e.log.Info().Str("path", rel).Msg("created directory")
			return nil
		}

		if err := e.fs.Symlink(path, tree.Join(rel)); err != nil {
			return fmt.Errorf("failed to link %s: %w", rel, err)
		}
		e.log.Info().Str("path", rel).Str("target", path).Msg("linked")
		return nil
	})
	if err != nil {
		return err
	}

	if err := e.materializeRemaining(tree, pending); err != nil {
		return err
	}

	if spec.GrubTemplate != "" {
		return e.renderGrub(tree, spec)
	}
	return nil
}

// materializeRemaining creates symlinks for include entries whose paths
// were never visited during the walk, letting a flavor inject files and
// directories that do not exist in the source at all.
func (e *Engine) materializeRemaining(tree *WorkTree, pending map[string]string) error {
	rels := make([]string, 0, len(pending))
	for rel := range pending {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	for _, rel := range rels {
		target := pending[rel]
		link := tree.Join(rel)
		if err := e.fs.MkdirAll(filepath.Dir(link), dirMode); err != nil {
			return fmt.Errorf("failed to create parent directories for %s: %w", rel, err)
		}
		if err := e.fs.Symlink(target, link); err != nil {
			return fmt.Errorf("failed to link %s: %w", rel, err)
		}
		e.log.Info().Str("path", rel).Str("target", target).Msg("linked")
	}
	return nil
}

// renderGrub renders the boot menu template into the tree. An unresolved
// template field is logged and degrades to no file written rather than
// failing the run; a filesystem failure still aborts.
func (e *Engine) renderGrub(tree *WorkTree, spec *flavor.Spec) error {
	e.log.Info().Str("path", flavor.GrubRelPath).Msg("generating boot menu")

	rendered, err := RenderTemplate(spec.GrubTemplate, spec.Fields)
	if err != nil {
		e.log.Error().Err(err).Msg("skipping boot menu generation")
		return nil
	}
	if err := e.fs.AtomicWrite(tree.Join(flavor.GrubRelPath), []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write boot menu: %w", err)
	}
	return nil
}
