package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FroogalTheDragon/devclean/internal/core"
)

const pycacheDir = "__pycache__"

// AnalyzeProject resolves the cleanable directories of a project of the given
// kind, measures them, and stamps the project's last-modified time. Empty
// artifact directories are left out. It fails only when the project root
// itself cannot be stat'd.
func AnalyzeProject(root string, kind Kind) (ScannedProject, error) {
	modified, err := lastModified(root, kind)
	if err != nil {
		return ScannedProject{}, fmt.Errorf("analyze %s: %w", root, err)
	}

	targets := make([]CleanTarget, 0, len(kind.CleanableDirs()))
	seen := make(map[string]bool)

	for _, pattern := range kind.CleanableDirs() {
		for _, c := range resolvePattern(root, pattern) {
			if seen[c.Path] {
				continue
			}
			seen[c.Path] = true
			if size := DirSize(c.Path); size > 0 {
				c.SizeBytes = size
				targets = append(targets, c)
			}
		}
	}

	if kind == Python {
		targets = append(targets, findPycache(root, seen)...)
	}

	var total int64
	for _, t := range targets {
		total += t.SizeBytes
	}

	return ScannedProject{
		Path:                root,
		Kind:                kind,
		Name:                projectName(root),
		LastModified:        modified,
		CleanTargets:        targets,
		TotalCleanableBytes: total,
	}, nil
}

func projectName(root string) string {
	name := filepath.Base(root)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return root
	}
	return name
}

// resolvePattern turns one cleanable-dir pattern into existing directories
// (size not yet measured). Globs only look at root's direct children.
func resolvePattern(root, pattern string) []CleanTarget {
	if isGlob(pattern) {
		suffix := strings.TrimPrefix(pattern, "*")
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil
		}
		var out []CleanTarget
		for _, e := range entries {
			if !e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
				continue
			}
			path := filepath.Join(root, e.Name())
			if core.IsReparsePoint(path) {
				continue
			}
			out = append(out, CleanTarget{Path: path, Name: e.Name()})
		}
		return out
	}

	// Every element of a nested pattern must be a real directory.
	path := filepath.Join(root, filepath.FromSlash(pattern))
	if err := core.CheckContained(root, path); err != nil {
		return nil
	}
	return []CleanTarget{{Path: path, Name: pattern}}
}

// findPycache collects every non-empty __pycache__ below root, at any depth,
// skipping deny-listed directories. Paths already in seen are not repeated.
// Each target is named by its slash-separated path relative to root.
func findPycache(root string, seen map[string]bool) []CleanTarget {
	var out []CleanTarget

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() || path == root {
			return nil
		}
		name := d.Name()
		if name == pycacheDir {
			if !seen[path] {
				seen[path] = true
				if size := DirSize(path); size > 0 {
					rel, relErr := filepath.Rel(root, path)
					if relErr != nil {
						rel = path
					}
					out = append(out, CleanTarget{Path: path, Name: filepath.ToSlash(rel), SizeBytes: size})
				}
			}
			return filepath.SkipDir
		}
		if isSkipDir(name) || core.IsReparsePoint(path) {
			return filepath.SkipDir
		}
		return nil
	})

	return out
}

// lastModified is the newest mtime among the kind's exact-name markers in
// root, or root's own mtime when none of them can be stat'd.
func lastModified(root string, kind Kind) (time.Time, error) {
	var latest time.Time
	for _, marker := range kind.Markers() {
		if isGlob(marker) || isNested(marker) {
			continue
		}
		info, err := os.Stat(filepath.Join(root, marker))
		if err != nil {
			continue
		}
		if mt := info.ModTime(); mt.After(latest) {
			latest = mt
		}
	}
	if !latest.IsZero() {
		return latest, nil
	}

	info, err := os.Stat(root)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
