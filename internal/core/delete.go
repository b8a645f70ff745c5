package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	// ErrProtectedPath is returned when asked to delete a path on the never-delete list.
	ErrProtectedPath = errors.New("refusing to delete protected path")

	// ErrSymlink is returned when the path is a symlink or reparse point.
	ErrSymlink = errors.New("path is a symbolic link")

	// ErrNotDirectory is returned when the path is not a directory.
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrOutsideRoot is returned when a path does not lie below the expected root.
	ErrOutsideRoot = errors.New("path is outside the project root")
)

// NeverDeletePaths returns paths that must never be removed no matter what a
// scan reported: filesystem roots, the home directory and the user config directory.
func NeverDeletePaths() []string {
	paths := []string{string(filepath.Separator)}

	if runtime.GOOS == "windows" {
		if d := os.Getenv("SYSTEMDRIVE"); d != "" {
			paths = append(paths, d+`\`)
		}
		if w := os.Getenv("WINDIR"); w != "" {
			paths = append(paths, w)
		}
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, home)
	}
	if cfg, err := os.UserConfigDir(); err == nil && cfg != "" {
		paths = append(paths, cfg)
	}
	return paths
}

// IsProtected reports whether path is one of NeverDeletePaths.
func IsProtected(path string) bool {
	clean := filepath.Clean(path)
	for _, p := range NeverDeletePaths() {
		if samePath(clean, filepath.Clean(p)) {
			return true
		}
	}
	return false
}

func samePath(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// CheckRealDir returns nil when path is a directory reached without following
// a link. It returns the Lstat error, ErrSymlink or ErrNotDirectory otherwise.
func CheckRealDir(path string) error {
	// Lstat so a target replaced by a link is caught rather than followed.
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 || IsReparsePoint(path) {
		return ErrSymlink
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}
	return nil
}

// CheckContained verifies that path lies strictly below root and that every
// element between them, path included, is a real directory. Root itself is
// trusted. A link anywhere on the way fails with ErrSymlink.
func CheckContained(root, path string) error {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil || rel == "." || filepath.IsAbs(rel) ||
		rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ErrOutsideRoot
	}

	current := filepath.Clean(root)
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		current = filepath.Join(current, part)
		if err := CheckRealDir(current); err != nil {
			return err
		}
	}
	return nil
}

// SafeDelete recursively removes the directory at path. The path must exist,
// must be a real directory (not a symlink or junction), and must not be
// protected. Only the last element is inspected; use SafeDeleteWithin when the
// parents must not be links either. In dryRun mode the checks run but nothing
// is removed.
func SafeDelete(path string, dryRun bool) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	if IsProtected(path) {
		return ErrProtectedPath
	}
	if err := CheckRealDir(path); err != nil {
		return err
	}

	if dryRun {
		return nil
	}
	return os.RemoveAll(path)
}

// SafeDeleteWithin is SafeDelete for a path that must stay inside root, with
// no link between root and path.
func SafeDeleteWithin(root, path string, dryRun bool) error {
	if err := CheckContained(root, path); err != nil {
		return err
	}
	return SafeDelete(path, dryRun)
}
