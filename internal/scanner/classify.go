package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

// DetectKind returns the kind of project rooted at dir, if any. Kinds are
// tried in priority order and the first one with a matching marker wins.
// Only dir's direct entries are inspected, plus fixed nested marker paths.
func DetectKind(dir string) (Kind, bool) {
	// Glob markers all need the same listing; read it lazily, at most once.
	var names []string
	listed := false
	list := func() []string {
		if !listed {
			names = childNames(dir)
			listed = true
		}
		return names
	}

	for k := Kind(0); k < numKinds; k++ {
		for _, marker := range kindSpecs[k].markers {
			if markerExists(dir, marker, list) {
				return k, true
			}
		}
	}
	return 0, false
}

// markerExists checks one marker pattern against dir.
func markerExists(dir, marker string, list func() []string) bool {
	switch {
	case isGlob(marker):
		suffix := strings.TrimPrefix(marker, "*")
		for _, name := range list() {
			if strings.HasSuffix(name, suffix) {
				return true
			}
		}
		return false

	case isNested(marker):
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(marker)))
		return err == nil

	default:
		// Stat follows symlinks: a link to a regular file counts.
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.Mode().IsRegular()
	}
}

func isGlob(pattern string) bool {
	return strings.HasPrefix(pattern, "*")
}

func isNested(pattern string) bool {
	return strings.Contains(pattern, "/")
}

// childNames lists the names of dir's direct entries; unreadable dirs yield none.
func childNames(dir string) []string {
	f, err := os.Open(dir)
	if err != nil {
		return nil
	}
	defer f.Close()

	names, _ := f.Readdirnames(-1)
	return names
}
