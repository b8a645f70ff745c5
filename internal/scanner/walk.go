package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/FroogalTheDragon/devclean/internal/core"
)

// NoDepthLimit disables the walker's depth bound.
const NoDepthLimit = -1

// progressInterval is how many visited directories pass between progress ticks.
const progressInterval = 200

// skipDirs are directory names never descended into: VCS metadata, dependency
// caches and build output. Checked on every directory, so kept as a set.
var skipDirs = map[string]struct{}{
	".git":                {},
	".hg":                 {},
	".svn":                {},
	"node_modules":        {},
	".next":               {},
	".nuxt":               {},
	".cache":              {},
	"target":              {},
	".venv":               {},
	"venv":                {},
	"__pycache__":         {},
	".tox":                {},
	".mypy_cache":         {},
	".pytest_cache":       {},
	".gradle":             {},
	"cmake-build-debug":   {},
	"cmake-build-release": {},
	"_build":              {},
	".dart_tool":          {},
	"Library":             {}, // Unity
	".terraform":          {},
	".godot":              {},
	".stack-work":         {},
	".build":              {},
	"zig-cache":           {},
	"zig-out":             {},
}

func isSkipDir(name string) bool {
	_, ok := skipDirs[name]
	return ok
}

// ShouldPrune reports whether the walker must not descend into a directory
// called name at the given depth. The root (depth 0) is never pruned; below
// it, deny-listed names and hidden directories are.
func ShouldPrune(name string, depth int) bool {
	if depth == 0 {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	return isSkipDir(name)
}

// Candidate is a directory the classifier recognised as a project root.
type Candidate struct {
	Path string
	Kind Kind
}

// Phase names a stage of the scan pipeline for progress reporting.
type Phase string

const (
	PhaseWalk    Phase = "walk"
	PhaseAnalyze Phase = "analyze"
	PhaseDone    Phase = "done"
)

// Progress is a progress snapshot. It never influences results.
type Progress struct {
	Phase      Phase
	Dirs       int
	Candidates int
	Analyzed   int
}

// ProgressFunc receives progress events. During the analyze phase it is
// called from worker goroutines and must be safe for concurrent use.
type ProgressFunc func(Progress)

// FindProjectRoots walks root depth-first without following symlinks and
// returns every directory the classifier recognises. Classified directories
// are still descended into so nested projects are found too. maxDepth counts
// edges from root; NoDepthLimit walks the whole tree. Unreadable entries are
// skipped.
func FindProjectRoots(root string, maxDepth int, progress ProgressFunc, log logrus.FieldLogger) []Candidate {
	if log == nil {
		log = logrus.StandardLogger()
	}

	var candidates []Candidate
	dirs := 0

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithError(err).WithField("path", path).Debug("skipping unreadable entry")
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		depth := depthOf(root, path)
		if ShouldPrune(d.Name(), depth) {
			return filepath.SkipDir
		}
		if depth > 0 && core.IsReparsePoint(path) {
			log.WithField("path", path).Debug("skipping junction")
			return filepath.SkipDir
		}

		dirs++
		if progress != nil && dirs%progressInterval == 0 {
			progress(Progress{Phase: PhaseWalk, Dirs: dirs, Candidates: len(candidates)})
		}

		if kind, ok := DetectKind(path); ok {
			candidates = append(candidates, Candidate{Path: path, Kind: kind})
		}

		if maxDepth >= 0 && depth >= maxDepth {
			return filepath.SkipDir
		}
		return nil
	})

	if progress != nil {
		progress(Progress{Phase: PhaseWalk, Dirs: dirs, Candidates: len(candidates)})
	}
	return candidates
}

// depthOf returns the number of path elements between root and path.
func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
