package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanDropsProjectsWithoutArtifacts(t *testing.T) {
	root := newTree(t, map[string]string{
		"web/package.json":                "{}",
		"web/node_modules/react/index.js": "module.exports = {}",
		"cli/Cargo.toml":                  "[package]",
	})

	projects, err := Scan(root, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, Node, projects[0].Kind)
	assert.Equal(t, filepath.Join(root, "web"), projects[0].Path)
	assert.Equal(t, []string{"node_modules"}, projects[0].TargetNames())
}

func TestScanRustScenario(t *testing.T) {
	root := newTree(t, map[string]string{
		"proj/Cargo.toml":       "[package]",
		"proj/target/debug/app": "0123456789abcdef\n",
	})

	projects, err := Scan(root, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "proj", projects[0].Name)
	assert.Equal(t, int64(17), projects[0].TotalCleanableBytes)
}

func TestScanInvalidRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"), DefaultOptions())
	assert.True(t, errors.Is(err, ErrInvalidRoot))

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = Scan(file, DefaultOptions())
	assert.True(t, errors.Is(err, ErrInvalidRoot))
}

func TestScanFilters(t *testing.T) {
	root := newTree(t, map[string]string{
		"a/package.json":      "{}",
		"a/node_modules/x.js": "x",
		"b/package.json":      "{}",
		"b/node_modules/y.js": "y",
		"c/Cargo.toml":        "",
		"c/target/out":        "zz",
	})

	t.Run("ignore paths", func(t *testing.T) {
		opts := DefaultOptions()
		opts.IgnorePaths = []string{filepath.Join(root, "a"), filepath.Join(root, "does-not-exist")}
		projects, err := Scan(root, opts)
		require.NoError(t, err)
		assert.Len(t, projects, 2)
		_, found := projectByPath(projects, filepath.Join(root, "a"))
		assert.False(t, found)
	})

	t.Run("ignore path given relative", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		rel, err := filepath.Rel(wd, filepath.Join(root, "b"))
		if err != nil {
			t.Skip("temp dir not relative to working directory")
		}
		opts := DefaultOptions()
		opts.IgnorePaths = []string{rel}
		projects, err := Scan(root, opts)
		require.NoError(t, err)
		_, found := projectByPath(projects, filepath.Join(root, "b"))
		assert.False(t, found)
	})

	t.Run("exclude kinds", func(t *testing.T) {
		opts := DefaultOptions()
		opts.ExcludeKinds = []Kind{Node}
		projects, err := Scan(root, opts)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, Rust, projects[0].Kind)
	})

	t.Run("depth bound", func(t *testing.T) {
		opts := DefaultOptions()
		opts.MaxDepth = 0
		projects, err := Scan(root, opts)
		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}

func TestScanSymlinkedTreeCountedOnce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}
	root := newTree(t, map[string]string{
		"real/Cargo.toml":   "",
		"real/target/a.out": "abc",
	})
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "alias")))

	projects, err := Scan(root, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, filepath.Join(root, "real"), projects[0].Path)
}

func TestScanProgressAndWorkers(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"p1", "p2", "p3", "p4", "p5"} {
		files[name+"/go.mod"] = "module x"
		files[name+"/package.json"] = "{}"
		files[name+"/dist/app.js"] = "js"
	}
	root := newTree(t, files)

	var (
		mu     sync.Mutex
		phases = map[Phase]int{}
		last   Progress
	)
	opts := DefaultOptions()
	opts.Workers = 2
	opts.Progress = func(p Progress) {
		mu.Lock()
		defer mu.Unlock()
		phases[p.Phase]++
		last = p
	}

	projects, err := Scan(root, opts)
	require.NoError(t, err)
	assert.Len(t, projects, 5)
	assert.Equal(t, 5, phases[PhaseAnalyze])
	assert.Equal(t, PhaseDone, last.Phase)
	assert.Equal(t, 5, last.Analyzed)
	for _, p := range projects {
		assert.Equal(t, Node, p.Kind)
	}
}

func TestScanIsRepeatable(t *testing.T) {
	root := newTree(t, map[string]string{
		"x/pom.xml":         "",
		"x/build.gradle":    "",
		"x/target/app.jar":  "jar",
		"y/mix.exs":         "",
		"y/deps/dep/lib.ex": "defmodule",
	})

	first, err := Scan(root, DefaultOptions())
	require.NoError(t, err)
	second, err := Scan(root, DefaultOptions())
	require.NoError(t, err)

	SortBySize(first)
	SortBySize(second)
	assert.Equal(t, first, second)
}

func TestSortBySize(t *testing.T) {
	projects := []ScannedProject{
		{Path: "/b", TotalCleanableBytes: 10},
		{Path: "/a", TotalCleanableBytes: 10},
		{Path: "/c", TotalCleanableBytes: 99},
	}
	SortBySize(projects)
	assert.Equal(t, "/c", projects[0].Path)
	assert.Equal(t, "/a", projects[1].Path)
	assert.Equal(t, "/b", projects[2].Path)
}

func TestFilterOlderThan(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	projects := []ScannedProject{
		{Path: "/old", LastModified: now.Add(-60 * 24 * time.Hour)},
		{Path: "/new", LastModified: now.Add(-2 * 24 * time.Hour)},
	}
	kept := FilterOlderThan(projects, 30*24*time.Hour, now)
	require.Len(t, kept, 1)
	assert.Equal(t, "/old", kept[0].Path)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]ScannedProject{
		{Kind: Node, TotalCleanableBytes: 100},
		{Kind: Rust, TotalCleanableBytes: 300},
		{Kind: Node, TotalCleanableBytes: 50},
	})
	assert.Equal(t, 3, s.TotalProjects)
	assert.Equal(t, int64(450), s.TotalBytes)
	require.Len(t, s.ByKind, 2)
	assert.Equal(t, KindSummary{Kind: Rust, Projects: 1, Bytes: 300}, s.ByKind[0])
	assert.Equal(t, KindSummary{Kind: Node, Projects: 2, Bytes: 150}, s.ByKind[1])

	empty := Summarize(nil)
	assert.Zero(t, empty.TotalProjects)
	assert.NotNil(t, empty.ByKind)
}
