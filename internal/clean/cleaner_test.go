package clean

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FroogalTheDragon/devclean/internal/scanner"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// snapshot lists every path under root with its mode and size.
func snapshot(t *testing.T, root string) []string {
	t.Helper()
	var entries []string
	require.NoError(t, filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		entries = append(entries, fmt.Sprintf("%s:%s:%d", rel, info.Mode(), info.Size()))
		return nil
	}))
	sort.Strings(entries)
	return entries
}

func analyze(t *testing.T, root string, kind scanner.Kind) scanner.ScannedProject {
	t.Helper()
	p, err := scanner.AnalyzeProject(root, kind)
	require.NoError(t, err)
	return p
}

func TestCleanProjectRemovesTargets(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Cargo.toml":       "[package]",
		"target/debug/app": "0123456789abcdef\n",
	})
	project := analyze(t, root, scanner.Rust)

	result, err := CleanProject(project, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TargetsCleaned)
	assert.Equal(t, int64(17), result.BytesFreed)
	assert.Empty(t, result.Errors)
	assert.False(t, result.Failed())

	assert.NoDirExists(t, filepath.Join(root, "target"))
	assert.FileExists(t, filepath.Join(root, "Cargo.toml"))
}

func TestCleanProjectIsIdempotent(t *testing.T) {
	root := writeTree(t, map[string]string{
		"setup.py":                       "",
		"__pycache__/a.pyc":              "aaaa",
		"pkg/sub/deep/__pycache__/b.pyc": "bb",
		".venv/bin/python":               "elf",
	})
	project := analyze(t, root, scanner.Python)
	require.Len(t, project.CleanTargets, 3)

	_, err := CleanProject(project, false)
	require.NoError(t, err)

	again := analyze(t, root, scanner.Python)
	assert.Empty(t, again.CleanTargets)
	assert.Zero(t, again.TotalCleanableBytes)
	assert.NoDirExists(t, filepath.Join(root, "pkg", "sub", "deep", "__pycache__"))
	assert.DirExists(t, filepath.Join(root, "pkg", "sub", "deep"))
}

func TestCleanProjectDryRunTouchesNothing(t *testing.T) {
	root := writeTree(t, map[string]string{
		"package.json":      "{}",
		"node_modules/a.js": "aaa",
		"dist/out.js":       "o",
		".cache/blob":       "cc",
	})
	project := analyze(t, root, scanner.Node)
	before := snapshot(t, root)

	result, err := CleanProject(project, true)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TargetsCleaned)
	assert.Equal(t, project.TotalCleanableBytes, result.BytesFreed)
	assert.Equal(t, before, snapshot(t, root))
}

func TestCleanProjectContinuesPastFailures(t *testing.T) {
	root := writeTree(t, map[string]string{
		"package.json":      "{}",
		"node_modules/a.js": "aaa",
		"dist/out.js":       "o",
		"stray.txt":         "not a dir",
	})
	project := analyze(t, root, scanner.Node)
	project.CleanTargets = append([]scanner.CleanTarget{
		{Path: filepath.Join(root, "vanished"), Name: "vanished", SizeBytes: 100},
		{Path: filepath.Join(root, "stray.txt"), Name: "stray.txt", SizeBytes: 9},
	}, project.CleanTargets...)

	result, err := CleanProject(project, false)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TargetsCleaned)
	assert.Equal(t, int64(4), result.BytesFreed)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], filepath.Join(root, "vanished"))
	assert.Contains(t, result.Errors[1], filepath.Join(root, "stray.txt"))
	assert.True(t, result.Failed())
	assert.FileExists(t, filepath.Join(root, "stray.txt"))
}

func TestCleanProjectRefusesSymlinkTarget(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}
	outside := writeTree(t, map[string]string{"precious/data": "keep me"})
	root := writeTree(t, map[string]string{"Cargo.toml": ""})
	link := filepath.Join(root, "target")
	require.NoError(t, os.Symlink(filepath.Join(outside, "precious"), link))

	project := scanner.ScannedProject{
		Path:         root,
		Name:         "swapped",
		Kind:         scanner.Rust,
		CleanTargets: []scanner.CleanTarget{{Path: link, Name: "target", SizeBytes: 7}},
	}
	result, err := CleanProject(project, false)
	require.NoError(t, err)
	assert.Zero(t, result.TargetsCleaned)
	require.Len(t, result.Errors, 1)
	assert.FileExists(t, filepath.Join(outside, "precious", "data"))
}

func TestCleanProjectRefusesTargetBehindLinkedParent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}
	shared := writeTree(t, map[string]string{"bundle/gems/x.rb": "01234567"})
	root := writeTree(t, map[string]string{"Gemfile": ""})
	require.NoError(t, os.Symlink(shared, filepath.Join(root, "vendor")))

	target := filepath.Join(root, "vendor", "bundle")
	project := scanner.ScannedProject{
		Path:         root,
		Name:         "app",
		Kind:         scanner.Ruby,
		CleanTargets: []scanner.CleanTarget{{Path: target, Name: "vendor/bundle", SizeBytes: 8}},
	}
	results := CleanProjects([]scanner.ScannedProject{project}, false)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].TargetsCleaned)
	assert.Zero(t, results[0].BytesFreed)
	require.Len(t, results[0].Errors, 1)
	assert.Contains(t, results[0].Errors[0], "failed to remove "+target)
	assert.FileExists(t, filepath.Join(shared, "bundle", "gems", "x.rb"))
}

func TestCleanProjectsLinkedRootIsTopLevelError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}
	outside := writeTree(t, map[string]string{"target/debug/app": "binary"})
	base := writeTree(t, map[string]string{})
	root := filepath.Join(base, "swapped")
	require.NoError(t, os.Symlink(outside, root))

	project := scanner.ScannedProject{
		Path:         root,
		Name:         "swapped",
		Kind:         scanner.Rust,
		CleanTargets: []scanner.CleanTarget{{Path: filepath.Join(root, "target"), Name: "target", SizeBytes: 6}},
	}
	_, err := CleanProject(project, false)
	require.Error(t, err)

	results := CleanProjects([]scanner.ScannedProject{project}, false)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].TargetsCleaned)
	require.Len(t, results[0].Errors, 1)
	assert.Contains(t, results[0].Errors[0], "project "+root)
	assert.FileExists(t, filepath.Join(outside, "target", "debug", "app"))
}

func TestCleanProjectsBatch(t *testing.T) {
	good := writeTree(t, map[string]string{
		"go.mod":             "module x",
		"Cargo.toml":         "",
		"target/release/bin": "12345",
	})
	goodProject := analyze(t, good, scanner.Rust)

	goneRoot := filepath.Join(t.TempDir(), "deleted-since-scan")
	goneTarget := filepath.Join(goneRoot, "node_modules")
	gone := scanner.ScannedProject{
		Path:         goneRoot,
		Name:         "deleted-since-scan",
		Kind:         scanner.Node,
		CleanTargets: []scanner.CleanTarget{{Path: goneTarget, Name: "node_modules", SizeBytes: 10}},
	}

	results := CleanProjects([]scanner.ScannedProject{gone, goodProject}, false)
	require.Len(t, results, 2)

	assert.Equal(t, "deleted-since-scan", results[0].ProjectName)
	assert.Zero(t, results[0].TargetsCleaned)
	assert.Zero(t, results[0].BytesFreed)
	require.Len(t, results[0].Errors, 1)
	assert.Contains(t, results[0].Errors[0], "failed to remove "+goneTarget)

	assert.Equal(t, 1, results[1].TargetsCleaned)
	assert.Equal(t, int64(5), results[1].BytesFreed)

	totals := Sum(results)
	assert.Equal(t, Totals{Projects: 2, TargetsCleaned: 1, BytesFreed: 5, Errors: 1}, totals)
}

func TestCleanProjectsDryRunIgnoresMissingRoot(t *testing.T) {
	project := scanner.ScannedProject{
		Path:         filepath.Join(t.TempDir(), "nope"),
		Name:         "nope",
		CleanTargets: []scanner.CleanTarget{{Path: "/nope/target", Name: "target", SizeBytes: 3}},
	}
	results := CleanProjects([]scanner.ScannedProject{project}, true)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].TargetsCleaned)
	assert.Equal(t, int64(3), results[0].BytesFreed)
	assert.Empty(t, results[0].Errors)
}
