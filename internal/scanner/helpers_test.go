package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree materialises files under root. Keys are slash paths; a key
// ending in "/" creates an empty directory.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// newTree creates a temp directory populated with files and returns its
// canonical path, so comparisons with scan results hold on systems whose
// temp dir sits behind a symlink.
func newTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	writeTree(t, root, files)
	return root
}

func candidatePaths(cs []Candidate) map[string]Kind {
	out := make(map[string]Kind, len(cs))
	for _, c := range cs {
		out[c.Path] = c.Kind
	}
	return out
}

func projectByPath(projects []ScannedProject, path string) (ScannedProject, bool) {
	for _, p := range projects {
		if p.Path == path {
			return p, true
		}
	}
	return ScannedProject{}, false
}
