package status

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolume(t *testing.T) {
	dir := t.TempDir()

	v, err := Volume(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, v.Path)
	assert.Positive(t, v.Total)
	assert.LessOrEqual(t, v.Free, v.Total)
}

func TestVolumeMissingPath(t *testing.T) {
	_, err := Volume(filepath.Join(t.TempDir(), "missing", "deeper"))
	assert.Error(t, err)
}

func TestLogicalCPUs(t *testing.T) {
	assert.GreaterOrEqual(t, LogicalCPUs(), 1)
}
