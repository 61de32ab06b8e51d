package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetCreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "generated")

	require.NoError(t, Reset(root))

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestResetClearsStaleContent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "generated")
	stale := filepath.Join(root, "Old", "Deep", "stale_test.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	require.NoError(t, Reset(root))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "reset root must be empty")
}

func TestResetIsIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "generated")
	require.NoError(t, Reset(root))
	require.NoError(t, Reset(root))
}

func TestResetRefusesDangerousRoots(t *testing.T) {
	assert.Error(t, Reset(""))
	assert.Error(t, Reset("/"))
	assert.Error(t, Reset("."))
}

func TestWriteCreatesParents(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Suite", "Nested", "file_test.go")

	require.NoError(t, Write(path, []byte("package nested\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package nested\n", string(data))
}
