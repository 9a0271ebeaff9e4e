package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "sub/c.txt", "sub/d.hcl", ".git/e.txt"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	// --- Act ---
	txt, err := FindFiles(root, ".txt")
	require.NoError(t, err)
	all, err := FindFiles(root, "")
	require.NoError(t, err)

	// --- Assert ---
	assert.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "sub", "c.txt"),
	}, txt)
	assert.Len(t, all, 4)
}

func TestFindFiles_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := FindFiles(filepath.Join(t.TempDir(), "nope"), ".txt")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
