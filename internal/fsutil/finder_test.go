package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.hcl"))
	writeFile(t, filepath.Join(root, "nested", "deep", "b.hcl"))
	writeFile(t, filepath.Join(root, "nested", "ignored.txt"))
	writeFile(t, filepath.Join(root, ".hidden", "c.hcl"))

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)

	require.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "nested", "deep", "b.hcl"),
	}, files, "results are sorted, hidden dirs and other extensions skipped")
}

func TestFindFilesByExtension_EmptyExtension(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByExtension(t.TempDir(), "")
	require.Error(t, err)
}
