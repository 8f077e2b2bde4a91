package sync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestExpandPathsDirectory(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "a.xlsx"))
	b := touch(t, filepath.Join(dir, "b.xlsx"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "~$a.xlsx")) // excel lock file

	files, err := ExpandPaths([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestExpandPathsGlob(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "a.xlsx"))
	b := touch(t, filepath.Join(dir, "b.xlsx"))
	touch(t, filepath.Join(dir, "b.csv"))

	files, err := ExpandPaths([]string{filepath.Join(dir, "*.xlsx")})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestExpandPathsDeduplicates(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "a.xlsx"))

	files, err := ExpandPaths([]string{a, dir, filepath.Join(dir, "*.xlsx")})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, files)
}

func TestExpandPathsNoMatches(t *testing.T) {
	files, err := ExpandPaths([]string{filepath.Join(t.TempDir(), "*.xlsx")})
	require.NoError(t, err)
	assert.Empty(t, files)
}
