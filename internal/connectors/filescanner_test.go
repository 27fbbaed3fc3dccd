package connectors

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestDiscoverFiles_MatchesExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", 10)
	writeFile(t, dir, "b.txt", 10)

	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "a.csv"), files[0].Path)
}

func TestDiscoverFiles_ExtensionWithLeadingDot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", 10)

	files, err := DiscoverFiles(dir, ".csv", DiscoveryOptions{})
	require.NoError(t, err)
	require.Len(t, files, 1)
}

func TestDiscoverFiles_NonRecursiveSkipsSubdirs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, dir, "top.csv", 10)
	writeFile(t, sub, "nested.csv", 10)

	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{Recursive: false})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "top.csv"), files[0].Path)
}

func TestDiscoverFiles_RecursiveFindsSubdirs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, dir, "top.csv", 10)
	writeFile(t, sub, "nested.csv", 10)

	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{Recursive: true})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscoverFiles_MinSizeFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.csv", 5)
	writeFile(t, dir, "big.csv", 500)

	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{MinSize: 100})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "big.csv"), files[0].Path)
}

func TestDiscoverFiles_MaxSizeFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.csv", 5)
	writeFile(t, dir, "big.csv", 500)

	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{MaxSize: 100})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "small.csv"), files[0].Path)
}

func TestDiscoverFiles_ModifiedTimeFilters(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.csv", 5)
	newPath := writeFile(t, dir, "new.csv", 5)

	cutoff := time.Now()
	require.NoError(t, os.Chtimes(oldPath, cutoff.Add(-time.Hour), cutoff.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newPath, cutoff.Add(time.Hour), cutoff.Add(time.Hour)))

	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{ModifiedAfter: cutoff})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, newPath, files[0].Path)
}

func TestDiscoverFiles_RejectsMissingDirectory(t *testing.T) {
	_, err := DiscoverFiles(filepath.Join(t.TempDir(), "missing"), "csv", DiscoveryOptions{})
	assert.Error(t, err)
}

func TestDiscoverFiles_RejectsEmptyRoot(t *testing.T) {
	_, err := DiscoverFiles("", "csv", DiscoveryOptions{})
	assert.Error(t, err)
}

func TestDiscoverFiles_ErrorsWhenNothingMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", 5)

	_, err := DiscoverFiles(dir, "csv", DiscoveryOptions{})
	assert.Error(t, err)
}
