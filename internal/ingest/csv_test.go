package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCSV_Basic(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,x,p\n2,y,q\n3,x,p\n")

	table, err := LoadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, table.Headers)
	require.Len(t, table.Columns, 3)
	assert.Equal(t, []string{"1", "2", "3"}, table.Columns[0])
	assert.Equal(t, []string{"x", "y", "x"}, table.Columns[1])
	assert.Equal(t, []string{"p", "q", "p"}, table.Columns[2])
}

func TestLoadCSV_QuotedFieldsWithEmbeddedDelimiter(t *testing.T) {
	path := writeTempCSV(t, "name,note\n\"Doe, John\",\"has a \"\"quote\"\" inside\"\nJane,plain\n")

	table, err := LoadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, "Doe, John", table.Columns[0][0])
	assert.Equal(t, "has a \"quote\" inside", table.Columns[1][0])
	assert.Equal(t, "Jane", table.Columns[0][1])
}

func TestLoadCSV_EmptyCellsAreNulls(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,\n2,y\n")

	table, err := LoadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, "", table.Columns[1][0])
	assert.Equal(t, "y", table.Columns[1][1])
}

func TestLoadCSV_RejectsMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	assert.Error(t, err)
}

func TestLoadCSV_RejectsRowLengthMismatch(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,2\n")
	_, err := LoadCSV(path)
	assert.Error(t, err)
}

func TestLoadCSV_RejectsEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")
	_, err := LoadCSV(path)
	assert.Error(t, err)
}

func TestLoadCSV_RejectsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n\xff\xfe,2\n"), 0o644))

	_, err := LoadCSV(path)
	assert.Error(t, err)
}
