package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string `parquet:"id"`
	Day   string `parquet:"day"`
	Value int64  `parquet:"value"`
}

func TestWriteReadRoundtrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	rows := []record{{"a", "2024-01-01", 1}, {"b", "2024-01-02", 2}}

	require.NoError(t, WriteTable(dir, rows))
	assert.True(t, Exists(dir))

	got, err := ReadTable[record](dir)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestWriteTableOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	require.NoError(t, WriteTable(dir, []record{{"a", "2024-01-01", 1}, {"b", "2024-01-01", 2}}))
	require.NoError(t, WriteTable(dir, []record{{"c", "2024-01-02", 3}}))

	got, err := ReadTable[record](dir)
	require.NoError(t, err)
	assert.Equal(t, []record{{"c", "2024-01-02", 3}}, got)

	// No staging residue after the rename commit.
	_, err = os.Stat(dir + ".staging")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteTableEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	require.NoError(t, WriteTable(dir, []record{}))
	assert.True(t, Exists(dir))

	got, err := ReadTable[record](dir)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWritePartitioned(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	rows := []record{
		{"a", "2024-01-02", 1},
		{"b", "2024-01-01", 2},
		{"c", "2024-01-02", 3},
	}
	require.NoError(t, WritePartitioned(dir, "day", rows, func(r record) string { return r.Day }))

	assert.True(t, Exists(filepath.Join(dir, "day=2024-01-01")))
	assert.True(t, Exists(filepath.Join(dir, "day=2024-01-02")))

	// Lexical part order: the 01-01 partition reads back first.
	got, err := ReadTable[record](dir)
	require.NoError(t, err)
	assert.Equal(t, []record{
		{"b", "2024-01-01", 2},
		{"a", "2024-01-02", 1},
		{"c", "2024-01-02", 3},
	}, got)
}

func TestAppendPartAccumulates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	require.NoError(t, AppendPart(dir, "day", "2024-01-01", "part-b1-00000", []record{{"a", "2024-01-01", 1}}))
	require.NoError(t, AppendPart(dir, "day", "2024-01-01", "part-b2-00000", []record{{"b", "2024-01-01", 2}}))
	require.NoError(t, AppendPart(dir, "day", "2024-01-02", "part-b2-00001", []record{{"c", "2024-01-02", 3}}))

	got, err := ReadTable[record](dir)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestReadTableMissingDir(t *testing.T) {
	_, err := ReadTable[record](filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
