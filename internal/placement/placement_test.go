package placement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPlace_MovesIntoDestination(t *testing.T) {
	src := writeFile(t, t.TempDir(), "Shape of You - Ed Sheeran.m4a", "audio")
	dest := t.TempDir()

	got, err := Place(src, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "Shape of You - Ed Sheeran.m4a"), got)

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "audio", string(data))
	assert.NoFileExists(t, src)
}

func TestPlace_NoDestination(t *testing.T) {
	src := writeFile(t, t.TempDir(), "song.m4a", "audio")

	got, err := Place(src, "")
	require.NoError(t, err)
	assert.Equal(t, src, got)
	assert.FileExists(t, src)
}

func TestPlace_OverwritesExisting(t *testing.T) {
	src := writeFile(t, t.TempDir(), "song.m4a", "new")
	dest := t.TempDir()
	writeFile(t, dest, "song.m4a", "old")

	got, err := Place(src, dest)
	require.NoError(t, err)

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestPlace_DestinationRemoved(t *testing.T) {
	src := writeFile(t, t.TempDir(), "song.m4a", "audio")
	dest := filepath.Join(t.TempDir(), "gone")

	_, err := Place(src, dest)
	require.ErrorIs(t, err, ErrPlacementFailed)
	assert.FileExists(t, src, "file stays at its download path")
}

func TestPlace_DestinationNotADirectory(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "song.m4a", "audio")
	notDir := writeFile(t, t.TempDir(), "file.txt", "x")

	_, err := Place(src, notDir)
	require.ErrorIs(t, err, ErrPlacementFailed)
	assert.FileExists(t, src)
}

func TestPlace_MissingSource(t *testing.T) {
	_, err := Place(filepath.Join(t.TempDir(), "missing.m4a"), t.TempDir())
	require.ErrorIs(t, err, ErrPlacementFailed)
}

func TestPlace_AlreadyInDestination(t *testing.T) {
	dest := t.TempDir()
	src := writeFile(t, dest, "song.m4a", "audio")

	got, err := Place(src, dest)
	require.NoError(t, err)
	assert.Equal(t, src, got)
	assert.FileExists(t, got)
}

func TestCopyFile_LeavesNoPartials(t *testing.T) {
	src := writeFile(t, t.TempDir(), "song.m4a", "audio")
	dest := t.TempDir()
	dst := filepath.Join(dest, "song.m4a")

	require.NoError(t, copyFile(src, dst))

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "song.m4a", entries[0].Name())
}
