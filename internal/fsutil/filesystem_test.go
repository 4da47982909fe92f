package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both implementations must behave the same for the operations used.
func filesystems(t *testing.T) map[string]struct {
	fs   FileSystem
	root string
} {
	return map[string]struct {
		fs   FileSystem
		root string
	}{
		"os":     {OSFileSystem{}, t.TempDir()},
		"memory": {NewMemoryFileSystem(), "/work"},
	}
}

func TestFileSystem_WriteReadStat(t *testing.T) {
	for name, tc := range filesystems(t) {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(tc.root, "charts", "run-1")
			require.NoError(t, tc.fs.MkdirAll(dir, 0o755))

			path := filepath.Join(dir, "errors.html")
			require.NoError(t, tc.fs.WriteFile(path, []byte("<html>"), 0o644))

			got, err := tc.fs.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "<html>", string(got))

			info, err := tc.fs.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, "errors.html", info.Name())
			assert.Equal(t, int64(6), info.Size())
			assert.False(t, info.IsDir())

			dinfo, err := tc.fs.Stat(dir)
			require.NoError(t, err)
			assert.True(t, dinfo.IsDir())
		})
	}
}

func TestFileSystem_Missing(t *testing.T) {
	for name, tc := range filesystems(t) {
		t.Run(name, func(t *testing.T) {
			_, err := tc.fs.ReadFile(filepath.Join(tc.root, "absent.json"))
			assert.True(t, errors.Is(err, fs.ErrNotExist))

			_, err = tc.fs.Stat(filepath.Join(tc.root, "absent.json"))
			assert.True(t, errors.Is(err, fs.ErrNotExist))
		})
	}
}

func TestMemoryFileSystem_WriteNeedsParent(t *testing.T) {
	m := NewMemoryFileSystem()
	err := m.WriteFile("/nowhere/spatial.html", []byte("x"), 0o644)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Empty(t, m.Files())
}

func TestMemoryFileSystem_ReadReturnsCopy(t *testing.T) {
	m := NewMemoryFileSystem()
	require.NoError(t, m.WriteFile("a.txt", []byte("abc"), 0o644))

	got, err := m.ReadFile("a.txt")
	require.NoError(t, err)
	got[0] = 'z'

	again, err := m.ReadFile("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryFileSystem_MkdirAllOverFile(t *testing.T) {
	m := NewMemoryFileSystem()
	require.NoError(t, m.WriteFile("out", []byte("x"), 0o644))
	err := m.MkdirAll("out/sub", 0o755)
	assert.True(t, errors.Is(err, fs.ErrExist))
}

func TestMemoryFileSystem_Files(t *testing.T) {
	m := NewMemoryFileSystem()
	require.NoError(t, m.MkdirAll("/r", 0o755))
	require.NoError(t, m.WriteFile("/r/b.png", nil, 0o644))
	require.NoError(t, m.WriteFile("/r/a.html", nil, 0o644))
	assert.Equal(t, []string{"/r/a.html", "/r/b.png"}, m.Files())
}
