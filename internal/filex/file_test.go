package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestEnsureParentDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "state", "tardis.db")

	require.NoError(t, EnsureParentDir(target))

	fi, err := os.Stat(filepath.Join(tmp, "state"))
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	require.NoError(t, EnsureParentDir(target), "must be idempotent")
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	require.NoError(t, EnsureParentDir("tardis.db"))
}

func TestReadImage(t *testing.T) {
	dir := t.TempDir()

	png := filepath.Join(dir, "doctor.png")
	require.NoError(t, os.WriteFile(png, pngHeader, 0o600))

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("bow ties are cool"), 0o600))

	t.Run("png", func(t *testing.T) {
		data, ct, err := ReadImage(png, MaxPortraitSize)
		require.NoError(t, err)
		assert.Equal(t, "image/png", ct)
		assert.Equal(t, pngHeader, data)
	})

	t.Run("not an image", func(t *testing.T) {
		_, _, err := ReadImage(txt, MaxPortraitSize)
		require.ErrorIs(t, err, ErrNotImage)
	})

	t.Run("too large", func(t *testing.T) {
		_, _, err := ReadImage(png, 4)
		require.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := ReadImage(filepath.Join(dir, "nope.png"), MaxPortraitSize)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
