package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gitletcore/gitlet/pkg/repository/gpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func absIn(t *testing.T, dir string, elem ...string) gpath.AbsolutePath {
	t.Helper()
	parts := append([]string{dir}, elem...)
	return gpath.AbsolutePath(filepath.Join(parts...))
}

func TestExists(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("file exists", func(t *testing.T) {
		p := absIn(t, tempDir, "test.txt")
		require.NoError(t, os.WriteFile(p.String(), []byte("test"), 0o644))

		exists, err := Exists(p)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("file does not exist", func(t *testing.T) {
		exists, err := Exists(absIn(t, tempDir, "nonexistent.txt"))
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("directory exists", func(t *testing.T) {
		p := absIn(t, tempDir, "testdir")
		require.NoError(t, os.Mkdir(p.String(), 0o755))

		exists, err := Exists(p)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestEnsureDir(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("create new directory", func(t *testing.T) {
		p := absIn(t, tempDir, "newdir")
		require.NoError(t, EnsureDir(p))

		info, err := os.Stat(p.String())
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("create nested directories", func(t *testing.T) {
		p := absIn(t, tempDir, "a", "b", "c")
		require.NoError(t, EnsureDir(p))

		info, err := os.Stat(p.String())
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("directory already exists is not an error", func(t *testing.T) {
		p := absIn(t, tempDir, "existing")
		require.NoError(t, os.Mkdir(p.String(), 0o755))
		assert.NoError(t, EnsureDir(p))
	})
}

func TestEnsureParentDir(t *testing.T) {
	tempDir := t.TempDir()

	p := absIn(t, tempDir, "parent", "child", "file.txt")
	require.NoError(t, EnsureParentDir(p))

	info, err := os.Stat(filepath.Dir(p.String()))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestReadBytesStrict(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("read existing file", func(t *testing.T) {
		p := absIn(t, tempDir, "test.txt")
		content := []byte{0x01, 0x02, 0x03}
		require.NoError(t, os.WriteFile(p.String(), content, 0o644))

		result, err := ReadBytesStrict(p)
		require.NoError(t, err)
		assert.Equal(t, content, result)
	})

	t.Run("read non-existent file fails", func(t *testing.T) {
		_, err := ReadBytesStrict(absIn(t, tempDir, "nonexistent.txt"))
		assert.Error(t, err)
	})
}

func TestWriteReadOnly(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("writes content at 0444", func(t *testing.T) {
		p := absIn(t, tempDir, "readonly.txt")
		content := []byte("immutable content")
		require.NoError(t, WriteReadOnly(p, content))

		data, err := os.ReadFile(p.String())
		require.NoError(t, err)
		assert.Equal(t, content, data)

		info, err := os.Stat(p.String())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o444), info.Mode().Perm())
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		p := absIn(t, tempDir, "nested", "dir", "readonly.txt")
		require.NoError(t, WriteReadOnly(p, []byte("x")))

		_, err := os.Stat(p.String())
		require.NoError(t, err)
	})
}

func TestSafeRemove(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("removes existing file", func(t *testing.T) {
		p := absIn(t, tempDir, "remove.txt")
		require.NoError(t, os.WriteFile(p.String(), []byte("test"), 0o644))

		require.NoError(t, SafeRemove(p))

		_, err := os.Stat(p.String())
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("removes directory recursively", func(t *testing.T) {
		p := absIn(t, tempDir, "dir")
		require.NoError(t, os.MkdirAll(filepath.Join(p.String(), "nested"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(p.String(), "nested", "f.txt"), []byte("x"), 0o644))

		require.NoError(t, SafeRemove(p))

		_, err := os.Stat(p.String())
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("removing a non-existent path is not an error", func(t *testing.T) {
		assert.NoError(t, SafeRemove(absIn(t, tempDir, "nonexistent.txt")))
	})
}

func TestIsRegularFile(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("regular file", func(t *testing.T) {
		p := absIn(t, tempDir, "file.txt")
		require.NoError(t, os.WriteFile(p.String(), []byte("test"), 0o644))

		isRegular, err := IsRegularFile(p.String())
		require.NoError(t, err)
		assert.True(t, isRegular)
	})

	t.Run("directory is not a regular file", func(t *testing.T) {
		p := absIn(t, tempDir, "testdir")
		require.NoError(t, os.Mkdir(p.String(), 0o755))

		isRegular, err := IsRegularFile(p.String())
		require.NoError(t, err)
		assert.False(t, isRegular)
	})

	t.Run("non-existent path is not a regular file, not an error", func(t *testing.T) {
		isRegular, err := IsRegularFile(absIn(t, tempDir, "nonexistent").String())
		require.NoError(t, err)
		assert.False(t, isRegular)
	})
}
