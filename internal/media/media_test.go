package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem(t *testing.T) {
	root := filepath.Join(t.TempDir(), "media")
	fs, err := NewFileSystem(root)
	require.NoError(t, err)

	t.Run("save", func(t *testing.T) {
		name, err := fs.Save("posts", ".png", []byte("data"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(name, "posts/"))
		assert.True(t, strings.HasSuffix(name, ".png"))

		stored, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), stored)
	})

	t.Run("unique names", func(t *testing.T) {
		first, err := fs.Save("posts", ".png", []byte("a"))
		require.NoError(t, err)
		second, err := fs.Save("posts", ".png", []byte("b"))
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("url", func(t *testing.T) {
		assert.Equal(t, "/media/posts/a.png", fs.URL("posts/a.png"))
		assert.Equal(t, "", fs.URL(""))
	})

	t.Run("delete", func(t *testing.T) {
		name, err := fs.Save("posts", ".gif", []byte("gif"))
		require.NoError(t, err)

		require.NoError(t, fs.Delete(name))
		_, err = os.Stat(filepath.Join(root, filepath.FromSlash(name)))
		assert.True(t, os.IsNotExist(err))

		assert.NoError(t, fs.Delete(name))
	})

	t.Run("path stays inside root", func(t *testing.T) {
		assert.Equal(t, filepath.Join(root, "etc", "passwd"), fs.path("../../etc/passwd"))
	})
}
