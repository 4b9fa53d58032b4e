package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindInstanceConfig(t *testing.T) {
	t.Parallel()

	dirA := t.TempDir()
	dirB := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dirB, "hello.pfg"), []byte("hello.times = 3\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dirB, "hello.yaml"), []byte("hello:\n  times: 3\n"), 0o644))

	t.Run("earlier directory wins", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dirA, "hello.yaml"), []byte(""), 0o644))
		path, ok := FindInstanceConfig("hello", []string{dirA, dirB})
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dirA, "hello.yaml"), path)
	})

	t.Run("extension preference order", func(t *testing.T) {
		path, ok := FindInstanceConfig("hello", []string{dirB})
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dirB, "hello.pfg"), path)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := FindInstanceConfig("goodbye", []string{dirA, dirB})
		assert.False(t, ok)
	})
}
