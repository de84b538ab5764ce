package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/fsutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns content and snapshot", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "a.php", "<?php echo 1;\n")

		content, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "<?php echo 1;\n", string(content))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(len(content)), info.Size)
		assert.Equal(t, fsutil.HashContent(content), info.Digest())
		assert.Len(t, info.Digest(), 64)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadFile(ctx, filepath.Join(t.TempDir(), "nope.php"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadFile(ctx, t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := fsutil.ReadFile(cctx, "whatever.php")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("untouched file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "a.php", "<?php\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		for _, quick := range []bool{true, false} {
			modified, err := fsutil.CheckModified(ctx, info, quick)
			require.NoError(t, err)
			assert.False(t, modified)
		}
	})

	t.Run("size change", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "a.php", "<?php\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte("<?php\necho 1;\n"), 0o600))

		modified, err := fsutil.CheckModified(ctx, info, true)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("same size and mtime but different content", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "a.php", "<?php $a;\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("<?php $b;\n"), 0o600))
		require.NoError(t, os.Chtimes(path, time.Now(), info.ModTime))

		quick, err := fsutil.CheckModified(ctx, info, true)
		require.NoError(t, err)
		assert.False(t, quick, "quick check only sees size and mtime")

		full, err := fsutil.CheckModified(ctx, info, false)
		require.NoError(t, err)
		assert.True(t, full)
	})

	t.Run("deleted file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "a.php", "<?php\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		modified, err := fsutil.CheckModified(ctx, info, false)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()
		_, err := fsutil.CheckModified(ctx, nil, false)
		require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})
}
