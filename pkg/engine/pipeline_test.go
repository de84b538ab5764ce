package engine_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/engine"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/fsutil"
)

func newPipeline() *engine.Pipeline {
	return engine.NewPipeline(engine.New([]fixer.Fixer{
		newRename("rename", map[string]string{"$a": "$b"}),
	}))
}

func writePHP(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.php")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	return path
}

func TestPipeline_ProcessFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes fixed content and keeps mode", func(t *testing.T) {
		t.Parallel()
		path := writePHP(t, "<?php $a;\n")

		res, err := newPipeline().ProcessFile(ctx, path, engine.DefaultPipelineOptions())
		require.NoError(t, err)
		assert.True(t, res.Written)
		assert.True(t, res.Modified)
		assert.Equal(t, "fixed", res.Summary())
		assert.Equal(t, []string{"rename"}, res.Applied)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<?php $b;\n", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), stat.Mode().Perm())
		assert.NoFileExists(t, fsutil.BackupPath(path))
	})

	t.Run("unchanged file is not written", func(t *testing.T) {
		t.Parallel()
		path := writePHP(t, "<?php $c;\n")

		res, err := newPipeline().ProcessFile(ctx, path, engine.DefaultPipelineOptions())
		require.NoError(t, err)
		assert.False(t, res.Written)
		assert.False(t, res.Modified)
		assert.Nil(t, res.ModifiedContent)
		assert.Equal(t, "ok", res.Summary())
	})

	t.Run("dry run diffs without writing", func(t *testing.T) {
		t.Parallel()
		path := writePHP(t, "<?php $a;\n")
		opts := engine.DefaultPipelineOptions()
		opts.DryRun = true

		res, err := newPipeline().ProcessFile(ctx, path, opts)
		require.NoError(t, err)
		assert.False(t, res.Written)
		assert.Equal(t, "changes pending", res.Summary())
		require.NotNil(t, res.Diff)
		assert.Equal(t, 1, res.Diff.Additions)
		assert.Equal(t, 1, res.Diff.Deletions)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<?php $a;\n", string(got))
	})

	t.Run("backup keeps the original", func(t *testing.T) {
		t.Parallel()
		path := writePHP(t, "<?php $a;\n")
		opts := engine.DefaultPipelineOptions()
		opts.Backup = true

		res, err := newPipeline().ProcessFile(ctx, path, opts)
		require.NoError(t, err)
		assert.True(t, res.BackupCreated)
		assert.Equal(t, "fixed (backup created)", res.Summary())

		backup, err := os.ReadFile(fsutil.BackupPath(path))
		require.NoError(t, err)
		assert.Equal(t, "<?php $a;\n", string(backup))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := newPipeline().ProcessFile(ctx, filepath.Join(t.TempDir(), "none.php"), engine.DefaultPipelineOptions())
		require.ErrorIs(t, err, engine.ErrFileNotFound)
		assert.True(t, engine.IsPipelineError(err))
	})

	t.Run("fixer failure leaves the file alone", func(t *testing.T) {
		t.Parallel()
		path := writePHP(t, "<?php $a;\n")
		p := engine.NewPipeline(engine.New([]fixer.Fixer{
			newFunc("broken", func(*fixer.FileContext) error { return errors.New("nope") }),
		}))

		_, err := p.ProcessFile(ctx, path, engine.DefaultPipelineOptions())
		require.ErrorIs(t, err, engine.ErrFixFailure)
		require.ErrorIs(t, err, engine.ErrFixerFailed)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<?php $a;\n", string(got))
	})
}

func TestPipeline_ProcessContent(t *testing.T) {
	t.Parallel()

	opts := engine.DefaultPipelineOptions()
	opts.DryRun = true

	res, err := newPipeline().ProcessContent(context.Background(), "mem.php", []byte("<?php $a;\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, "<?php $b;\n", string(res.ModifiedContent))
	assert.Nil(t, res.OriginalInfo)
	require.NotNil(t, res.Diff)
	assert.Contains(t, res.Diff.String(), "+<?php $b;")
	assert.False(t, res.IsUnstable())
}
