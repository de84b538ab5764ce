package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gophpfix/internal/logging"
	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fsutil"
	"github.com/yaklabco/gophpfix/pkg/runner"
)

func newRestoreCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Restore files from their " + fsutil.BackupSuffix + " backups",
		Long: `Restore files from the backups written by fix --backup.

Every file selected the way fix selects them is replaced by its backup, and
the backup is removed. Files without a backup are left alone.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the files that would be restored")

	return cmd
}

func runRestore(cmd *cobra.Command, args []string, dryRun bool) error {
	ctx := commandContext(cmd)
	out := logging.NewInteractive(cmd.OutOrStdout())

	loaded, workDir, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}
	cfg := loaded.Config

	paths := args
	if len(paths) == 0 {
		paths = cfg.Paths
	}
	files, err := runner.Discover(ctx, runner.Options{
		Paths:        paths,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		Scripts:      cfg.Scripts,
		ExcludeGlobs: cfg.Exclude,
	})
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	restored := 0
	for _, path := range files {
		if dryRun {
			if fileExists(fsutil.BackupPath(path)) {
				out.Info("would restore", logging.FieldPath, path)
				restored++
			}
			continue
		}
		ok, err := fsutil.RestoreBackup(ctx, path)
		if err != nil {
			return fmt.Errorf("restore %s: %w", path, err)
		}
		if ok {
			out.Info("restored", logging.FieldPath, path)
			restored++
		}
	}

	if restored == 0 {
		out.Info("no backups found")
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
