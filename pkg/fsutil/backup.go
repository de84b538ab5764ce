package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupSuffix is appended to a file's path to name its backup.
const BackupSuffix = ".gophpfix.bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup saves original next to info.Path before the file is
// rewritten. An existing backup is kept so repeated runs never lose the
// first original. Reports whether a backup was written.
func CreateBackup(ctx context.Context, info *FileInfo, original []byte) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	backup := BackupPath(info.Path)
	_, err := os.Stat(backup)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat backup: %w", err)
	}

	if err := WriteAtomic(ctx, backup, original, info.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup copies the backup of path over path and removes the
// backup. Reports false when no backup exists.
func RestoreBackup(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("restore backup: %w", err)
	}

	backup := BackupPath(path)
	stat, err := os.Stat(backup)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	content, err := os.ReadFile(backup)
	if err != nil {
		return false, fmt.Errorf("read backup: %w", err)
	}
	if err := WriteAtomic(ctx, path, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	if err := os.Remove(backup); err != nil {
		return true, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}
