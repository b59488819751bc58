package persist

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BackupPath derives the timestamped sibling of path used for backups.
func BackupPath(path string, at time.Time) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + "_backup_" + strconv.FormatInt(at.UnixMilli(), 10) + ".json"
}

// CreateBackup copies the current settings file to a timestamped sibling
// and returns the backup path.
func (g *Gateway) CreateBackup(ctx context.Context) (string, error) {
	path, err := g.readyPath()
	if err != nil {
		return "", err
	}

	backup := BackupPath(path, g.now())
	if err := g.exec.CopyFile(ctx, path, backup); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}
	g.logger.Info("settings backup created", "path", backup)
	return backup, nil
}
