package host

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "script-shelf"

// DataDirEnv overrides the data directory when set.
const DataDirEnv = "SCRIPT_SHELF_DATA_DIR"

// LocalExecutor performs host operations directly on the local filesystem.
type LocalExecutor struct {
	dataDir string
}

// NewLocalExecutor creates an executor rooted at dataDir, or at the platform
// data directory when dataDir is empty.
func NewLocalExecutor(dataDir string) *LocalExecutor {
	return &LocalExecutor{dataDir: dataDir}
}

// ResolveDataDirectory returns the writable data directory, creating it.
func (e *LocalExecutor) ResolveDataDirectory(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := e.dataDir
	if dir == "" {
		dir = DefaultDataDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &Error{Op: "resolve", Path: dir, Reason: err.Error(), Err: err}
	}
	return dir, nil
}

// ReadFile returns file content, or found=false when the file is missing or empty.
func (e *LocalExecutor) ReadFile(ctx context.Context, path string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, &Error{Op: "read", Path: path, Reason: err.Error(), Err: err}
	}
	if len(data) == 0 {
		return "", false, nil
	}
	return string(data), true, nil
}

// WriteFile writes content atomically via a temp file and rename.
func (e *LocalExecutor) WriteFile(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeAtomic(path, []byte(content)); err != nil {
		return &Error{Op: "write", Path: path, Reason: err.Error(), Err: err}
	}
	return nil
}

// CopyFile copies src to dst byte for byte.
func (e *LocalExecutor) CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return &Error{Op: "copy", Path: src, Reason: err.Error(), Err: err}
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return &Error{Op: "copy", Path: dst, Reason: err.Error(), Err: err}
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return &Error{Op: "copy", Path: dst, Reason: err.Error(), Err: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return &Error{Op: "copy", Path: dst, Reason: err.Error(), Err: err}
	}
	if err := out.Close(); err != nil {
		return &Error{Op: "copy", Path: dst, Reason: err.Error(), Err: err}
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// DefaultDataDir returns the platform-appropriate data directory.
func DefaultDataDir() string {
	if custom := os.Getenv(DataDirEnv); custom != "" {
		return custom
	}

	switch runtime.GOOS {
	case "windows":
		if base := os.Getenv("APPDATA"); base != "" {
			return filepath.Join(base, appDirName)
		}
		if base := os.Getenv("LOCALAPPDATA"); base != "" {
			return filepath.Join(base, appDirName)
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", appDirName)
		}
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName)
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share", appDirName)
		}
	}

	return filepath.Join(".", appDirName)
}
