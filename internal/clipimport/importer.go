// Package clipimport saves clipboard images into the folder selected by the
// clipboardImport settings.
package clipimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"script-shelf/internal/domain"
)

// DefaultTimeout bounds one import, clipboard read included.
const DefaultTimeout = 60 * time.Second

var (
	// ErrDisabled is returned when clipboard import is switched off.
	ErrDisabled = errors.New("clipboard import disabled")
	// ErrNoImage is returned when the clipboard holds no image.
	ErrNoImage = errors.New("clipboard has no image")
	// ErrNoTarget is returned when the save location cannot be resolved.
	ErrNoTarget = errors.New("clipboard save location unavailable")
)

// Importer writes clipboard images to disk.
type Importer struct {
	clip      Clipboard
	logger    *slog.Logger
	homeDir   func() (string, error)
	mkdirAll  func(string, os.FileMode) error
	writeFile func(string, []byte, os.FileMode) error
	now       func() time.Time
	timeout   time.Duration
}

// NewImporter creates an importer over clip using the real filesystem.
func NewImporter(clip Clipboard, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		clip:      clip,
		logger:    logger,
		homeDir:   os.UserHomeDir,
		mkdirAll:  os.MkdirAll,
		writeFile: os.WriteFile,
		now:       time.Now,
		timeout:   DefaultTimeout,
	}
}

// ResolveTargetDir returns the folder selected by settings.
func (i *Importer) ResolveTargetDir(settings domain.Settings) (string, error) {
	opts := settings.ClipboardImport
	switch opts.SaveLocation {
	case domain.SaveLocationDesktop, domain.SaveLocationDocuments:
		home, err := i.homeDir()
		if err != nil || home == "" {
			return "", fmt.Errorf("%w: no home directory", ErrNoTarget)
		}
		if opts.SaveLocation == domain.SaveLocationDesktop {
			return filepath.Join(home, "Desktop"), nil
		}
		return filepath.Join(home, "Documents"), nil
	case domain.SaveLocationProject:
		if folder := strings.TrimSpace(settings.FolderPath()); folder != "" {
			return folder, nil
		}
		return "", fmt.Errorf("%w: no scripts folder selected", ErrNoTarget)
	case domain.SaveLocationCustom:
		if custom := strings.TrimSpace(opts.CustomPath); custom != "" {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path is empty", ErrNoTarget)
	default:
		return "", fmt.Errorf("%w: unknown location %q", ErrNoTarget, opts.SaveLocation)
	}
}

// Import reads the clipboard image and saves it as
// clipboard_<unix-millis>.png in the target folder, returning the file path.
func (i *Importer) Import(ctx context.Context, settings domain.Settings) (string, error) {
	if !settings.ClipboardImport.Enabled {
		return "", ErrDisabled
	}
	dir, err := i.ResolveTargetDir(settings)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	data, err := i.readImage(ctx)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNoImage
	}

	if err := i.mkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create clipboard folder: %w", err)
	}
	path := filepath.Join(dir, "clipboard_"+strconv.FormatInt(i.now().UnixMilli(), 10)+".png")
	if err := i.writeFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write clipboard image: %w", err)
	}
	i.logger.Info("clipboard image saved", "path", path, "bytes", len(data))
	return path, nil
}

type readResult struct {
	data []byte
	err  error
}

// readImage runs the clipboard read off the caller's goroutine so a stuck
// platform clipboard is bounded by ctx.
func (i *Importer) readImage(ctx context.Context) ([]byte, error) {
	done := make(chan readResult, 1)
	go func() {
		data, err := i.clip.ReadImage()
		done <- readResult{data: data, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("read clipboard: %w", res.err)
		}
		return res.data, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("read clipboard: %w", ctx.Err())
	}
}
