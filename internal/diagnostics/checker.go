// Package diagnostics runs the startup checks shown in the settings modal.
package diagnostics

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"script-shelf/internal/catalog"
	"script-shelf/internal/domain"
)

// Item IDs reported by Run.
const (
	ItemScriptsFolder   = "scripts_folder"
	ItemDataDir         = "data_dir"
	ItemClipboardTarget = "clipboard_target"
)

// TargetResolver resolves the folder clipboard images are saved to.
type TargetResolver func(domain.Settings) (string, error)

// Checker validates the scripts folder and required writable paths.
type Checker struct {
	stat       func(string) (os.FileInfo, error)
	readDir    func(string) ([]os.DirEntry, error)
	mkdirAll   func(string, os.FileMode) error
	createTemp func(string, string) (*os.File, error)
	remove     func(string) error
	target     TargetResolver
}

// NewChecker builds a checker using real OS dependencies. target may be nil,
// in which case the clipboard check is skipped.
func NewChecker(target TargetResolver) *Checker {
	return &Checker{
		stat:       os.Stat,
		readDir:    os.ReadDir,
		mkdirAll:   os.MkdirAll,
		createTemp: os.CreateTemp,
		remove:     os.Remove,
		target:     target,
	}
}

// Run executes all checks and returns a combined report.
func (c *Checker) Run(settings domain.Settings, dataDir string) domain.DiagnosticReport {
	items := []domain.DiagnosticItem{
		c.checkScriptsFolder(settings.FolderPath()),
		c.checkWritableDir(ItemDataDir, "Data directory", dataDir,
			"Set SCRIPT_SHELF_DATA_DIR to a writable folder or fix permissions."),
	}
	if c.target != nil {
		items = append(items, c.checkClipboardTarget(settings))
	}

	hasFailures := false
	for _, item := range items {
		if item.Status == domain.DiagnosticStatusFail {
			hasFailures = true
			break
		}
	}

	return domain.DiagnosticReport{
		GeneratedAt: time.Now().UTC(),
		HasFailures: hasFailures,
		Items:       items,
	}
}

// ClipboardTarget resolves the clipboard image folder for settings.
func (c *Checker) ClipboardTarget(settings domain.Settings) (string, error) {
	if c.target == nil {
		return "", errors.New("clipboard target resolver is not configured")
	}
	return c.target(settings)
}

// checkScriptsFolder validates the selected folder contains scripts.
func (c *Checker) checkScriptsFolder(folder string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   ItemScriptsFolder,
		Name: "Scripts folder",
	}

	if strings.TrimSpace(folder) == "" {
		item.Status = domain.DiagnosticStatusWarn
		item.Message = "No scripts folder selected."
		item.Hint = "Choose the folder that holds your .jsx, .jsxbin or .js scripts."
		return item
	}

	info, err := c.stat(folder)
	if err != nil || !info.IsDir() {
		item.Status = domain.DiagnosticStatusFail
		if IsNotExist(err) {
			item.Message = fmt.Sprintf("Scripts folder does not exist: %s", folder)
		} else {
			item.Message = fmt.Sprintf("Cannot access scripts folder: %s", folder)
		}
		item.Hint = "Pick the scripts folder again."
		return item
	}

	entries, err := c.readDir(folder)
	if err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Cannot read scripts folder: %s", folder)
		item.Hint = "Check permissions for the scripts folder."
		return item
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && catalog.IsScriptFile(entry.Name()) {
			count++
		}
	}
	if count == 0 {
		item.Status = domain.DiagnosticStatusWarn
		item.Message = fmt.Sprintf("No scripts found in %s", folder)
		item.Hint = "Place .jsx, .jsxbin or .js files in this folder."
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("%d scripts in %s", count, folder)
	return item
}

// checkClipboardTarget validates the clipboard save location when enabled.
func (c *Checker) checkClipboardTarget(settings domain.Settings) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   ItemClipboardTarget,
		Name: "Clipboard image folder",
	}

	if !settings.ClipboardImport.Enabled {
		item.Status = domain.DiagnosticStatusPass
		item.Message = "Clipboard import is disabled."
		return item
	}

	dir, err := c.target(settings)
	if err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = err.Error()
		item.Hint = "Choose another save location in the clipboard settings."
		return item
	}
	return c.checkWritableDir(item.ID, item.Name, dir,
		"Choose a writable folder for clipboard images.")
}

// checkWritableDir validates directory existence and write access.
func (c *Checker) checkWritableDir(id, name, dir, hint string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   id,
		Name: name,
	}

	if strings.TrimSpace(dir) == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = name + " is not set."
		item.Hint = hint
		return item
	}

	if err := c.mkdirAll(dir, 0o755); err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Cannot create directory: %s", dir)
		item.Hint = hint
		return item
	}

	tmpFile, err := c.createTemp(dir, ".write-check-*")
	if err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Directory is not writable: %s", dir)
		item.Hint = hint
		return item
	}

	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()
	_ = c.remove(tmpPath)

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Writable directory: %s", dir)
	return item
}

// NewCheckerForTests creates checker with injectable dependencies.
func NewCheckerForTests(
	stat func(string) (os.FileInfo, error),
	readDir func(string) ([]os.DirEntry, error),
	mkdirAll func(string, os.FileMode) error,
	createTemp func(string, string) (*os.File, error),
	remove func(string) error,
	target TargetResolver,
) *Checker {
	return &Checker{
		stat:       stat,
		readDir:    readDir,
		mkdirAll:   mkdirAll,
		createTemp: createTemp,
		remove:     remove,
		target:     target,
	}
}

// IsNotExist reports whether error represents file-not-found.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
