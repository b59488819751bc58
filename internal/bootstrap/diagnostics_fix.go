package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"script-shelf/internal/diagnostics"
	"script-shelf/internal/domain"
	"script-shelf/internal/persist"
)

// FixDiagnostic applies the remediation for one failed diagnostic item and
// returns the refreshed report.
func (a *App) FixDiagnostic(itemID string) (domain.DiagnosticReport, error) {
	id := strings.TrimSpace(itemID)
	if id == "" {
		return domain.DiagnosticReport{}, fmt.Errorf("diagnostic item id is required")
	}

	ctx := context.Background()
	settings := a.current()
	changed := false
	var fixErr error

	switch id {
	case diagnostics.ItemDataDir:
		fixErr = a.fixDataDir(ctx)
	case diagnostics.ItemScriptsFolder:
		settings, changed, fixErr = fixScriptsFolder(settings)
	case diagnostics.ItemClipboardTarget:
		if a.checker == nil {
			return domain.DiagnosticReport{}, fmt.Errorf("diagnostics checker is not configured")
		}
		settings, changed, fixErr = fixClipboardTarget(settings, a.checker.ClipboardTarget)
	default:
		return domain.DiagnosticReport{}, fmt.Errorf("unsupported diagnostic item id: %s", id)
	}

	if changed {
		a.editMu.Lock()
		_, saveErr := a.save(ctx, settings)
		a.editMu.Unlock()
		if saveErr != nil {
			return a.GetDiagnostics(), fmt.Errorf("save settings after fix: %w", saveErr)
		}
	} else if _, err := a.reload(ctx); err != nil {
		return a.GetDiagnostics(), err
	}

	return a.GetDiagnostics(), fixErr
}

// fixDataDir retries gateway initialization, or recreates the data directory
// of a ready gateway.
func (a *App) fixDataDir(ctx context.Context) error {
	gateway := a.Session.Gateway()
	if gateway.State() != persist.StateReady {
		return gateway.Init(ctx)
	}
	dir := filepath.Dir(gateway.Path())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return nil
}

// fixScriptsFolder clears a scripts folder that no longer exists so the panel
// asks for a new one.
func fixScriptsFolder(settings domain.Settings) (domain.Settings, bool, error) {
	folder := settings.FolderPath()
	if folder == "" {
		return settings, false, fmt.Errorf("choose a scripts folder first")
	}

	info, err := os.Stat(folder)
	if err == nil && info.IsDir() {
		return settings, false, nil
	}
	if err != nil && !diagnostics.IsNotExist(err) {
		return settings, false, fmt.Errorf("check scripts folder: %w", err)
	}
	settings.ScriptsFolderPath = nil
	return settings, true, nil
}

// fixClipboardTarget creates the clipboard folder, falling back to the
// documents location when the configured one cannot be resolved.
func fixClipboardTarget(settings domain.Settings, resolve diagnostics.TargetResolver) (domain.Settings, bool, error) {
	changed := false
	dir, err := resolve(settings)
	if err != nil {
		settings.ClipboardImport.SaveLocation = domain.SaveLocationDocuments
		settings.ClipboardImport.CustomPath = ""
		changed = true
		if dir, err = resolve(settings); err != nil {
			return settings, changed, err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return settings, changed, fmt.Errorf("create clipboard folder %s: %w", dir, err)
	}
	return settings, changed, nil
}
