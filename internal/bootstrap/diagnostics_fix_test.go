package bootstrap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"script-shelf/internal/config"
	"script-shelf/internal/diagnostics"
	"script-shelf/internal/domain"
	"script-shelf/internal/host"
	"script-shelf/internal/persist"
)

// TestFixDataDirRetriesInit checks a failed gateway can be brought up from diagnostics.
func TestFixDataDirRetriesInit(t *testing.T) {
	exec := &flakyExecutor{LocalExecutor: host.NewLocalExecutor(""), fail: true}
	env := newTestEnv(t, exec)
	exec.LocalExecutor = host.NewLocalExecutor(filepath.Join(env.root, "recovered"))
	exec.fail = false

	report, err := env.app.FixDiagnostic(diagnostics.ItemDataDir)
	if err != nil {
		t.Fatalf("FixDiagnostic() error = %v", err)
	}
	if env.app.Session.Gateway().State() != persist.StateReady {
		t.Fatalf("gateway state = %s", env.app.Session.Gateway().State())
	}
	if env.app.StorageSource() != persist.SourceGateway {
		t.Fatalf("source = %s, want gateway", env.app.StorageSource())
	}
	assertStatusByID(t, report, diagnostics.ItemDataDir, domain.DiagnosticStatusPass)
}

// TestFixDiagnosticRejectsUnknownItem checks unsupported ids are reported.
func TestFixDiagnosticRejectsUnknownItem(t *testing.T) {
	env := newTestEnv(t, nil)
	if _, err := env.app.FixDiagnostic("tool_ffmpeg"); err == nil {
		t.Fatal("expected error for unsupported item")
	}
	if _, err := env.app.FixDiagnostic(" "); err == nil {
		t.Fatal("expected error for empty item")
	}
}

// TestFixScriptsFolderClearsMissingFolder ensures a vanished folder is forgotten.
func TestFixScriptsFolderClearsMissingFolder(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")
	settings := config.Defaults()
	settings.ScriptsFolderPath = &missing

	fixed, changed, err := fixScriptsFolder(settings)
	if err != nil {
		t.Fatalf("fixScriptsFolder() error = %v", err)
	}
	if !changed || fixed.ScriptsFolderPath != nil {
		t.Fatalf("changed=%v folder=%q", changed, fixed.FolderPath())
	}
}

// TestFixScriptsFolderKeepsExistingFolder ensures a valid folder is untouched.
func TestFixScriptsFolderKeepsExistingFolder(t *testing.T) {
	folder := t.TempDir()
	settings := config.Defaults()
	settings.ScriptsFolderPath = &folder

	_, changed, err := fixScriptsFolder(settings)
	if err != nil || changed {
		t.Fatalf("changed=%v err=%v", changed, err)
	}

	if _, _, err := fixScriptsFolder(config.Defaults()); err == nil {
		t.Fatal("expected error when no folder is selected")
	}
}

// TestFixClipboardTargetFallsBackToDocuments ensures an unusable location is replaced.
func TestFixClipboardTargetFallsBackToDocuments(t *testing.T) {
	docs := filepath.Join(t.TempDir(), "Documents")
	resolve := func(s domain.Settings) (string, error) {
		if s.ClipboardImport.SaveLocation == domain.SaveLocationDocuments {
			return docs, nil
		}
		return "", errors.New("custom path is empty")
	}

	settings := config.Defaults()
	settings.ClipboardImport.SaveLocation = domain.SaveLocationCustom
	fixed, changed, err := fixClipboardTarget(settings, resolve)
	if err != nil {
		t.Fatalf("fixClipboardTarget() error = %v", err)
	}
	if !changed || fixed.ClipboardImport.SaveLocation != domain.SaveLocationDocuments {
		t.Fatalf("changed=%v location=%q", changed, fixed.ClipboardImport.SaveLocation)
	}
	if info, err := os.Stat(docs); err != nil || !info.IsDir() {
		t.Fatalf("documents folder not created: %v", err)
	}
}
