package persist

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"script-shelf/internal/config"
	"script-shelf/internal/domain"
	"script-shelf/internal/host"
)

// TestBackupPath checks the timestamped sibling naming.
func TestBackupPath(t *testing.T) {
	got := BackupPath(filepath.Join("/d", DataFileName), time.UnixMilli(1700000000123))
	want := filepath.Join("/d", "moguBar_data_backup_1700000000123.json")
	if got != want {
		t.Fatalf("BackupPath() = %q, want %q", got, want)
	}
}

// TestCreateBackupCopiesCurrentFile checks the backup holds the stored content.
func TestCreateBackupCopiesCurrentFile(t *testing.T) {
	exec := newMemExecutor()
	g := readyGateway(t, exec)
	exec.files[g.Path()] = `{"version":"1.0"}`

	backup, err := g.CreateBackup(context.Background())
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if !strings.Contains(backup, "_backup_") {
		t.Fatalf("backup path = %q", backup)
	}
	if content, ok := exec.file(backup); !ok || content != `{"version":"1.0"}` {
		t.Fatalf("backup content = %q, %v", content, ok)
	}
}

// TestCreateBackupFailure checks copy errors are reported as backup failures.
func TestCreateBackupFailure(t *testing.T) {
	exec := newMemExecutor()
	g := readyGateway(t, exec)
	exec.copyErr = &host.Error{Op: "copy", Reason: "source missing"}

	if _, err := g.CreateBackup(context.Background()); !errors.Is(err, ErrBackupFailed) {
		t.Fatalf("CreateBackup error = %v, want %v", err, ErrBackupFailed)
	}
}

// TestImportDataRejectsInvalidCandidate checks the stored file is untouched.
func TestImportDataRejectsInvalidCandidate(t *testing.T) {
	ctx := context.Background()
	exec := newMemExecutor()
	g := readyGateway(t, exec)

	doc := config.Defaults()
	if err := g.Save(ctx, &doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	before, _ := exec.file(g.Path())

	candidates := []string{
		`{"categories":[],"allTags":[]}`,
		`{"categories":{},"allTags":[],"scriptSettings":{}}`,
		`{"categories":[],"allTags":[],"scriptSettings":[]}`,
		`{broken`,
	}
	for _, candidate := range candidates {
		if err := g.ImportData(ctx, []byte(candidate)); !errors.Is(err, ErrInvalidImport) {
			t.Fatalf("ImportData(%s) error = %v, want %v", candidate, err, ErrInvalidImport)
		}
	}

	after, _ := exec.file(g.Path())
	if after != before {
		t.Fatalf("stored file changed:\n%s\n%s", before, after)
	}
	if len(exec.files) != 1 {
		t.Fatalf("files = %d, want only the settings file", len(exec.files))
	}
}

// TestImportDataKeepsFolderPathAndBacksUp checks the import merge rules.
func TestImportDataKeepsFolderPathAndBacksUp(t *testing.T) {
	ctx := context.Background()
	exec := newMemExecutor()
	g := readyGateway(t, exec)

	folder := "/old/path"
	doc := config.Defaults()
	doc.ScriptsFolderPath = &folder
	doc.Categories = []string{domain.AllCategory, "Old"}
	if err := g.Save(ctx, &doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	previous, _ := exec.file(g.Path())

	candidate := `{"version":"1.0","scriptsFolderPath":"/new/path","categories":["Imported"],"allTags":["x"],"scriptSettings":{"a.jsx":{"category":"Imported"}},"theme":"cute"}`
	if err := g.ImportData(ctx, []byte(candidate)); err != nil {
		t.Fatalf("ImportData() error = %v", err)
	}

	got, err := g.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.FolderPath() != "/old/path" {
		t.Fatalf("folder = %q, want /old/path", got.FolderPath())
	}
	if !reflect.DeepEqual(got.Categories, []string{domain.AllCategory, "Imported"}) {
		t.Fatalf("categories = %v", got.Categories)
	}
	if got.Theme != domain.ThemeCute {
		t.Fatalf("theme = %q", got.Theme)
	}

	backup := BackupPath(g.Path(), fixedNow)
	if content, ok := exec.file(backup); !ok || content != previous {
		t.Fatalf("backup missing or different: %v", ok)
	}
}

// TestImportDataWithoutStoredFileSkipsBackup checks a first import needs no backup.
func TestImportDataWithoutStoredFileSkipsBackup(t *testing.T) {
	exec := newMemExecutor()
	g := readyGateway(t, exec)
	exec.copyErr = errors.New("copy must not run")

	candidate := `{"categories":["A"],"allTags":[],"scriptSettings":{},"scriptsFolderPath":"/imported"}`
	if err := g.ImportData(context.Background(), []byte(candidate)); err != nil {
		t.Fatalf("ImportData() error = %v", err)
	}

	got, err := g.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.ScriptsFolderPath != nil {
		t.Fatalf("folder = %q, want none", got.FolderPath())
	}
}

// TestImportDataAbortsWhenBackupFails checks nothing is written after a failed backup.
func TestImportDataAbortsWhenBackupFails(t *testing.T) {
	ctx := context.Background()
	exec := newMemExecutor()
	g := readyGateway(t, exec)

	doc := config.Defaults()
	if err := g.Save(ctx, &doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	before, _ := exec.file(g.Path())
	exec.copyErr = &host.Error{Op: "copy", Reason: "permission denied"}

	err := g.ImportData(ctx, []byte(`{"categories":["B"],"allTags":[],"scriptSettings":{}}`))
	if !errors.Is(err, ErrBackupFailed) {
		t.Fatalf("ImportData error = %v, want %v", err, ErrBackupFailed)
	}
	if after, _ := exec.file(g.Path()); after != before {
		t.Fatal("stored file changed after failed backup")
	}
}

// TestExportDataStripsFolderPath checks exports never carry the local folder.
func TestExportDataStripsFolderPath(t *testing.T) {
	ctx := context.Background()
	exec := newMemExecutor()
	g := readyGateway(t, exec)

	folder := "/scripts"
	doc := config.Defaults()
	doc.ScriptsFolderPath = &folder
	doc.AllTags = []string{"t"}
	if err := g.Save(ctx, &doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	exported, err := g.ExportData(ctx)
	if err != nil {
		t.Fatalf("ExportData() error = %v", err)
	}
	if exported.ScriptsFolderPath != nil {
		t.Fatalf("exported folder = %q", exported.FolderPath())
	}
	if !reflect.DeepEqual(exported.AllTags, []string{"t"}) {
		t.Fatalf("allTags = %v", exported.AllTags)
	}

	stored, _ := g.Load(ctx)
	if stored.FolderPath() != "/scripts" {
		t.Fatal("export modified the stored document")
	}
}
