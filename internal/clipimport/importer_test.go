package clipimport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"script-shelf/internal/config"
	"script-shelf/internal/domain"
)

type fakeClipboard struct {
	data  []byte
	err   error
	block chan struct{}
}

func (f *fakeClipboard) ReadImage() ([]byte, error) {
	if f.block != nil {
		<-f.block
	}
	return f.data, f.err
}

var pngBytes = []byte("\x89PNG\r\n\x1a\nstub")

func newTestImporter(clip Clipboard, home string) *Importer {
	imp := NewImporter(clip, nil)
	imp.homeDir = func() (string, error) { return home, nil }
	imp.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return imp
}

// TestImportWritesTimestampedFile verifies the saved file name and content.
func TestImportWritesTimestampedFile(t *testing.T) {
	home := t.TempDir()
	imp := newTestImporter(&fakeClipboard{data: pngBytes}, home)

	settings := config.Defaults()
	path, err := imp.Import(context.Background(), settings)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	want := filepath.Join(home, "Documents", "clipboard_1700000000000.png")
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved image: %v", err)
	}
	if string(data) != string(pngBytes) {
		t.Fatal("saved image content differs")
	}
}

// TestImportDisabled verifies nothing is read while import is switched off.
func TestImportDisabled(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("must not be read")}
	imp := newTestImporter(clip, t.TempDir())

	settings := config.Defaults()
	settings.ClipboardImport.Enabled = false
	if _, err := imp.Import(context.Background(), settings); !errors.Is(err, ErrDisabled) {
		t.Fatalf("Import error = %v, want %v", err, ErrDisabled)
	}
}

// TestImportNoImage verifies an empty clipboard is reported.
func TestImportNoImage(t *testing.T) {
	imp := newTestImporter(&fakeClipboard{}, t.TempDir())

	if _, err := imp.Import(context.Background(), config.Defaults()); !errors.Is(err, ErrNoImage) {
		t.Fatalf("Import error = %v, want %v", err, ErrNoImage)
	}
}

// TestImportTimesOut verifies a stuck clipboard read is abandoned.
func TestImportTimesOut(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	imp := newTestImporter(&fakeClipboard{block: block, data: pngBytes}, t.TempDir())
	imp.timeout = 20 * time.Millisecond

	_, err := imp.Import(context.Background(), config.Defaults())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Import error = %v, want deadline exceeded", err)
	}
}

// TestResolveTargetDir verifies each save location.
func TestResolveTargetDir(t *testing.T) {
	imp := newTestImporter(&fakeClipboard{}, "/home/u")
	folder := "/scripts"

	settings := config.Defaults()
	settings.ScriptsFolderPath = &folder

	cases := []struct {
		location domain.SaveLocation
		custom   string
		want     string
	}{
		{domain.SaveLocationDesktop, "", filepath.Join("/home/u", "Desktop")},
		{domain.SaveLocationDocuments, "", filepath.Join("/home/u", "Documents")},
		{domain.SaveLocationProject, "", "/scripts"},
		{domain.SaveLocationCustom, "/custom", "/custom"},
	}
	for _, tc := range cases {
		settings.ClipboardImport.SaveLocation = tc.location
		settings.ClipboardImport.CustomPath = tc.custom
		got, err := imp.ResolveTargetDir(settings)
		if err != nil {
			t.Fatalf("%s: error = %v", tc.location, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.location, got, tc.want)
		}
	}
}

// TestResolveTargetDirMissing verifies unusable locations are reported.
func TestResolveTargetDirMissing(t *testing.T) {
	imp := newTestImporter(&fakeClipboard{}, "/home/u")

	settings := config.Defaults()
	settings.ClipboardImport.SaveLocation = domain.SaveLocationProject
	if _, err := imp.ResolveTargetDir(settings); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("project error = %v", err)
	}

	settings.ClipboardImport.SaveLocation = domain.SaveLocationCustom
	if _, err := imp.ResolveTargetDir(settings); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("custom error = %v", err)
	}
}
