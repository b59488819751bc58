package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"sync"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"script-shelf/internal/catalog"
	"script-shelf/internal/clipimport"
	"script-shelf/internal/config"
	"script-shelf/internal/diagnostics"
	"script-shelf/internal/domain"
	"script-shelf/internal/events"
	"script-shelf/internal/host"
	"script-shelf/internal/persist"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

const eventName = "panel:event"

var imageDialogFilter = []wailsruntime.FileFilter{
	{
		DisplayName: "Images",
		Pattern:     "*.png;*.jpg;*.jpeg;*.gif;*.webp",
	},
	{
		DisplayName: "All files",
		Pattern:     "*",
	},
}

var settingsDialogFilter = []wailsruntime.FileFilter{
	{
		DisplayName: "Settings export",
		Pattern:     "*.json",
	},
}

// App wires the settings session, script catalog, clipboard import and UI
// runtime callbacks.
type App struct {
	Settings    domain.Settings
	Source      persist.Source
	Session     *persist.Session
	Diagnostics domain.DiagnosticReport
	assets      fs.FS
	scripts     scriptHost
	clip        clipboardImporter
	checker     *diagnostics.Checker
	events      *events.Bus
	logger      *slog.Logger

	mu         sync.Mutex
	editMu     sync.Mutex
	runtimeCtx context.Context
}

// scriptHost lists and launches the scripts of a folder.
type scriptHost interface {
	ListScripts(ctx context.Context, folder string) ([]domain.Script, error)
	RunScript(ctx context.Context, path string) (string, error)
}

// clipboardImporter saves the clipboard image according to settings.
type clipboardImporter interface {
	Import(ctx context.Context, settings domain.Settings) (string, error)
}

// New builds the application with persisted settings and startup diagnostics.
func New() (*App, error) {
	return NewWithAssets(nil)
}

// NewWithAssets builds the application and optionally configures embedded frontend assets.
func NewWithAssets(assets fs.FS) (*App, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user home: %w", err)
	}
	logger := slog.Default()

	scriptHost := host.NewScriptHost(host.NewLocalExecutor(""), logger)
	bridge := host.NewBridgeExecutor(scriptHost, logger)
	legacy := config.NewJSONStore(filepath.Join(homeDir, ".script-shelf", "settings.json"))
	session := persist.NewSession(persist.NewGateway(bridge, logger), legacy, logger)
	importer := clipimport.NewImporter(clipimport.NewSystemClipboard(), logger)

	app := &App{
		Session: session,
		assets:  assets,
		scripts: bridge,
		clip:    importer,
		checker: diagnostics.NewChecker(importer.ResolveTargetDir),
		events:  events.NewBus(500),
		logger:  logger,
	}
	if _, err := app.reload(context.Background()); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return app, nil
}

// Run starts the Wails desktop application and binds backend methods.
func (a *App) Run() error {
	assetOptions := &assetserver.Options{}
	if a.assets != nil {
		assetOptions.Assets = a.assets
	} else {
		assetOptions.Handler = http.FileServer(http.Dir("./frontend"))
	}

	return wails.Run(&options.App{
		Title:       "Script Shelf",
		Width:       1100,
		Height:      760,
		MinWidth:    420,
		AssetServer: assetOptions,
		OnStartup:   a.Startup,
		OnShutdown: func(ctx context.Context) {
			a.mu.Lock()
			defer a.mu.Unlock()
			a.runtimeCtx = nil
		},
		Bind: []interface{}{a},
	})
}

// Startup stores Wails runtime context for dialogs and push events.
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runtimeCtx = ctx
}

// GetDiagnostics returns the latest cached diagnostics report.
func (a *App) GetDiagnostics() domain.DiagnosticReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Diagnostics
}

// RefreshDiagnostics reloads settings and reruns the checks.
func (a *App) RefreshDiagnostics() (domain.DiagnosticReport, error) {
	if _, err := a.reload(context.Background()); err != nil {
		return domain.DiagnosticReport{}, err
	}
	return a.GetDiagnostics(), nil
}

// GetSettings loads and returns the latest persisted settings.
func (a *App) GetSettings() (domain.Settings, error) {
	return a.reload(context.Background())
}

// StorageSource reports which tier served the last load or save.
func (a *App) StorageSource() persist.Source {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Source
}

// SaveSettings reconciles settings with the defaults and persists them.
func (a *App) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	a.editMu.Lock()
	defer a.editMu.Unlock()
	return a.save(context.Background(), settings)
}

// GetThemes returns the built-in themes in display order.
func (a *App) GetThemes() []config.ThemeOption {
	return config.Themes()
}

// SetTheme switches to theme; unknown values fall back to the default theme.
func (a *App) SetTheme(theme domain.Theme) (domain.Settings, error) {
	return a.mutate(func(s *domain.Settings) error {
		s.Theme = theme
		return nil
	})
}

// NextTheme switches to the theme after the current one.
func (a *App) NextTheme() (domain.Settings, error) {
	return a.mutate(func(s *domain.Settings) error {
		s.Theme = config.NextTheme(s.Theme)
		return nil
	})
}

// PreviousTheme switches to the theme before the current one.
func (a *App) PreviousTheme() (domain.Settings, error) {
	return a.mutate(func(s *domain.Settings) error {
		s.Theme = config.PreviousTheme(s.Theme)
		return nil
	})
}

// SetLayout stores list/grid mode, scale and sidebar width.
func (a *App) SetLayout(layout domain.LayoutSettings) (domain.Settings, error) {
	return a.mutate(func(s *domain.Settings) error {
		s.LayoutSettings = layout
		return nil
	})
}

// SetBackground stores the background media; nil clears it.
func (a *App) SetBackground(background *domain.BackgroundSettings) (domain.Settings, error) {
	return a.mutate(func(s *domain.Settings) error {
		s.BackgroundSettings = background
		return nil
	})
}

// SetClipboardImport stores the clipboard import options.
func (a *App) SetClipboardImport(opts domain.ClipboardImport) (domain.Settings, error) {
	return a.mutate(func(s *domain.Settings) error {
		opts.CustomPath = strings.TrimSpace(opts.CustomPath)
		s.ClipboardImport = opts
		return nil
	})
}

// ListScripts returns the scripts of the selected folder matching query.
func (a *App) ListScripts(query catalog.Query) ([]catalog.Item, error) {
	a.mu.Lock()
	settings := config.Clone(a.Settings)
	a.mu.Unlock()

	folder := settings.FolderPath()
	if folder == "" {
		return []catalog.Item{}, nil
	}
	scripts, err := a.scripts.ListScripts(context.Background(), folder)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	return catalog.Filter(scripts, settings, query), nil
}

// RunScript launches the script at path and returns the host's result.
func (a *App) RunScript(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" || !catalog.IsScriptFile(path) {
		err := fmt.Errorf("not a script file: %q", path)
		a.publishError("run script", err)
		return "", err
	}

	result, err := a.scripts.RunScript(context.Background(), path)
	if err != nil {
		a.publishError("run script", err)
		return "", err
	}
	a.publishEvent(events.Event{Type: events.TypeScriptRun, Path: path, Message: result})
	return result, nil
}

// PickScriptsFolder opens a native directory picker and stores the choice.
func (a *App) PickScriptsFolder() (domain.Settings, error) {
	path, err := a.pickDirectory("Select scripts folder")
	if err != nil || path == "" {
		return a.current(), err
	}
	return a.SetScriptsFolder(path)
}

// SetScriptsFolder stores the scripts folder.
func (a *App) SetScriptsFolder(path string) (domain.Settings, error) {
	path = strings.TrimSpace(path)
	return a.mutate(func(s *domain.Settings) error {
		if path == "" {
			s.ScriptsFolderPath = nil
			return nil
		}
		s.ScriptsFolderPath = &path
		return nil
	})
}

// PickClipboardFolder opens a directory picker for the custom clipboard location.
func (a *App) PickClipboardFolder() (domain.Settings, error) {
	path, err := a.pickDirectory("Select clipboard image folder")
	if err != nil || path == "" {
		return a.current(), err
	}
	return a.mutate(func(s *domain.Settings) error {
		s.ClipboardImport.SaveLocation = domain.SaveLocationCustom
		s.ClipboardImport.CustomPath = path
		return nil
	})
}

// PickImageFile opens a native file dialog for a script thumbnail.
func (a *App) PickImageFile() (string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return "", err
	}

	path, err := wailsruntime.OpenFileDialog(ctx, wailsruntime.OpenDialogOptions{
		Title:   "Select script image",
		Filters: imageDialogFilter,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(path), nil
}

// AddTag registers a new tag.
func (a *App) AddTag(tag string) (domain.Settings, error) {
	return a.mutate(func(s *domain.Settings) error {
		return catalog.AddTag(s, tag)
	})
}

// DeleteTag removes a tag from the tag list and from every script.
func (a *App) DeleteTag(tag string) (domain.Settings, error) {
	return a.mutate(func(s *domain.Settings) error {
		return catalog.DeleteTag(s, tag)
	})
}

// AddCategory appends a new category.
func (a *App) AddCategory(name string) (domain.Settings, error) {
	return a.mutate(func(s *domain.Settings) error {
		return catalog.AddCategory(s, name)
	})
}

// RenameCategory renames a category and moves its scripts along.
func (a *App) RenameCategory(oldName, newName string) (domain.Settings, error) {
	return a.mutate(func(s *domain.Settings) error {
		return catalog.RenameCategory(s, oldName, newName)
	})
}

// DeleteCategory removes a category; its scripts become uncategorized.
func (a *App) DeleteCategory(name string) (domain.Settings, error) {
	return a.mutate(func(s *domain.Settings) error {
		return catalog.DeleteCategory(s, name)
	})
}

// MoveCategory moves a category to position to in the sidebar.
func (a *App) MoveCategory(name string, to int) (domain.Settings, error) {
	return a.mutate(func(s *domain.Settings) error {
		return catalog.MoveCategory(s, name, to)
	})
}

// UpdateScriptEntry stores the metadata of one script.
func (a *App) UpdateScriptEntry(script string, entry domain.ScriptEntry) (domain.Settings, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return domain.Settings{}, catalog.ErrEmptyName
	}
	return a.mutate(func(s *domain.Settings) error {
		catalog.SetScriptEntry(s, script, entry)
		return nil
	})
}

// CreateBackup copies the current settings file to a timestamped sibling.
func (a *App) CreateBackup() (string, error) {
	path, err := a.Session.Gateway().CreateBackup(context.Background())
	if err != nil {
		a.publishError("create backup", err)
		return "", err
	}
	a.publishEvent(events.Event{Type: events.TypeBackupCreated, Path: path, Message: "Backup created"})
	return path, nil
}

// ExportSettings asks for a target file and writes the export bundle to it.
func (a *App) ExportSettings() (string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return "", err
	}

	target, err := wailsruntime.SaveFileDialog(ctx, wailsruntime.SaveDialogOptions{
		Title:           "Export settings",
		DefaultFilename: "script-shelf-settings.json",
		Filters:         settingsDialogFilter,
	})
	if err != nil {
		return "", err
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return "", nil
	}
	if err := a.exportTo(context.Background(), target); err != nil {
		return "", err
	}
	return target, nil
}

// ImportSettings asks for an export bundle and imports it.
func (a *App) ImportSettings() (domain.Settings, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return domain.Settings{}, err
	}

	source, err := wailsruntime.OpenFileDialog(ctx, wailsruntime.OpenDialogOptions{
		Title:   "Import settings",
		Filters: settingsDialogFilter,
	})
	if err != nil {
		return domain.Settings{}, err
	}
	source = strings.TrimSpace(source)
	if source == "" {
		return a.current(), nil
	}
	return a.importFrom(context.Background(), source)
}

// PasteClipboardImage saves the clipboard image and returns its path.
func (a *App) PasteClipboardImage() (string, error) {
	path, err := a.clip.Import(context.Background(), a.current())
	if err != nil {
		if !errors.Is(err, clipimport.ErrNoImage) && !errors.Is(err, clipimport.ErrDisabled) {
			a.publishError("clipboard import", err)
		}
		return "", err
	}
	a.publishEvent(events.Event{Type: events.TypeClipboardImported, Path: path, Message: "Clipboard image saved"})
	return path, nil
}

// OpenScriptsFolder opens the selected scripts folder in the file manager.
func (a *App) OpenScriptsFolder() error {
	folder := a.current().FolderPath()
	if folder == "" {
		return fmt.Errorf("scripts folder is not selected")
	}
	info, err := os.Stat(folder)
	if err != nil {
		return fmt.Errorf("resolve scripts folder: %w", err)
	}
	if !info.IsDir() {
		folder = filepath.Dir(folder)
	}
	return openInFileManager(folder)
}

// Events returns all events with sequence greater than sinceSeq.
func (a *App) Events(sinceSeq int64) []events.Event {
	return a.events.Since(sinceSeq)
}

func (a *App) exportTo(ctx context.Context, target string) error {
	if _, err := a.Session.Gateway().ExportBundle(ctx, target); err != nil {
		a.publishError("export settings", err)
		return err
	}
	a.publishEvent(events.Event{Type: events.TypeSettingsExported, Path: target, Message: "Settings exported"})
	return nil
}

func (a *App) importFrom(ctx context.Context, source string) (domain.Settings, error) {
	a.editMu.Lock()
	defer a.editMu.Unlock()

	if err := a.Session.Gateway().ImportBundle(ctx, source); err != nil {
		a.publishError("import settings", err)
		return domain.Settings{}, err
	}
	settings, err := a.reload(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	a.publishEvent(events.Event{Type: events.TypeSettingsImported, Path: source, Message: "Settings imported"})
	return settings, nil
}

// mutate applies change to a copy of the current settings and saves the result.
func (a *App) mutate(change func(*domain.Settings) error) (domain.Settings, error) {
	a.editMu.Lock()
	defer a.editMu.Unlock()

	settings := a.current()
	if err := change(&settings); err != nil {
		return domain.Settings{}, err
	}
	return a.save(context.Background(), settings)
}

func (a *App) save(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	merged := config.MergeSettings(settings)
	source, err := a.Session.Save(ctx, &merged)
	if err != nil {
		a.publishError("save settings", err)
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	a.apply(merged, source)
	a.publishEvent(events.Event{Type: events.TypeSettingsSaved, Source: string(source), Message: "Settings saved"})
	return config.Clone(merged), nil
}

func (a *App) reload(ctx context.Context) (domain.Settings, error) {
	settings, source, err := a.Session.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	a.apply(settings, source)
	a.publishEvent(events.Event{Type: events.TypeSettingsLoaded, Source: string(source)})
	return config.Clone(settings), nil
}

// apply caches settings and reruns diagnostics against them.
func (a *App) apply(settings domain.Settings, source persist.Source) {
	report := a.runChecks(settings)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.Settings = settings
	a.Source = source
	if a.checker != nil {
		a.Diagnostics = report
	}
}

func (a *App) runChecks(settings domain.Settings) domain.DiagnosticReport {
	if a.checker == nil {
		return domain.DiagnosticReport{}
	}
	dataDir := ""
	if path := a.Session.Gateway().Path(); path != "" {
		dataDir = filepath.Dir(path)
	}
	return a.checker.Run(settings, dataDir)
}

func (a *App) current() domain.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return config.Clone(a.Settings)
}

func (a *App) publishError(op string, err error) {
	a.log().Error(op+" failed", "err", err)
	a.publishEvent(events.Event{Type: events.TypeError, Message: fmt.Sprintf("%s: %v", op, err)})
}

// publishEvent stores event history and emits runtime push notifications.
func (a *App) publishEvent(event events.Event) {
	if a.events == nil {
		return
	}
	published := a.events.Publish(event)

	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil {
		wailsruntime.EventsEmit(ctx, eventName, published)
	}
}

func (a *App) log() *slog.Logger {
	if a.logger == nil {
		return slog.Default()
	}
	return a.logger
}

func (a *App) pickDirectory(title string) (string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return "", err
	}

	path, err := wailsruntime.OpenDirectoryDialog(ctx, wailsruntime.OpenDialogOptions{
		Title: title,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(path), nil
}

// runtimeContext returns current Wails runtime context for dialog APIs.
func (a *App) runtimeContext() (context.Context, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runtimeCtx == nil {
		return nil, fmt.Errorf("runtime context is not initialized")
	}
	return a.runtimeCtx, nil
}

// openInFileManager launches the platform file explorer for the provided path.
func openInFileManager(path string) error {
	var cmd *exec.Cmd
	switch goruntime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", filepath.Clean(path))
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch file manager: %w", err)
	}
	return nil
}
