// Package persist mediates between the settings store and the host executor
// that performs the actual file I/O.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"script-shelf/internal/config"
	"script-shelf/internal/domain"
	"script-shelf/internal/host"
)

// DataFileName is the settings file created inside the host data directory.
const DataFileName = "moguBar_data.json"

// isoMillis matches the timestamp format of JavaScript's toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

var (
	// ErrNotReady is returned for operations attempted before Init succeeds.
	ErrNotReady = errors.New("data manager not initialized")
	// ErrInitFailed is returned when the host cannot supply a data directory.
	ErrInitFailed = errors.New("cannot resolve extension data path")
	// ErrInvalidDocument is returned when a document fails structural validation.
	ErrInvalidDocument = errors.New("document invalid")
	// ErrInvalidImport is returned when import data fails structural validation.
	ErrInvalidImport = errors.New("invalid import format")
	// ErrBackupFailed is returned when the safety copy cannot be created.
	ErrBackupFailed = errors.New("backup failed")
)

// Gateway loads and saves the settings document through a host executor.
type Gateway struct {
	exec   host.Executor
	logger *slog.Logger
	now    func() time.Time
	life   *lifecycle

	initMu sync.Mutex
	saveMu sync.Mutex
}

// NewGateway creates an uninitialized gateway over exec.
func NewGateway(exec host.Executor, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		exec:   exec,
		logger: logger,
		now:    time.Now,
		life:   newLifecycle(),
	}
}

// State returns the current initialization state.
func (g *Gateway) State() State {
	state, _ := g.life.snapshot()
	return state
}

// Path returns the settings file path, empty until the gateway is ready.
func (g *Gateway) Path() string {
	_, path := g.life.snapshot()
	return path
}

// Init resolves the settings path. It is a no-op once ready; after a
// failure the caller may call it again.
func (g *Gateway) Init(ctx context.Context) error {
	g.initMu.Lock()
	defer g.initMu.Unlock()

	if g.State() == StateReady {
		return nil
	}
	if err := g.life.transition(StateInitializing); err != nil {
		return err
	}

	dir, err := g.exec.ResolveDataDirectory(ctx)
	if err == nil && strings.TrimSpace(dir) == "" {
		err = &host.Error{Op: "resolve", Reason: "empty data directory"}
	}
	if err != nil {
		_ = g.life.transition(StateInitFailed)
		g.logger.Error("gateway init failed", "err", err)
		return fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	path := filepath.Join(dir, DataFileName)
	if err := g.life.ready(path); err != nil {
		return err
	}
	g.logger.Info("gateway ready", "path", path)
	return nil
}

// Load returns the stored document reconciled against the defaults. A
// missing, empty or corrupt file yields the defaults without error.
func (g *Gateway) Load(ctx context.Context) (domain.Settings, error) {
	path, err := g.readyPath()
	if err != nil {
		return domain.Settings{}, err
	}

	content, found, err := g.exec.ReadFile(ctx, path)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return g.decode(path, content, found), nil
}

// Save stamps lastSaved on doc, validates it and writes it as indented JSON.
func (g *Gateway) Save(ctx context.Context, doc *domain.Settings) error {
	path, err := g.readyPath()
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrInvalidDocument
	}

	stamp := g.now().UTC().Format(isoMillis)
	doc.LastSaved = &stamp
	if !config.ValidateSettings(doc) {
		return ErrInvalidDocument
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}

	g.saveMu.Lock()
	defer g.saveMu.Unlock()
	if err := g.exec.WriteFile(ctx, path, string(data)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (g *Gateway) readyPath() (string, error) {
	state, path := g.life.snapshot()
	if state != StateReady {
		return "", ErrNotReady
	}
	return path, nil
}

func (g *Gateway) decode(path, content string, found bool) domain.Settings {
	if !found {
		return config.Defaults()
	}

	doc, err := config.ParseDocument([]byte(content))
	if err != nil {
		g.logger.Warn("settings file unreadable, using defaults", "path", path, "err", err)
		return config.Defaults()
	}
	if len(doc) == 0 {
		return config.Defaults()
	}
	if !doc.HasVersion() {
		g.logger.Info("migrating unversioned settings", "path", path)
		return config.MergeSettings(config.MigrateOldData(doc))
	}
	return config.MergeWithDefaults(doc)
}
