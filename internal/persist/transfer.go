package persist

import (
	"context"
	"fmt"

	"script-shelf/internal/config"
	"script-shelf/internal/domain"
)

// ExportData returns the current document without scriptsFolderPath, so
// exports never carry the local folder layout.
func (g *Gateway) ExportData(ctx context.Context) (domain.Settings, error) {
	doc, err := g.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	out := config.Clone(doc)
	out.ScriptsFolderPath = nil
	return out, nil
}

// ImportData replaces the stored document with candidate. The candidate must
// pass the structural check, the current file is backed up first, and the
// current scriptsFolderPath is kept regardless of what candidate says.
func (g *Gateway) ImportData(ctx context.Context, candidate []byte) error {
	doc, err := config.ParseDocument(candidate)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	return g.importDocument(ctx, doc)
}

func (g *Gateway) importDocument(ctx context.Context, doc config.Document) error {
	path, err := g.readyPath()
	if err != nil {
		return err
	}
	if !config.ValidateDocument(doc) {
		return ErrInvalidImport
	}

	content, found, err := g.exec.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("import settings: %w", err)
	}
	// With no stored file there is nothing to lose, so no backup is taken.
	if found {
		if _, err := g.CreateBackup(ctx); err != nil {
			return fmt.Errorf("import settings: %w", err)
		}
	}
	current := g.decode(path, content, found)

	merged := config.MergeWithDefaults(doc)
	merged.ScriptsFolderPath = nil
	if folder := current.FolderPath(); folder != "" {
		merged.ScriptsFolderPath = &folder
	}

	if err := g.Save(ctx, &merged); err != nil {
		return fmt.Errorf("import settings: %w", err)
	}
	g.logger.Info("settings imported", "path", path)
	return nil
}
