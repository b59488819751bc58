package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"script-shelf/internal/config"
	"script-shelf/internal/domain"
)

const (
	imagesPrefix      = "./images/"
	backgroundsPrefix = "./backgrounds/"
)

// BuildBundle assembles the portable export document for doc.
func BuildBundle(doc domain.Settings, at time.Time) domain.ExportBundle {
	doc = config.Clone(doc)
	return domain.ExportBundle{
		Version:           doc.Version,
		ScriptSettings:    doc.ScriptSettings,
		Categories:        doc.Categories,
		AllTags:           doc.AllTags,
		LayoutSettings:    doc.LayoutSettings,
		ScriptsFolderPath: doc.FolderPath(),
		ThemeSettings: domain.ThemeSettings{
			Theme:      doc.Theme,
			ThemeTitle: config.ThemeTitle(doc.Theme),
		},
		BackgroundSettings: doc.BackgroundSettings,
		ExportTime:         at.UTC().Format(isoMillis),
	}
}

// ExportBundle writes the export document for the current settings to target.
// Only the JSON document is written; image and background paths stay
// absolute and no scripts or media are copied next to it.
func (g *Gateway) ExportBundle(ctx context.Context, target string) (domain.ExportBundle, error) {
	if _, err := g.readyPath(); err != nil {
		return domain.ExportBundle{}, err
	}
	doc, err := g.Load(ctx)
	if err != nil {
		return domain.ExportBundle{}, err
	}

	bundle := BuildBundle(doc, g.now())
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return domain.ExportBundle{}, fmt.Errorf("serialize export: %w", err)
	}
	if err := g.exec.WriteFile(ctx, target, string(data)); err != nil {
		return domain.ExportBundle{}, fmt.Errorf("export settings: %w", err)
	}
	g.logger.Info("settings exported", "path", target)
	return bundle, nil
}

// ImportBundle reads an export document from source, anchors its relative
// media paths at the bundle's directory and imports it.
func (g *Gateway) ImportBundle(ctx context.Context, source string) error {
	if _, err := g.readyPath(); err != nil {
		return err
	}

	content, found, err := g.exec.ReadFile(ctx, source)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: %s is empty", ErrInvalidImport, source)
	}

	doc, err := ReadBundle([]byte(content), filepath.Dir(source))
	if err != nil {
		return err
	}
	return g.importDocument(ctx, doc)
}

// ReadBundle parses an export document. Image paths under ./images/ and
// background paths under ./backgrounds/ are rewritten to absolute paths in
// importDir, and themeSettings.theme fills theme when theme is absent.
// Relative paths only occur in packaged exports that ship their media next
// to the JSON; documents from ExportBundle carry absolute paths, which are
// kept as they are.
func ReadBundle(data []byte, importDir string) (config.Document, error) {
	doc, err := config.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	if raw, ok := doc["scriptSettings"]; ok && importDir != "" {
		var entries map[string]domain.ScriptEntry
		if json.Unmarshal(raw, &entries) == nil && entries != nil {
			for name, entry := range entries {
				entry.ImagePath = anchor(entry.ImagePath, imagesPrefix, importDir, "images")
				entries[name] = entry
			}
			if err := doc.Set("scriptSettings", entries); err != nil {
				return nil, err
			}
		}
	}

	if raw, ok := doc["backgroundSettings"]; ok && importDir != "" {
		var bg *domain.BackgroundSettings
		if json.Unmarshal(raw, &bg) == nil && bg != nil {
			bg.FileData = anchor(bg.FileData, backgroundsPrefix, importDir, "backgrounds")
			if err := doc.Set("backgroundSettings", bg); err != nil {
				return nil, err
			}
		}
	}

	if _, ok := doc["theme"]; !ok {
		var themed struct {
			ThemeSettings *domain.ThemeSettings `json:"themeSettings"`
		}
		if json.Unmarshal(data, &themed) == nil && themed.ThemeSettings != nil && themed.ThemeSettings.Theme != "" {
			if err := doc.Set("theme", themed.ThemeSettings.Theme); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

func anchor(path, prefix, dir, sub string) string {
	if !strings.HasPrefix(path, prefix) {
		return path
	}
	return filepath.Join(dir, sub, strings.TrimPrefix(path, prefix))
}
