package config

import (
	"encoding/json"
	"strings"

	"script-shelf/internal/domain"
)

// MigrateOldData upgrades an unversioned document. Only scriptsFolderPath,
// scriptSettings, categories and allTags carry over; everything else,
// including layout, theme, background and clipboard settings, resets to the
// defaults.
func MigrateOldData(old Document) domain.Settings {
	migrated := Defaults()
	if old == nil {
		return migrated
	}

	if old.present("scriptsFolderPath") {
		var path string
		if json.Unmarshal(old["scriptsFolderPath"], &path) == nil && path != "" {
			migrated.ScriptsFolderPath = &path
		}
	}
	if old.present("scriptSettings") {
		overlay(&migrated.ScriptSettings, old["scriptSettings"])
	}
	if old.present("categories") {
		overlay(&migrated.Categories, old["categories"])
	}
	if old.present("allTags") {
		overlay(&migrated.AllTags, old["allTags"])
	}
	return migrated
}

// MergeWithDefaults lays doc over a fresh defaults document. Object-valued
// fields merge key by key, arrays and scalars replace the default wholesale,
// and fields that do not fit the schema are ignored. The result always has
// every field populated and the "all" category first.
func MergeWithDefaults(doc Document) domain.Settings {
	merged := Defaults()
	for key, raw := range doc {
		if target := fieldOf(&merged, key); target != nil {
			overlay(target, raw)
		}
	}
	return normalize(merged)
}

// MergeSettings reconciles an in-memory document the same way a stored one
// is reconciled on load.
func MergeSettings(s domain.Settings) domain.Settings {
	return MergeWithDefaults(DocumentOf(s))
}

func fieldOf(s *domain.Settings, key string) any {
	switch key {
	case "version":
		return &s.Version
	case "scriptsFolderPath":
		return &s.ScriptsFolderPath
	case "scriptSettings":
		return &s.ScriptSettings
	case "categories":
		return &s.Categories
	case "allTags":
		return &s.AllTags
	case "layoutSettings":
		return &s.LayoutSettings
	case "theme":
		return &s.Theme
	case "backgroundSettings":
		return &s.BackgroundSettings
	case "clipboardImport":
		return &s.ClipboardImport
	case "lastSaved":
		return &s.LastSaved
	default:
		return nil
	}
}

// overlay decodes raw onto target. encoding/json leaves absent struct fields
// untouched and skips values of the wrong type, which gives the merge its
// key-by-key behavior for objects.
func overlay(target any, raw json.RawMessage) {
	_ = json.Unmarshal(raw, target)
}

func normalize(s domain.Settings) domain.Settings {
	if s.Version == "" {
		s.Version = SchemaVersion
	}
	if s.ScriptsFolderPath != nil && *s.ScriptsFolderPath == "" {
		s.ScriptsFolderPath = nil
	}
	if s.ScriptSettings == nil {
		s.ScriptSettings = map[string]domain.ScriptEntry{}
	}
	s.Categories = EnsureAllCategory(s.Categories)
	s.AllTags = uniqueNonEmpty(s.AllTags)

	if s.LayoutSettings.CurrentScale <= 0 {
		s.LayoutSettings.CurrentScale = defaultScale
	}
	if s.LayoutSettings.SidebarWidth <= 0 {
		s.LayoutSettings.SidebarWidth = defaultSidebarWidth
	}
	if !IsKnownTheme(s.Theme) {
		s.Theme = domain.ThemeDark
	}
	if bg := s.BackgroundSettings; bg != nil {
		bg.Blur = max(bg.Blur, 0)
		bg.Brightness = min(max(bg.Brightness, -100), 100)
	}
	s.ClipboardImport.SaveLocation = normalizeSaveLocation(s.ClipboardImport.SaveLocation)
	return s
}

// EnsureAllCategory returns categories with the "all" sentinel first, empty
// names and duplicates removed.
func EnsureAllCategory(categories []string) []string {
	out := make([]string, 0, len(categories)+1)
	out = append(out, domain.AllCategory)
	for _, name := range uniqueNonEmpty(categories) {
		if name != domain.AllCategory {
			out = append(out, name)
		}
	}
	return out
}

func uniqueNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func normalizeSaveLocation(loc domain.SaveLocation) domain.SaveLocation {
	switch loc {
	case domain.SaveLocationDesktop, domain.SaveLocationDocuments, domain.SaveLocationProject, domain.SaveLocationCustom:
		return loc
	case "projectFile":
		return domain.SaveLocationProject
	default:
		return domain.SaveLocationDocuments
	}
}
