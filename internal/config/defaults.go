package config

import "script-shelf/internal/domain"

// SchemaVersion is the version tag written into every current document.
const SchemaVersion = "1.0"

const (
	defaultScale        = 1.0
	defaultSidebarWidth = 100
)

// Defaults returns a fresh copy of the built-in settings document. Callers may
// mutate the result freely.
func Defaults() domain.Settings {
	return domain.Settings{
		Version:        SchemaVersion,
		ScriptSettings: map[string]domain.ScriptEntry{},
		Categories:     []string{domain.AllCategory},
		AllTags:        []string{},
		LayoutSettings: domain.LayoutSettings{
			IsGridLayout: false,
			CurrentScale: defaultScale,
			SidebarWidth: defaultSidebarWidth,
		},
		Theme: domain.ThemeDark,
		ClipboardImport: domain.ClipboardImport{
			Enabled:      true,
			SaveLocation: domain.SaveLocationDocuments,
		},
	}
}

// Clone returns a deep copy of s.
func Clone(s domain.Settings) domain.Settings {
	out := s
	if s.ScriptsFolderPath != nil {
		path := *s.ScriptsFolderPath
		out.ScriptsFolderPath = &path
	}
	if s.LastSaved != nil {
		stamp := *s.LastSaved
		out.LastSaved = &stamp
	}
	if s.BackgroundSettings != nil {
		bg := *s.BackgroundSettings
		out.BackgroundSettings = &bg
	}
	if s.ScriptSettings != nil {
		out.ScriptSettings = make(map[string]domain.ScriptEntry, len(s.ScriptSettings))
		for name, entry := range s.ScriptSettings {
			entry.Tags = cloneStrings(entry.Tags)
			out.ScriptSettings[name] = entry
		}
	}
	out.Categories = cloneStrings(s.Categories)
	out.AllTags = cloneStrings(s.AllTags)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
