package catalog

import (
	"strings"

	"script-shelf/internal/domain"
)

// Query narrows the script list the way the panel's sidebar and search box do.
type Query struct {
	Category string   `json:"category"`
	Search   string   `json:"search"`
	Tags     []string `json:"tags"`
}

// Item is a scanned script joined with its stored metadata.
type Item struct {
	domain.Script
	Entry       domain.ScriptEntry `json:"entry"`
	DisplayName string             `json:"displayName"`
}

// Filter joins scripts with their entries and applies q. Category matching is
// skipped for the "all" category, search is a case-insensitive substring
// match on the display name, and every tag in q.Tags must be present.
func Filter(scripts []domain.Script, settings domain.Settings, q Query) []Item {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	items := make([]Item, 0, len(scripts))

	for _, script := range scripts {
		entry := settings.ScriptSettings[script.Name]
		item := Item{Script: script, Entry: entry, DisplayName: displayName(script, entry)}

		if q.Category != "" && q.Category != domain.AllCategory && entry.Category != q.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.DisplayName), search) {
			continue
		}
		if !hasAllTags(entry.Tags, q.Tags) {
			continue
		}
		items = append(items, item)
	}
	return items
}

func displayName(script domain.Script, entry domain.ScriptEntry) string {
	if entry.DisplayName != "" {
		return entry.DisplayName
	}
	return script.Name
}

func hasAllTags(have, want []string) bool {
	for _, tag := range want {
		if !contains(have, tag) {
			return false
		}
	}
	return true
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
