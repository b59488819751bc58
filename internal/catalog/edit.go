package catalog

import (
	"errors"
	"fmt"
	"strings"

	"script-shelf/internal/domain"
)

var (
	// ErrEmptyName is returned when a tag or category name is blank.
	ErrEmptyName = errors.New("name is empty")
	// ErrDuplicate is returned when the name already exists.
	ErrDuplicate = errors.New("name already exists")
	// ErrNotFound is returned when the name does not exist.
	ErrNotFound = errors.New("name not found")
	// ErrAllCategory is returned for edits to the "all" category.
	ErrAllCategory = errors.New("the all category cannot be changed")
)

// AddTag appends tag to allTags.
func AddTag(s *domain.Settings, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ErrEmptyName
	}
	if contains(s.AllTags, tag) {
		return fmt.Errorf("tag %q: %w", tag, ErrDuplicate)
	}
	s.AllTags = append(s.AllTags, tag)
	return nil
}

// DeleteTag removes tag from allTags and from every script entry.
func DeleteTag(s *domain.Settings, tag string) error {
	if !contains(s.AllTags, tag) {
		return fmt.Errorf("tag %q: %w", tag, ErrNotFound)
	}
	s.AllTags = without(s.AllTags, tag)
	for name, entry := range s.ScriptSettings {
		if contains(entry.Tags, tag) {
			entry.Tags = without(entry.Tags, tag)
			s.ScriptSettings[name] = entry
		}
	}
	return nil
}

// AddCategory appends a category after the existing ones.
func AddCategory(s *domain.Settings, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if contains(s.Categories, name) {
		return fmt.Errorf("category %q: %w", name, ErrDuplicate)
	}
	s.Categories = append(s.Categories, name)
	return nil
}

// RenameCategory renames a category in place; entries follow the rename.
func RenameCategory(s *domain.Settings, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if oldName == domain.AllCategory || newName == domain.AllCategory {
		return ErrAllCategory
	}
	if newName == "" {
		return ErrEmptyName
	}
	if newName == oldName {
		return nil
	}
	if contains(s.Categories, newName) {
		return fmt.Errorf("category %q: %w", newName, ErrDuplicate)
	}

	idx := indexOf(s.Categories, oldName)
	if idx < 0 {
		return fmt.Errorf("category %q: %w", oldName, ErrNotFound)
	}
	s.Categories[idx] = newName
	for script, entry := range s.ScriptSettings {
		if entry.Category == oldName {
			entry.Category = newName
			s.ScriptSettings[script] = entry
		}
	}
	return nil
}

// DeleteCategory removes a category; its scripts become uncategorized.
func DeleteCategory(s *domain.Settings, name string) error {
	if name == domain.AllCategory {
		return ErrAllCategory
	}
	if !contains(s.Categories, name) {
		return fmt.Errorf("category %q: %w", name, ErrNotFound)
	}
	s.Categories = without(s.Categories, name)
	for script, entry := range s.ScriptSettings {
		if entry.Category == name {
			entry.Category = ""
			s.ScriptSettings[script] = entry
		}
	}
	return nil
}

// MoveCategory moves a category to position to. Position 0 belongs to the
// "all" category, so targets are clamped to 1..len-1.
func MoveCategory(s *domain.Settings, name string, to int) error {
	if name == domain.AllCategory {
		return ErrAllCategory
	}
	from := indexOf(s.Categories, name)
	if from < 0 {
		return fmt.Errorf("category %q: %w", name, ErrNotFound)
	}

	rest := append(s.Categories[:from:from], s.Categories[from+1:]...)
	to = min(max(to, 1), len(rest))
	moved := make([]string, 0, len(s.Categories))
	moved = append(moved, rest[:to]...)
	moved = append(moved, name)
	moved = append(moved, rest[to:]...)
	s.Categories = moved
	return nil
}

// SetScriptEntry stores entry for script. Tags not yet in allTags are added,
// and a category that does not exist is cleared.
func SetScriptEntry(s *domain.Settings, script string, entry domain.ScriptEntry) {
	entry.DisplayName = strings.TrimSpace(entry.DisplayName)
	entry.Description = strings.TrimSpace(entry.Description)
	entry.ImagePath = strings.TrimSpace(entry.ImagePath)
	if entry.Category == domain.AllCategory || !contains(s.Categories, entry.Category) {
		entry.Category = ""
	}
	for _, tag := range entry.Tags {
		if tag != "" && !contains(s.AllTags, tag) {
			s.AllTags = append(s.AllTags, tag)
		}
	}
	if s.ScriptSettings == nil {
		s.ScriptSettings = map[string]domain.ScriptEntry{}
	}
	s.ScriptSettings[script] = entry
}

func indexOf(values []string, v string) int {
	for i, existing := range values {
		if existing == v {
			return i
		}
	}
	return -1
}

func without(values []string, v string) []string {
	out := make([]string, 0, len(values))
	for _, existing := range values {
		if existing != v {
			out = append(out, existing)
		}
	}
	return out
}
