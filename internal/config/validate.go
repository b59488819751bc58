package config

import "script-shelf/internal/domain"

// Validate is the structural check applied to raw candidate documents: data
// must be a JSON object whose categories and allTags are arrays and whose
// scriptSettings is an object. Cross-field references are not checked.
func Validate(data []byte) bool {
	doc, err := ParseDocument(data)
	if err != nil {
		return false
	}
	return ValidateDocument(doc)
}

// ValidateDocument applies the same structural check to a parsed Document.
func ValidateDocument(doc Document) bool {
	if doc == nil {
		return false
	}
	return jsonKind(doc["categories"]) == '[' &&
		jsonKind(doc["allTags"]) == '[' &&
		jsonKind(doc["scriptSettings"]) == '{'
}

// ValidateSettings is the typed form of the structural check. Nil slices and
// maps stand in for missing or null fields.
func ValidateSettings(s *domain.Settings) bool {
	if s == nil {
		return false
	}
	return s.Categories != nil && s.AllTags != nil && s.ScriptSettings != nil
}
