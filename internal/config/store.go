package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"script-shelf/internal/domain"
)

// Store defines the legacy persistence tier used when the preferred
// data-directory path is unavailable.
type Store interface {
	Load() (domain.Settings, error)
	Save(domain.Settings) error
}

// JSONStore persists settings in a single JSON file on disk.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSON-backed settings store.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads settings from disk or returns defaults when missing. Stored data
// is migrated and merged exactly like the preferred tier does it.
func (s *JSONStore) Load() (domain.Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}

		return domain.Settings{}, err
	}
	if len(data) == 0 {
		return Defaults(), nil
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return domain.Settings{}, err
	}
	if !doc.HasVersion() {
		return MergeSettings(MigrateOldData(doc)), nil
	}
	return MergeWithDefaults(doc), nil
}

// Save writes settings as indented JSON through a temp file and rename.
func (s *JSONStore) Save(cfg domain.Settings) error {
	if !ValidateSettings(&cfg) {
		return fmt.Errorf("save legacy settings: document invalid")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
