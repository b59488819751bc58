// Package catalog lists the scripts folder and edits the tag and category
// metadata stored alongside it.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"script-shelf/internal/domain"
)

var scriptExtensions = map[string]struct{}{
	".jsx":    {},
	".jsxbin": {},
	".js":     {},
}

// Scanner lists script files in a folder.
type Scanner struct {
	readDir func(string) ([]os.DirEntry, error)
}

// NewScanner builds a scanner using the real filesystem.
func NewScanner() *Scanner {
	return &Scanner{readDir: os.ReadDir}
}

// NewScannerForTests creates a scanner with an injectable directory reader.
func NewScannerForTests(readDir func(string) ([]os.DirEntry, error)) *Scanner {
	return &Scanner{readDir: readDir}
}

// Scan returns script files directly inside folder, sorted by name.
func (s *Scanner) Scan(folder string) ([]domain.Script, error) {
	if strings.TrimSpace(folder) == "" {
		return nil, fmt.Errorf("scripts folder is not set")
	}

	entries, err := s.readDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read scripts folder: %w", err)
	}

	scripts := make([]domain.Script, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !IsScriptFile(entry.Name()) {
			continue
		}
		scripts = append(scripts, domain.Script{
			Name: entry.Name(),
			Path: filepath.Join(folder, entry.Name()),
		})
	}

	sort.Slice(scripts, func(i, j int) bool {
		return strings.ToLower(scripts[i].Name) < strings.ToLower(scripts[j].Name)
	})
	return scripts, nil
}

// IsScriptFile reports whether name has a launchable script extension.
func IsScriptFile(name string) bool {
	_, ok := scriptExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}
