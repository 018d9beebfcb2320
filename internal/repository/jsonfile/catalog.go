// Package jsonfile persists whole JSON documents to disk. Both stores
// rewrite their document wholesale; writes go through a temp file and a
// rename so readers never observe a partial document.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"

	"citybeat/internal/domain"
)

const tmpSuffix = ".tmp"

// CatalogStore reads and writes the event catalog document.
type CatalogStore struct {
	path string
}

// NewCatalogStore returns a CatalogStore at the given path.
func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

// Load reads the catalog document. A missing or unparseable file is an
// error; the caller decides to continue with an empty catalog.
func (s *CatalogStore) Load() ([]domain.Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", s.path, err)
	}
	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", s.path, err)
	}
	return events, nil
}

// Save writes the enriched catalog back to the document path.
func (s *CatalogStore) Save(events []domain.Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return writeAtomic(s.path, data)
}

// writeAtomic writes data to a temp file next to path and renames it into
// place.
func writeAtomic(path string, data []byte) error {
	tmp := path + tmpSuffix
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
