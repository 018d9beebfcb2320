package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"citybeat/internal/domain"
)

// UserStore persists the full user mapping as one JSON document. It
// implements domain.StorePersister.
type UserStore struct {
	path string
}

// NewUserStore returns a UserStore at the given path.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// Load reads the user document. A missing file is not an error; it yields
// an empty store.
func (s *UserStore) Load() (map[string]*domain.UserRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]*domain.UserRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read user store %s: %w", s.path, err)
	}
	users := map[string]*domain.UserRecord{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse user store %s: %w", s.path, err)
	}
	return users, nil
}

// Save rewrites the whole user document.
func (s *UserStore) Save(users map[string]*domain.UserRecord) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal user store: %w", err)
	}
	return writeAtomic(s.path, data)
}
