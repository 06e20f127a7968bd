// Package store persists the community lookup table: a flat name →
// description mapping kept in one YAML file, loaded wholesale and saved
// wholesale on every mutation.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v2"
)

var (
	// ErrExists rejects adding a community name that is already present.
	ErrExists = errors.New("community already exists")
	// ErrNotFound rejects updating or deleting an unknown community.
	ErrNotFound = errors.New("community not found")
)

// Store is the community mapping bound to its backing file.
type Store struct {
	path    string
	entries map[string]string
}

// Open loads the mapping at path. A missing file yields an empty store; the
// file is created on the first mutation.
func Open(path string) (*Store, error) {
	s := &Store{path: path, entries: make(map[string]string)}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read communities file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("parse communities file %s: %w", path, err)
	}
	if s.entries == nil {
		s.entries = make(map[string]string)
	}
	return s, nil
}

// Get returns the description for name.
func (s *Store) Get(name string) (string, bool) {
	desc, ok := s.entries[name]
	return desc, ok
}

// Resolve returns the description for name, or a placeholder when no entry
// exists, so a build can proceed with a caller-visible default.
func (s *Store) Resolve(name string) string {
	if desc, ok := s.entries[name]; ok {
		return desc
	}
	return fmt.Sprintf("No data for %s", name)
}

// Names returns all community names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of communities.
func (s *Store) Len() int { return len(s.entries) }

// Add inserts a new community and saves the store.
func (s *Store) Add(name, description string) error {
	if _, ok := s.entries[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrExists)
	}
	s.entries[name] = description
	return s.save()
}

// Update replaces an existing community's description and saves the store.
func (s *Store) Update(name, description string) error {
	if _, ok := s.entries[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	s.entries[name] = description
	return s.save()
}

// Delete removes a community and saves the store.
func (s *Store) Delete(name string) error {
	if _, ok := s.entries[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	delete(s.entries, name)
	return s.save()
}

// save writes the whole mapping back, sorted by key, atomically.
func (s *Store) save() error {
	data, err := yaml.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("encode communities: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".communities-*")
	if err != nil {
		return fmt.Errorf("save communities: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save communities: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save communities: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("save communities: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save communities: %w", err)
	}
	return nil
}
