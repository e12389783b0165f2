// internal/state/announce.go
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Announcement is a named message sent to a channel or nick on a schedule.
type Announcement struct {
	Name     string `json:"name"`
	Target   string `json:"target"`
	Text     string `json:"text"`
	Schedule string `json:"schedule,omitempty"`
	Enabled  bool   `json:"enabled"`
}

// AnnouncementStore is a JSON-file-backed store for announcements.
type AnnouncementStore struct {
	path string
	mu   sync.RWMutex
}

// NewAnnouncementStore creates a new file-backed AnnouncementStore at the
// given file path.
func NewAnnouncementStore(path string) *AnnouncementStore {
	return &AnnouncementStore{path: path}
}

// Path returns the file path used by this store.
func (s *AnnouncementStore) Path() string {
	return s.path
}

// List returns all announcements. Returns an empty slice if the file
// doesn't exist.
func (s *AnnouncementStore) List() ([]*Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, err := s.load()
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []*Announcement{}, nil
	}
	return items, nil
}

// Get finds an announcement by name. Returns an error if not found.
func (s *AnnouncementStore) Get(name string) (*Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.Name == name {
			return item, nil
		}
	}
	return nil, fmt.Errorf("announcement not found: %s", name)
}

// Add appends an announcement. Returns an error if one with the same name
// already exists.
func (s *AnnouncementStore) Add(item *Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}

	for _, existing := range items {
		if existing.Name == item.Name {
			return fmt.Errorf("announcement already exists: %s", item.Name)
		}
	}

	items = append(items, item)
	return s.save(items)
}

// Remove deletes an announcement by name. Returns an error if not found.
func (s *AnnouncementStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}

	for i, item := range items {
		if item.Name == name {
			items = append(items[:i], items[i+1:]...)
			return s.save(items)
		}
	}
	return fmt.Errorf("announcement not found: %s", name)
}

// SetEnabled toggles the enabled flag. Returns an error if not found.
func (s *AnnouncementStore) SetEnabled(name string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}

	for _, item := range items {
		if item.Name == name {
			item.Enabled = enabled
			return s.save(items)
		}
	}
	return fmt.Errorf("announcement not found: %s", name)
}

// load reads the JSON file and returns the list. Returns nil if the file
// doesn't exist.
func (s *AnnouncementStore) load() ([]*Announcement, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read announcements file: %w", err)
	}

	var items []*Announcement
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal announcements: %w", err)
	}
	return items, nil
}

// save writes the list to disk using atomic write (temp file + rename).
func (s *AnnouncementStore) save(items []*Announcement) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal announcements: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create announcements dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp announcements file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp announcements file: %w", err)
	}
	return nil
}
