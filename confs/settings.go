package confs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Keys in the settings file. A per-user value is stored under
// "<key>:<userID>" and wins over the global one.
const (
	KeyBackendURL = "rent_db_url"
	KeyBackendKey = "rent_db_key"
)

// Backend is a saved database endpoint and its access key.
type Backend struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

func (b Backend) Empty() bool { return b.URL == "" }

// Settings is the persisted key/value file holding backend configuration.
// Set and Clear notify subscribers so the store can be rebuilt.
type Settings struct {
	path string

	mu       sync.Mutex
	onChange []func(userID string)
}

func NewSettings(path string) *Settings {
	return &Settings{path: path}
}

func settingKey(base, userID string) string {
	if userID == "" {
		return base
	}
	return base + ":" + userID
}

func (s *Settings) read() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", s.path, err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", s.path, err)
	}
	if values == nil {
		values = make(map[string]string)
	}
	return values, nil
}

func (s *Settings) write(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load returns the backend saved for userID, falling back to the global
// one. An empty Backend means nothing is saved.
func (s *Settings) Load(userID string) (Backend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return Backend{}, err
	}
	if userID != "" {
		if b := lookup(values, userID); !b.Empty() {
			return b, nil
		}
	}
	return lookup(values, ""), nil
}

// LoadOwn returns only the backend saved for userID itself.
func (s *Settings) LoadOwn(userID string) (Backend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return Backend{}, err
	}
	return lookup(values, userID), nil
}

func lookup(values map[string]string, userID string) Backend {
	return Backend{
		URL: values[settingKey(KeyBackendURL, userID)],
		Key: values[settingKey(KeyBackendKey, userID)],
	}
}

// Set saves the backend for userID ("" for the global entry).
func (s *Settings) Set(userID string, b Backend) error {
	if b.URL == "" {
		return errors.New("backend url is required")
	}
	if err := s.update(func(values map[string]string) {
		values[settingKey(KeyBackendURL, userID)] = b.URL
		values[settingKey(KeyBackendKey, userID)] = b.Key
	}); err != nil {
		return err
	}
	s.notify(userID)
	return nil
}

// Clear removes the backend saved for userID.
func (s *Settings) Clear(userID string) error {
	if err := s.update(func(values map[string]string) {
		delete(values, settingKey(KeyBackendURL, userID))
		delete(values, settingKey(KeyBackendKey, userID))
	}); err != nil {
		return err
	}
	s.notify(userID)
	return nil
}

func (s *Settings) update(fn func(values map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	fn(values)
	return s.write(values)
}

// OnChange registers fn to run after every Set or Clear.
func (s *Settings) OnChange(fn func(userID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *Settings) notify(userID string) {
	s.mu.Lock()
	hooks := make([]func(string), len(s.onChange))
	copy(hooks, s.onChange)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(userID)
	}
}
