package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/daybreak/internal/models"
)

// Store is the on-disk document: a version tag plus the full UserData
// aggregate under a single key.
type Store struct {
	Version int              `json:"version"`
	User    *models.UserData `json:"user"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		User:    models.NewUserData(),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'daybreak init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		// Corrupt records are treated as no saved state rather than a fatal
		// error; the next save overwrites them.
		s.store = &Store{Version: 1, User: models.NewUserData()}
		return nil
	}

	if s.store.User == nil {
		s.store.User = models.NewUserData()
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetUserData() (*models.UserData, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.store.User, nil
}

func (s *JSONStore) SaveUserData(user *models.UserData) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.User = user
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
