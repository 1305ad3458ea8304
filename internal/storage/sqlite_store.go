package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/daybreak/internal/models"
	_ "modernc.org/sqlite"
)

// recordID keys the single snapshot row holding the serialized UserData.
const recordID = 1

const schema = `
CREATE TABLE IF NOT EXISTS user_data (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed an empty record if none exists yet
	user, err := s.GetUserData()
	if err != nil {
		return err
	}
	return s.SaveUserData(user)
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'daybreak init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetUserData() (*models.UserData, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var payload string
	err := s.db.QueryRow(`SELECT payload FROM user_data WHERE id = ?`, recordID).Scan(&payload)
	if err == sql.ErrNoRows {
		return models.NewUserData(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user data: %w", err)
	}

	user := models.NewUserData()
	if err := json.Unmarshal([]byte(payload), user); err != nil {
		// Corrupt payloads are treated as no saved state
		return models.NewUserData(), nil
	}

	return user, nil
}

func (s *SQLiteStore) SaveUserData(user *models.UserData) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user data: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(`
		INSERT INTO user_data (id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		recordID, string(payload), now)
	if err != nil {
		return fmt.Errorf("failed to write user data: %w", err)
	}

	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
