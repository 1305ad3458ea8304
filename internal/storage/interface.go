package storage

import "github.com/julianstephens/daybreak/internal/models"

// Provider persists the single UserData record. Implementations are not safe
// for concurrent use; the engine serializes access.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// UserData record
	GetUserData() (*models.UserData, error)
	SaveUserData(*models.UserData) error

	// Utils
	GetConfigPath() string
}
