package interfaces

import "fsd/internal/models"

// StateManagerInterface persists the daemon's resumable state. Load returns
// (nil, nil) when no state has been written yet.
type StateManagerInterface interface {
	Save(state *models.StateStorage) error
	Load() (*models.StateStorage, error)
	Close()
}
