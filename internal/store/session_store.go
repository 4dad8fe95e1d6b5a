// Package store holds finalized session records, laid out like a blob
// container: one JSON file per session under the device's directory plus a
// newest-first index per device.
package store

import (
	"errors"
	"fmt"
	"fsd/internal/models"
	"fsd/internal/providers"
	"fsd/internal/structures"
	"os"
	"path/filepath"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
)

var ErrNotFound = errors.New("session not found")

type SessionStoreInterface interface {
	Put(session *models.Session) error
	Index(deviceID string) ([]models.SessionIndexEntry, error)
	Get(deviceID, id string) (*models.Session, error)
}

type FileSessionStore struct {
	mu     sync.Mutex
	dir    string
	logger providers.Logger
}

func NewFileSessionStore(conf *structures.Config, logger providers.Logger) (SessionStoreInterface, error) {
	if err := os.MkdirAll(conf.SessionStore.Dir, 0o755); err != nil {
		return nil, err
	}
	return &FileSessionStore{dir: conf.SessionStore.Dir, logger: logger}, nil
}

// safeName rejects ids that could escape the store directory.
func safeName(s string) error {
	if s == "" || strings.ContainsAny(s, "/\\") || strings.Contains(s, "..") {
		return fmt.Errorf("invalid identifier %q", s)
	}
	return nil
}

func (fs *FileSessionStore) sessionPath(deviceID, id string) string {
	return filepath.Join(fs.dir, deviceID, id+".json")
}

func (fs *FileSessionStore) indexPath(deviceID string) string {
	return filepath.Join(fs.dir, deviceID, "index.json")
}

// Put writes the full record and prepends its summary to the device index.
func (fs *FileSessionStore) Put(session *models.Session) error {
	if err := safeName(session.DeviceID); err != nil {
		return err
	}
	if err := safeName(session.ID); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	deviceDir := filepath.Join(fs.dir, session.DeviceID)
	if err := os.MkdirAll(deviceDir, 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(fs.sessionPath(session.DeviceID, session.ID), data); err != nil {
		return err
	}

	index, err := fs.loadIndexLocked(session.DeviceID)
	if err != nil {
		return err
	}
	index = append([]models.SessionIndexEntry{session.IndexEntry()}, index...)

	indexData, err := json.Marshal(index)
	if err != nil {
		return err
	}
	return writeFileAtomic(fs.indexPath(session.DeviceID), indexData)
}

// Index returns the device's summary list, newest first. A device with no
// sessions yet is an empty list, not an error.
func (fs *FileSessionStore) Index(deviceID string) ([]models.SessionIndexEntry, error) {
	if err := safeName(deviceID); err != nil {
		return nil, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.loadIndexLocked(deviceID)
}

func (fs *FileSessionStore) loadIndexLocked(deviceID string) ([]models.SessionIndexEntry, error) {
	data, err := os.ReadFile(fs.indexPath(deviceID))
	if err != nil {
		if os.IsNotExist(err) {
			return []models.SessionIndexEntry{}, nil
		}
		return nil, err
	}

	var index []models.SessionIndexEntry
	if err := json.Unmarshal(data, &index); err != nil {
		fs.logger.Warnf(providers.TypeApp, "Corrupt session index for device %s, starting empty: %s", deviceID, err)
		return []models.SessionIndexEntry{}, nil
	}
	return index, nil
}

func (fs *FileSessionStore) Get(deviceID, id string) (*models.Session, error) {
	if err := safeName(deviceID); err != nil {
		return nil, err
	}
	if err := safeName(id); err != nil {
		return nil, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.sessionPath(deviceID, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
