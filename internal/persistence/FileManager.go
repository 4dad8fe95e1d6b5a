package persistence

import (
	"fsd/internal/models"
	"fsd/internal/persistence/interfaces"
	"fsd/internal/providers"
	"fsd/internal/structures"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const stateFileName = "state.dat"

// FileManager persists the daemon state to a single compressed file with
// atomic replace semantics: write to a temp file, fsync, rename. Saves are
// serialized; handler goroutines, the retro-color worker and the scheduler
// all write through here.
type FileManager struct {
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	saveMu     sync.Mutex
}

func NewFileManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (interfaces.StateManagerInterface, error) {
	if err := os.MkdirAll(conf.Persistence.DataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileManager{
		path:       filepath.Join(conf.Persistence.DataDir, stateFileName),
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}, nil
}

func (f *FileManager) Save(state *models.StateStorage) error {
	f.saveMu.Lock()
	defer f.saveMu.Unlock()

	start := time.Now()

	jsonData, err := json.Marshal(state)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, f.path); err != nil {
		return err
	}

	f.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func (f *FileManager) Load() (*models.StateStorage, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var state models.StateStorage
	if err := json.Unmarshal(decompressed, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
