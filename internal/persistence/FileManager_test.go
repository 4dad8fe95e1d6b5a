package persistence

import (
	"errors"
	"fsd/internal/models"
	"fsd/internal/structures"
	"fsd/internal/testutil"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileManagerConfig(dir string) *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{DataDir: dir},
	}
}

func sampleState() *models.StateStorage {
	return &models.StateStorage{
		DeviceID: "device-1",
		LockedIn: true,
		Live: &models.LiveSnapshot{
			StartTime: 1_000_000,
			Segments: []models.Segment{
				{Color: "green", Domain: "docs.example.com", Start: 1_000_000, End: 1_005_000},
				{Color: "red", Domain: "tube.example.com", Start: 1_005_000},
			},
		},
	}
}

func TestFileManager_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	metrics := testutil.NewMockMetrics()
	fm, err := NewFileManager(fileManagerConfig(dir), &testutil.MockCompressor{}, &testutil.MockLogger{}, metrics)
	require.NoError(t, err)
	defer fm.Close()

	state := sampleState()
	require.NoError(t, fm.Save(state))

	loaded, err := fm.Load()
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
	assert.Equal(t, 1, metrics.Persists)
}

func TestFileManager_LoadMissingFile(t *testing.T) {
	fm, err := NewFileManager(fileManagerConfig(t.TempDir()), &testutil.MockCompressor{}, &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)

	loaded, err := fm.Load()
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileManager_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFileManager(fileManagerConfig(dir), &testutil.MockCompressor{}, &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileManager_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	fm, err := NewFileManager(fileManagerConfig(dir), &testutil.MockCompressor{}, &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)

	require.NoError(t, fm.Save(sampleState()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.dat", entries[0].Name())
}

func TestFileManager_ConcurrentSaves(t *testing.T) {
	dir := t.TempDir()
	fm, err := NewFileManager(fileManagerConfig(dir), &testutil.MockCompressor{}, &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)

	// Handlers, the retro-color worker and the scheduler can all save at
	// once; states of different sizes make a torn write detectable.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			state := sampleState()
			for j := 0; j < n*10; j++ {
				state.Live.Segments = append(state.Live.Segments, models.Segment{
					Color: "green", Domain: "docs.example.com", Start: int64(j), End: int64(j + 1),
				})
			}
			assert.NoError(t, fm.Save(state))
		}(i)
	}
	wg.Wait()

	loaded, err := fm.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "device-1", loaded.DeviceID)
}

func TestFileManager_CompressError(t *testing.T) {
	compressor := &testutil.MockCompressor{
		CompressFn: func(_ []byte) ([]byte, error) { return nil, errors.New("encoder broken") },
	}
	fm, err := NewFileManager(fileManagerConfig(t.TempDir()), compressor, &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)

	assert.Error(t, fm.Save(sampleState()))
}

func TestFileManager_DecompressError(t *testing.T) {
	compressor := &testutil.MockCompressor{
		DecompressFn: func(_ []byte) ([]byte, error) { return nil, errors.New("corrupt frame") },
	}
	fm, err := NewFileManager(fileManagerConfig(t.TempDir()), compressor, &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)

	require.NoError(t, fm.Save(sampleState()))

	_, err = fm.Load()
	assert.Error(t, err)
}

func TestFileManager_CorruptPayload(t *testing.T) {
	dir := t.TempDir()
	fm, err := NewFileManager(fileManagerConfig(dir), &testutil.MockCompressor{}, &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.dat"), []byte("not json"), 0644))

	_, err = fm.Load()
	assert.Error(t, err)
}
