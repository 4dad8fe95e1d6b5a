package store

import (
	"fsd/internal/models"
	"fsd/internal/structures"
	"fsd/internal/testutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) SessionStoreInterface {
	t.Helper()
	conf := &structures.Config{
		SessionStore: structures.SessionStoreConfig{Dir: t.TempDir()},
	}
	s, err := NewFileSessionStore(conf, &testutil.MockLogger{})
	require.NoError(t, err)
	return s
}

func sampleSession(deviceID, id string, totalMs int64) *models.Session {
	return &models.Session{
		ID:           id,
		DeviceID:     deviceID,
		SessionStart: 1000,
		SessionEnd:   1000 + totalMs,
		TotalMs:      totalMs,
		CategorySummary: map[string]int64{
			"green": totalMs,
		},
	}
}

func TestPut_ThenGet(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put(sampleSession("dev1", "s1", 5000)))

	got, err := s.Get("dev1", "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), got.TotalMs)
	assert.Equal(t, "dev1", got.DeviceID)
}

func TestGet_MissingIsNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get("dev1", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndex_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put(sampleSession("dev1", "older", 1000)))
	require.NoError(t, s.Put(sampleSession("dev1", "newer", 2000)))

	index, err := s.Index("dev1")
	require.NoError(t, err)
	require.Len(t, index, 2)
	assert.Equal(t, "newer", index[0].ID)
	assert.Equal(t, "older", index[1].ID)
}

func TestIndex_MissingDeviceIsEmpty(t *testing.T) {
	s := newTestStore(t)
	index, err := s.Index("unknown")
	require.NoError(t, err)
	assert.Empty(t, index)
}

func TestIndex_CorruptIndexStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{SessionStore: structures.SessionStoreConfig{Dir: dir}}
	logger := &testutil.MockLogger{}
	s, err := NewFileSessionStore(conf, logger)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dev1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dev1", "index.json"), []byte("not json"), 0o644))

	index, err := s.Index("dev1")
	require.NoError(t, err)
	assert.Empty(t, index)
	assert.NotEmpty(t, logger.Logs)
}

func TestPut_DevicesIsolated(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put(sampleSession("dev1", "s1", 1000)))
	require.NoError(t, s.Put(sampleSession("dev2", "s2", 2000)))

	index1, err := s.Index("dev1")
	require.NoError(t, err)
	require.Len(t, index1, 1)
	assert.Equal(t, "s1", index1[0].ID)

	_, err = s.Get("dev1", "s2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPut_RejectsPathEscapes(t *testing.T) {
	s := newTestStore(t)

	assert.Error(t, s.Put(sampleSession("../evil", "s1", 1000)))
	assert.Error(t, s.Put(sampleSession("dev1", "a/b", 1000)))
	assert.Error(t, s.Put(sampleSession("", "s1", 1000)))

	_, err := s.Index("..")
	assert.Error(t, err)
	_, err = s.Get("dev1", "../../etc/passwd")
	assert.Error(t, err)
}

func TestPut_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{SessionStore: structures.SessionStoreConfig{Dir: dir}}
	s, err := NewFileSessionStore(conf, &testutil.MockLogger{})
	require.NoError(t, err)

	require.NoError(t, s.Put(sampleSession("dev1", "s1", 1000)))

	entries, err := os.ReadDir(filepath.Join(dir, "dev1"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}
