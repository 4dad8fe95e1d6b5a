package testutil

import (
	"context"
	"errors"
	"fsd/internal/models"
	"fsd/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockStateManager implements interfaces.StateManagerInterface in memory.
type MockStateManager struct {
	mu        sync.Mutex
	State     *models.StateStorage
	SaveCalls int
	SaveErr   error
	LoadErr   error
}

func (m *MockStateManager) Save(state *models.StateStorage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.State = state
	return nil
}

func (m *MockStateManager) Load() (*models.StateStorage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.State, nil
}

func (m *MockStateManager) Close() {}

// MockSessionStore implements store.SessionStoreInterface in memory. GetErr
// is returned verbatim for missing records so tests can inject the store's
// not-found sentinel.
type MockSessionStore struct {
	mu      sync.Mutex
	Records map[string]*models.Session // key: deviceID + "/" + id
	Indexes map[string][]models.SessionIndexEntry
	PutErr  error
	GetErr  error
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		Records: make(map[string]*models.Session),
		Indexes: make(map[string][]models.SessionIndexEntry),
	}
}

func (m *MockSessionStore) Put(session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Records[session.DeviceID+"/"+session.ID] = session
	m.Indexes[session.DeviceID] = append([]models.SessionIndexEntry{session.IndexEntry()}, m.Indexes[session.DeviceID]...)
	return nil
}

func (m *MockSessionStore) Index(deviceID string) ([]models.SessionIndexEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	index := m.Indexes[deviceID]
	if index == nil {
		return []models.SessionIndexEntry{}, nil
	}
	return index, nil
}

func (m *MockSessionStore) Get(deviceID, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.Records[deviceID+"/"+id]
	if !ok {
		if m.GetErr != nil {
			return nil, m.GetErr
		}
		return nil, errors.New("session not found")
	}
	return session, nil
}

// MockUploader records uploads; safe for concurrent use since the service
// uploads from a goroutine.
type MockUploader struct {
	mu       sync.Mutex
	Uploaded []*models.Session
}

func (m *MockUploader) Upload(session *models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Uploaded = append(m.Uploaded, session)
}

func (m *MockUploader) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Uploaded)
}

// MockVideoLookup implements classify.VideoLookupInterface.
type MockVideoLookup struct {
	mu    sync.Mutex
	Code  string
	Err   error
	Calls []string
}

func (m *MockVideoLookup) VideoCategory(_ context.Context, videoID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, videoID)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Code, nil
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	Requests        int
	CacheHits       int
	CacheMisses     int
	Classifications map[string]int
	Finalized       int
	UploadFails     int
	Persists        int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Classifications: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncClassifications(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Classifications[source]++
}

func (m *MockMetrics) IncSessionsFinalized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Finalized++
}

func (m *MockMetrics) IncUploadFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadFails++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

func (m *MockMetrics) RegisterTrackerGauges(_ providers.TrackerStatsInterface) {}

func (m *MockMetrics) ClassificationCount(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Classifications[source]
}

func (m *MockMetrics) UploadFailureCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.UploadFails
}

func (m *MockMetrics) FinalizedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Finalized
}
