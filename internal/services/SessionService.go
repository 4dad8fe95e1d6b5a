package services

import (
	"context"
	"errors"
	"fsd/internal/aggregate"
	"fsd/internal/bus"
	"fsd/internal/classify"
	"fsd/internal/models"
	"fsd/internal/persistence/interfaces"
	"fsd/internal/providers"
	"fsd/internal/render"
	"fsd/internal/store"
	"fsd/internal/structures"
	"fsd/internal/tracker"
	stdsync "sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

type StateResponse struct {
	StartTime int64            `json:"startTime"`
	Segments  []models.Segment `json:"segments"`
	Elapsed   int64            `json:"elapsed"`
}

type AnalyticsResponse struct {
	SessionStart int64               `json:"sessionStart"`
	PerDomain    []models.DomainStat `json:"perDomain"`
	Timeline     []models.Segment    `json:"timeline"`
}

// BarSegment is one decayed bar slice with the blended display color.
type BarSegment struct {
	Color string  `json:"color"`
	Flex  float64 `json:"flex"`
	Blend float64 `json:"blend"`
}

type BarResponse struct {
	Segments []BarSegment `json:"segments"`
	Elapsed  int64        `json:"elapsed"`
}

type MarkerInfo struct {
	Label    string  `json:"label"`
	Seconds  float64 `json:"seconds"`
	Position float64 `json:"position"`
	Visible  bool    `json:"visible"`
}

type SessionServiceInterface interface {
	LockIn(url, title string)
	LockOut() (string, bool)
	Activity(kind tracker.EventKind, url, title string)
	ClassifyRequest(ctx context.Context, title, url, domain string) classify.Result
	GetState() *StateResponse
	GetAnalytics() AnalyticsResponse
	GetBar() BarResponse
	GetMarkers() []MarkerInfo
	GetCategories() []models.Category
	PutCategories(cats []models.Category) error
	DeviceID() string
	LockedIn() bool
	SegmentCount() int
	Persist() error
	Restore() error
	BroadcastTick()
}

// SessionService owns the live session end to end: it classifies incoming
// activity, feeds the tracker, persists state on every mutation, finalizes
// and stores sessions at lock-out, and fans snapshots out to render
// surfaces.
type SessionService struct {
	catMu      stdsync.RWMutex
	categories []models.Category

	cache      *models.ContentCache
	classifier *classify.Classifier
	track      *tracker.Tracker
	hub        *bus.Hub
	state      interfaces.StateManagerInterface
	sessions   store.SessionStoreInterface
	uploader   store.UploaderInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface

	lockedIn atomic.Bool
	deviceID string
	now      func() int64
}

func NewSessionService(
	conf *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	state interfaces.StateManagerInterface,
	sessions store.SessionStoreInterface,
	uploader store.UploaderInterface,
	lookup classify.VideoLookupInterface,
	hub *bus.Hub,
) SessionServiceInterface {
	cache := models.NewContentCache(conf.Classifier.CacheCapacity)

	s := &SessionService{
		categories: models.DefaultCategories(),
		cache:      cache,
		classifier: classify.NewClassifier(cache, lookup, logger),
		track:      tracker.New(),
		hub:        hub,
		state:      state,
		sessions:   sessions,
		uploader:   uploader,
		logger:     logger,
		metrics:    metrics,
		now:        func() int64 { return time.Now().UnixMilli() },
	}
	s.track.SetOnMutate(s.onSegmentMutation)
	return s
}

// onSegmentMutation runs after every segment-list change: persist the live
// snapshot so a restart can resume, then push it to render surfaces.
func (s *SessionService) onSegmentMutation(snap models.LiveSnapshot) {
	if err := s.state.Save(s.buildState(&snap, true)); err != nil {
		s.logger.Errorf(providers.TypeApp, "Live snapshot persist failed: %s", err)
	}
	s.hub.Publish(bus.Event{Type: bus.EventSyncSegments, Payload: &snap})
}

func (s *SessionService) buildState(live *models.LiveSnapshot, lockedIn bool) *models.StateStorage {
	return &models.StateStorage{
		DeviceID:     s.deviceID,
		LockedIn:     lockedIn,
		Categories:   s.GetCategories(),
		ContentCache: s.cache.Snapshot(),
		Live:         live,
	}
}

func (s *SessionService) LockIn(url, title string) {
	if !s.lockedIn.CompareAndSwap(false, true) {
		return
	}

	now := s.now()
	domain := classify.ExtractDomain(url)
	color := classify.ClassifyDomain(domain, s.GetCategories())

	s.logger.Infof(providers.TypeApp, "Session started on %q (%s)", domain, color)
	s.track.Start(now, domain, color)
	go s.classifyContent(now, domain, color, title, url)
}

func (s *SessionService) LockOut() (string, bool) {
	if !s.lockedIn.CompareAndSwap(true, false) {
		return "", false
	}

	now := s.now()
	snap, ok := s.track.Stop(now)
	if !ok {
		return "", false
	}

	report := aggregate.BuildReport(snap, s.deviceID, now)
	if err := s.sessions.Put(report); err != nil {
		s.logger.Errorf(providers.TypeApp, "Local session store failed for %s: %s", report.ID, err)
	}
	s.metrics.IncSessionsFinalized()

	// Fire and forget — local storage is the fallback.
	go s.uploader.Upload(report)

	if err := s.state.Save(s.buildState(nil, false)); err != nil {
		s.logger.Errorf(providers.TypeApp, "State persist failed after lock-out: %s", err)
	}
	s.hub.Publish(bus.Event{Type: bus.EventHide})

	s.logger.Infof(providers.TypeApp, "Session %s finalized: %dms over %d segments",
		report.ID, report.TotalMs, len(report.Segments))
	return report.ID, true
}

func (s *SessionService) Activity(kind tracker.EventKind, url, title string) {
	if !s.lockedIn.Load() {
		return
	}

	now := s.now()
	domain := classify.ExtractDomain(url)
	color := classify.ClassifyDomain(domain, s.GetCategories())

	s.track.ActivityChanged(kind, now, domain, color)
	go s.classifyContent(now, domain, color, title, url)
}

// classifyContent runs the content-level chain off the event path and
// retro-colors the open segment when it resolves. The segment may have been
// superseded by then; UpdateSegmentColor drops the result in that case.
func (s *SessionService) classifyContent(segmentStart int64, domain, baseColor, title, url string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, ok := s.classifier.ClassifyContent(ctx, domain, title, url, baseColor)
	if !ok {
		return
	}
	s.metrics.IncClassifications(string(res.Source))
	s.track.UpdateSegmentColor(segmentStart, res.Category)
}

func (s *SessionService) ClassifyRequest(ctx context.Context, title, url, domain string) classify.Result {
	res := s.classifier.ClassifyRequest(ctx, title, url, domain)
	s.metrics.IncClassifications(string(res.Source))
	return res
}

func (s *SessionService) GetState() *StateResponse {
	if !s.lockedIn.Load() {
		return nil
	}
	snap, ok := s.track.Snapshot()
	if !ok {
		return nil
	}

	now := s.now()
	return &StateResponse{
		StartTime: snap.StartTime,
		Segments:  snap.Segments,
		Elapsed:   (now - snap.StartTime) / 1000,
	}
}

func (s *SessionService) GetAnalytics() AnalyticsResponse {
	empty := AnalyticsResponse{PerDomain: []models.DomainStat{}, Timeline: []models.Segment{}}

	snap, ok := s.track.Snapshot()
	if !ok {
		return empty
	}

	now := s.now()
	a := aggregate.Aggregate(snap.Segments, now)

	timeline := make([]models.Segment, 0, len(snap.Segments))
	for _, seg := range snap.Segments {
		if seg.Domain == "" {
			continue
		}
		seg.End = seg.EffectiveEnd(now)
		timeline = append(timeline, seg)
	}

	out := AnalyticsResponse{
		SessionStart: snap.StartTime,
		PerDomain:    a.PerDomain,
		Timeline:     timeline,
	}
	if out.PerDomain == nil {
		out.PerDomain = []models.DomainStat{}
	}
	return out
}

func (s *SessionService) GetBar() BarResponse {
	snap, ok := s.track.Snapshot()
	if !ok {
		return BarResponse{Segments: []BarSegment{}}
	}

	now := s.now()
	cats := s.GetCategories()

	weights := render.Render(snap.Segments, now)
	segments := make([]BarSegment, len(weights))
	for i, w := range weights {
		base := models.ColorFor(w.Color, cats)
		segments[i] = BarSegment{
			Color: render.Blend(base, w.Blend).Hex(),
			Flex:  w.Flex,
			Blend: w.Blend,
		}
	}

	return BarResponse{
		Segments: segments,
		Elapsed:  (now - snap.StartTime) / 1000,
	}
}

func (s *SessionService) GetMarkers() []MarkerInfo {
	out := make([]MarkerInfo, len(render.MarkerThresholds))

	snap, active := s.track.Snapshot()
	now := s.now()

	for i, th := range render.MarkerThresholds {
		info := MarkerInfo{Label: th.Label, Seconds: th.Seconds}
		if active {
			if pos, ok := render.MarkerPosition(snap.Segments, now, th.Seconds); ok {
				info.Position = pos
				info.Visible = true
			}
		}
		out[i] = info
	}
	return out
}

func (s *SessionService) GetCategories() []models.Category {
	s.catMu.RLock()
	defer s.catMu.RUnlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// PutCategories replaces the rule table. Future classifications use the new
// rules; already-recorded segments keep their colors.
func (s *SessionService) PutCategories(cats []models.Category) error {
	if len(cats) == 0 {
		return errors.New("category list must not be empty")
	}

	s.catMu.Lock()
	s.categories = append([]models.Category(nil), cats...)
	s.catMu.Unlock()

	if err := s.Persist(); err != nil {
		return err
	}
	s.BroadcastTick()
	return nil
}

func (s *SessionService) DeviceID() string {
	return s.deviceID
}

func (s *SessionService) LockedIn() bool {
	return s.lockedIn.Load()
}

func (s *SessionService) SegmentCount() int {
	return s.track.SegmentCount()
}

// Persist writes the full daemon state, live snapshot included.
func (s *SessionService) Persist() error {
	var live *models.LiveSnapshot
	if snap, ok := s.track.Snapshot(); ok {
		live = &snap
	}
	return s.state.Save(s.buildState(live, s.lockedIn.Load()))
}

// Restore loads persisted state on cold start. First run generates the
// device id and writes the default rule table; an interrupted session is
// resumed when the locked-in flag was still set. An unreadable snapshot is
// treated as a first run so the daemon always comes up with a device id.
func (s *SessionService) Restore() error {
	st, err := s.state.Load()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Persisted state unreadable, starting clean: %s", err)
		st = nil
	}

	if st == nil {
		s.deviceID = uuid.NewString()
		s.logger.Infof(providers.TypeApp, "First run: generated device id %s", s.deviceID)
		return s.Persist()
	}

	s.deviceID = st.DeviceID
	if s.deviceID == "" {
		s.deviceID = uuid.NewString()
	}
	if len(st.Categories) > 0 {
		s.catMu.Lock()
		s.categories = st.Categories
		s.catMu.Unlock()
	}
	s.cache.Restore(st.ContentCache)

	if st.LockedIn && st.Live != nil && st.Live.StartTime > 0 {
		s.track.Restore(*st.Live)
		s.lockedIn.Store(true)
		s.logger.Infof(providers.TypeApp, "Resumed interrupted session started at %d with %d segments",
			st.Live.StartTime, len(st.Live.Segments))
	}
	return nil
}

// BroadcastTick pushes the current snapshot so render surfaces can redraw
// decayed weights; segments themselves do not change on ticks.
func (s *SessionService) BroadcastTick() {
	snap, ok := s.track.Snapshot()
	if !ok {
		return
	}
	s.hub.Publish(bus.Event{Type: bus.EventSyncSegments, Payload: &snap})
}
