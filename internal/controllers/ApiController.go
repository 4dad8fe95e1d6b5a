package controllers

import (
	"errors"
	"fmt"
	"fsd/internal/bus"
	"fsd/internal/models"
	"fsd/internal/providers"
	"fsd/internal/services"
	"fsd/internal/store"
	"fsd/internal/tracker"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"github.com/spf13/cast"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger   providers.Logger
	service  services.SessionServiceInterface
	sessions store.SessionStoreInterface
	cache    providers.CacheProviderInterface
	hub      *bus.Hub
}

func NewApiController(logger providers.Logger, service services.SessionServiceInterface, sessions store.SessionStoreInterface, cache providers.CacheProviderInterface, hub *bus.Hub) *ApiController {
	return &ApiController{
		logger:   logger,
		service:  service,
		sessions: sessions,
		cache:    cache,
		hub:      hub,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type activityPayload struct {
	Kind  string `json:"kind"`
	Url   string `json:"url"`
	Title string `json:"title"`
}

// GetState answers with the live session, or a JSON null while inactive.
func (ac *ApiController) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.service.GetState())
}

func (ac *ApiController) LockIn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload activityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ac.service.LockIn(payload.Url, payload.Title)
	writeJSON(w, http.StatusOK, map[string]bool{"lockedIn": true})
}

func (ac *ApiController) LockOut(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := ac.service.LockOut()
	writeJSON(w, http.StatusOK, map[string]any{
		"lockedIn":  false,
		"sessionId": sessionID,
	})
}

// Activity ingests a browsing event. Content classification runs async, so
// the response only acknowledges receipt.
func (ac *ApiController) Activity(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload activityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var kind tracker.EventKind
	switch payload.Kind {
	case "tab_switch":
		kind = tracker.TabSwitch
	case "url_update":
		kind = tracker.URLUpdate
	default:
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown event kind %q", payload.Kind))
		return
	}

	ac.service.Activity(kind, payload.Url, payload.Title)
	w.WriteHeader(http.StatusAccepted)
}

func (ac *ApiController) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "analytics", func() (any, error) {
		return ac.service.GetAnalytics(), nil
	})
}

func (ac *ApiController) GetBar(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "bar", func() (any, error) {
		return ac.service.GetBar(), nil
	})
}

func (ac *ApiController) GetMarkers(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "markers", func() (any, error) {
		return ac.service.GetMarkers(), nil
	})
}

func (ac *ApiController) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.service.GetCategories())
}

func (ac *ApiController) PutCategories(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var cats []models.Category
	if err := json.NewDecoder(r.Body).Decode(&cats); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := ac.service.PutCategories(cats); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ac.service.GetCategories())
}

// Events streams session events over SSE. The first event reflects the
// current state so late subscribers render immediately.
func (ac *ApiController) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming Unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := ac.hub.Subscribe()
	defer cancel()

	initial := bus.Event{Type: bus.EventHide}
	if state := ac.service.GetState(); state != nil {
		initial = bus.Event{Type: bus.EventSyncSegments, Payload: &models.LiveSnapshot{
			StartTime: state.StartTime,
			Segments:  state.Segments,
		}}
	}
	if !writeSSE(w, flusher, initial) {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-ch:
			if !open {
				return
			}
			if !writeSSE(w, flusher, ev) {
				return
			}
		}
	}
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, ev bus.Event) bool {
	data, err := json.Marshal(ev)
	if err != nil {
		return false
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data); err != nil {
		return false
	}
	flusher.Flush()
	return true
}

type classifyPayload struct {
	Title  string `json:"title" validate:"required"`
	Url    string `json:"url"`
	Domain string `json:"domain" validate:"required"`
}

// Classify serves the collaborator classification endpoint: stateless, the
// same answer a fresh daemon would give.
func (ac *ApiController) Classify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload classifyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	v := validate.Struct(&payload)
	if !v.Validate() {
		writeJSONError(w, http.StatusBadRequest, v.Errors.One())
		return
	}

	result := ac.service.ClassifyRequest(r.Context(), payload.Title, payload.Url, payload.Domain)
	writeJSON(w, http.StatusOK, result)
}

// ReceiveSession stores a finalized session pushed by a collaborator device.
func (ac *ApiController) ReceiveSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var session models.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if session.ID == "" || session.DeviceID == "" {
		writeJSONError(w, http.StatusBadRequest, "id and deviceId are required")
		return
	}

	if err := ac.sessions.Put(&session); err != nil {
		ac.logger.Errorf(providers.TypeApp, "Storing session %s failed: %s", session.ID, err)
		writeJSONError(w, http.StatusInternalServerError, "store failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": session.ID})
}

// GetSessionIndex lists a device's finalized sessions, newest first.
func (ac *ApiController) GetSessionIndex(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")
	if deviceID == "" {
		writeJSONError(w, http.StatusBadRequest, "deviceId is required")
		return
	}

	index, err := ac.sessions.Index(deviceID)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Index entries are newest first, so a limit keeps the most recent.
	limit := cast.ToInt(r.URL.Query().Get("limit"))
	if limit > 0 && limit < len(index) {
		index = index[:limit]
	}
	writeJSON(w, http.StatusOK, index)
}

func (ac *ApiController) GetSession(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")
	id := r.URL.Query().Get("id")
	if deviceID == "" || id == "" {
		writeJSONError(w, http.StatusBadRequest, "deviceId and id are required")
		return
	}

	session, err := ac.sessions.Get(deviceID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "session not found")
			return
		}
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session)
}
