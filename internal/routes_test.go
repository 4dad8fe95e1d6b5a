package internal

import (
	"context"
	"fsd/internal/bus"
	"fsd/internal/classify"
	"fsd/internal/controllers"
	"fsd/internal/models"
	"fsd/internal/providers"
	"fsd/internal/services"
	"fsd/internal/structures"
	"fsd/internal/testutil"
	"fsd/internal/tracker"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- minimal mocks for routes test ---

type routeTestLogger struct{}

func (m *routeTestLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Close()                                                  {}

type routeTestService struct{}

func (m *routeTestService) LockIn(_, _ string)                           {}
func (m *routeTestService) LockOut() (string, bool)                      { return "", false }
func (m *routeTestService) Activity(_ tracker.EventKind, _, _ string)    {}
func (m *routeTestService) GetState() *services.StateResponse            { return nil }
func (m *routeTestService) GetAnalytics() services.AnalyticsResponse     { return services.AnalyticsResponse{} }
func (m *routeTestService) GetBar() services.BarResponse                 { return services.BarResponse{} }
func (m *routeTestService) GetMarkers() []services.MarkerInfo            { return nil }
func (m *routeTestService) GetCategories() []models.Category             { return nil }
func (m *routeTestService) PutCategories(_ []models.Category) error      { return nil }
func (m *routeTestService) DeviceID() string                             { return "" }
func (m *routeTestService) LockedIn() bool                               { return false }
func (m *routeTestService) SegmentCount() int                            { return 0 }
func (m *routeTestService) Persist() error                               { return nil }
func (m *routeTestService) Restore() error                               { return nil }
func (m *routeTestService) BroadcastTick()                               {}
func (m *routeTestService) ClassifyRequest(_ context.Context, _, _, _ string) classify.Result {
	return classify.Result{}
}

func newRouteTestController() *controllers.ApiController {
	return controllers.NewApiController(&routeTestLogger{}, &routeTestService{}, testutil.NewMockSessionStore(), testutil.NewMockCache(), bus.NewHub())
}

func TestInitRoutes_RegistersAllRoutes(t *testing.T) {
	router := InitRoutes(newRouteTestController(), &structures.Config{})
	routes := router.GetRoutes()

	require.Len(t, routes, 12)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/state")
	assert.Contains(t, urls, "/lockin")
	assert.Contains(t, urls, "/lockout")
	assert.Contains(t, urls, "/activity")
	assert.Contains(t, urls, "/analytics")
	assert.Contains(t, urls, "/bar")
	assert.Contains(t, urls, "/markers")
	assert.Contains(t, urls, "/categories")
	assert.Contains(t, urls, "/events")
	assert.Contains(t, urls, "/api/classify")
	assert.Contains(t, urls, "/api/sessions")
	assert.Contains(t, urls, "/api/session")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	router := InitRoutes(newRouteTestController(), &structures.Config{})

	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}

	// GET-only route with POST should fail
	req := httptest.NewRequest(http.MethodPost, "/state", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// POST-only route with GET should fail
	req = httptest.NewRequest(http.MethodGet, "/lockin", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// Categories route rejects anything but GET and PUT
	req = httptest.NewRequest(http.MethodDelete, "/categories", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestInitRoutes_CORSPreflight(t *testing.T) {
	router := InitRoutes(newRouteTestController(), &structures.Config{})

	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/classify", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	// Disallowed method on a CORS route still carries the headers.
	req = httptest.NewRequest(http.MethodDelete, "/api/classify", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
