package internal

import (
	"fsd/internal/controllers"
	"fsd/internal/providers"
	"fsd/internal/structures"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	// Control surface for the local render client.
	routers.Get("/state", http.HandlerFunc(apiController.GetState))
	routers.Post("/lockin", http.HandlerFunc(apiController.LockIn))
	routers.Post("/lockout", http.HandlerFunc(apiController.LockOut))
	routers.Post("/activity", http.HandlerFunc(apiController.Activity))
	routers.Get("/analytics", http.HandlerFunc(apiController.GetAnalytics))
	routers.Get("/bar", http.HandlerFunc(apiController.GetBar))
	routers.Get("/markers", http.HandlerFunc(apiController.GetMarkers))
	routers.Handle("/categories", http.HandlerFunc(categoriesDispatch(apiController)))
	routers.Get("/events", http.HandlerFunc(apiController.Events))

	// Collaborator surface, CORS-open so browser clients can reach it.
	routers.Handle("/api/classify", providers.CORS(http.HandlerFunc(apiController.Classify), http.MethodPost))
	routers.Handle("/api/sessions", providers.CORS(http.HandlerFunc(sessionsDispatch(apiController)), http.MethodGet, http.MethodPost))
	routers.Handle("/api/session", providers.CORS(http.HandlerFunc(apiController.GetSession), http.MethodGet))
	return routers
}

// categoriesDispatch serves the rule table: GET reads, PUT replaces.
func categoriesDispatch(apiController *controllers.ApiController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			apiController.GetCategories(w, r)
		case http.MethodPut:
			apiController.PutCategories(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	}
}

// sessionsDispatch splits /api/sessions by method: POST stores a record,
// GET lists a device's index.
func sessionsDispatch(apiController *controllers.ApiController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			apiController.ReceiveSession(w, r)
			return
		}
		apiController.GetSessionIndex(w, r)
	}
}
