package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// SetupRouter wires every route.
func (h *Handler) SetupRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests)

	r.HandleFunc("/health", h.HandleHealth).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Working month
	api.HandleFunc("/trades", h.HandleListTrades).Methods("GET")
	api.HandleFunc("/trades", h.HandleAddTrade).Methods("POST")
	api.HandleFunc("/trades", h.HandleClearTrades).Methods("DELETE")
	api.HandleFunc("/trades/csv", h.HandleTradesCSV).Methods("GET")
	api.HandleFunc("/trades/{id}", h.HandleDeleteTrade).Methods("DELETE")
	api.HandleFunc("/stats", h.HandleStats).Methods("GET")
	api.HandleFunc("/goal", h.HandleGoal).Methods("GET")
	api.HandleFunc("/balance", h.HandleSetBalance).Methods("PUT")
	api.HandleFunc("/settings", h.HandleGetSettings).Methods("GET")
	api.HandleFunc("/settings", h.HandleUpdateSettings).Methods("PUT")

	// Calculator
	api.HandleFunc("/preview", h.HandlePreview).Methods("POST")
	api.HandleFunc("/sizing", h.HandleSizing).Methods("POST")

	// Archives
	api.HandleFunc("/archives", h.HandleListArchives).Methods("GET")
	api.HandleFunc("/archives/{year:[0-9]{4}}/{month:[0-9]{1,2}}", h.HandleGetArchive).Methods("GET")
	api.HandleFunc("/archives/{year:[0-9]{4}}/{month:[0-9]{1,2}}", h.HandleDeleteArchive).Methods("DELETE")
	api.HandleFunc("/archives/{year:[0-9]{4}}/{month:[0-9]{1,2}}/csv", h.HandleArchiveCSV).Methods("GET")
	api.HandleFunc("/archives/{year:[0-9]{4}}/{month:[0-9]{1,2}}/org", h.HandleArchiveOrg).Methods("GET")
	api.HandleFunc("/charts", h.HandleCharts).Methods("GET")

	// Backup
	api.HandleFunc("/export", h.HandleExport).Methods("GET")
	api.HandleFunc("/import", h.HandleImport).Methods("POST")

	// Market
	api.HandleFunc("/ticker", h.HandleTicker).Methods("GET")
	api.HandleFunc("/ticker/stream", h.HandleTickerStream).Methods("GET")

	return r
}

const RequestIDHeader = "X-Request-ID"

// logRequests tags each request with an id, kept from the client when
// given, and logs it once served.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// HandleHealth reports liveness and whether storage is working.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":      "healthy",
		"persistence": "ok",
	}
	if err := h.tracker.PersistenceError(); err != nil {
		status["persistence"] = err.Error()
	}
	h.respondSuccess(w, "OK", status)
}
