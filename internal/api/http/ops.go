// Package http serves the operations endpoints: Prometheus metrics and a
// health probe. There is no domain API here.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"bomne-rental-backend/internal/logger"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// OpsHandler answers health probes.
type OpsHandler struct {
	db Pinger
}

// NewOpsHandler creates a new ops handler. db may be nil, in which case
// the probe always reports ok.
func NewOpsHandler(db Pinger) *OpsHandler {
	return &OpsHandler{db: db}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// HandleHealth reports whether the database answers a ping within two seconds.
func (h *OpsHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	code := http.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			logger.Warn("Health check failed", "error", err)
			resp = healthResponse{Status: "unavailable", Database: err.Error()}
			code = http.StatusServiceUnavailable
		} else {
			resp.Database = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

// RegisterOpsRoutes mounts /healthz and, when metricsHandler is non-nil, /metrics.
func RegisterOpsRoutes(router *mux.Router, h *OpsHandler, metricsHandler http.Handler) {
	router.HandleFunc("/healthz", h.HandleHealth).Methods(http.MethodGet)
	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}
}

// NewOpsServer builds the listener for addr with the ops routes mounted.
func NewOpsServer(addr string, h *OpsHandler, metricsHandler http.Handler) *http.Server {
	router := mux.NewRouter()
	RegisterOpsRoutes(router, h, metricsHandler)
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
